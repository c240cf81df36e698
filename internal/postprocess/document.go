package postprocess

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// PlaceholderTitle is used when no host can be derived from the target URL
const PlaceholderTitle = "Reconstructed Page"

var (
	htmlTagRegex = regexp.MustCompile(`(?i)<html[^>]*>`)
	headTagRegex = regexp.MustCompile(`(?i)<head[\s>]`)
)

// EnsureDocumentShape normalizes generated text into a well-formed document.
// Text without a root <html> marker is wrapped in a minimal shell declaring
// an encoding and a title derived from the target URL's host. A document
// with a root but no <head> gets one inserted immediately after the opening
// html tag. Well-formed documents pass through unchanged.
func EnsureDocumentShape(html, originalURL string) string {
	title := EscapeAttr(titleForURL(originalURL))
	head := fmt.Sprintf("<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>", title)

	rootMatch := htmlTagRegex.FindStringIndex(html)
	if rootMatch == nil {
		return fmt.Sprintf("<!DOCTYPE html>\n<html>\n%s\n<body>\n%s\n</body>\n</html>", head, html)
	}

	if headTagRegex.MatchString(html) {
		return html
	}

	// Insert the head right after the opening html tag
	return html[:rootMatch[1]] + "\n" + head + html[rootMatch[1]:]
}

// titleForURL derives a page title from the URL's host, falling back to a
// fixed placeholder when no host can be parsed.
func titleForURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return PlaceholderTitle
	}
	return u.Host
}
