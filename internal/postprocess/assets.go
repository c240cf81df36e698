package postprocess

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AssetGuard enforces the self-containment contract on generated documents.
// The backend is instructed to reference no external asset except the
// reserved placeholder image; anything that slips through is rewritten or
// removed here so a reconstructed page can never trigger a real fetch.
type AssetGuard struct {
	placeholderPath string
}

// NewAssetGuard creates a guard bound to the reserved placeholder image path
func NewAssetGuard(placeholderPath string) *AssetGuard {
	return &AssetGuard{placeholderPath: placeholderPath}
}

// Apply rewrites off-limits asset references in a shaped document. External
// image sources become the placeholder path; external script and stylesheet
// references are dropped. Inline styles and inline scripts are untouched.
func (g *AssetGuard) Apply(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("img[src]").Each(func(_ int, node *goquery.Selection) {
		src, _ := node.Attr("src")
		if !g.allowedImageSrc(src) {
			node.SetAttr("src", g.placeholderPath)
		}
	})

	doc.Find("script[src]").Each(func(_ int, node *goquery.Selection) {
		node.Remove()
	})

	doc.Find("link[rel='stylesheet']").Each(func(_ int, node *goquery.Selection) {
		node.Remove()
	})

	out, err := doc.Html()
	if err != nil {
		return "", err
	}

	// goquery's renderer drops the doctype declaration
	if strings.HasPrefix(strings.TrimSpace(strings.ToLower(html)), "<!doctype") &&
		!strings.HasPrefix(strings.TrimSpace(strings.ToLower(out)), "<!doctype") {
		out = "<!DOCTYPE html>\n" + out
	}

	return out, nil
}

// allowedImageSrc permits the reserved placeholder path and inline data URIs
func (g *AssetGuard) allowedImageSrc(src string) bool {
	src = strings.TrimSpace(src)
	if src == g.placeholderPath {
		return true
	}
	return strings.HasPrefix(strings.ToLower(src), "data:")
}
