package llm

import (
	"fmt"

	"github.com/mirageweb/mirage/internal/domain"
)

// reconstructionInstruction establishes the persona and constraints for
// every generation. It forbids anything that would require a real fetch
// and pins the one asset path a page may reference.
const reconstructionInstruction = `You are a web reconstruction engine. Given a URL, you produce the complete HTML document that page most plausibly contains, reconstructed entirely from memory.

Rules:
- Never perform or simulate network access. Do not reference any external resource: no external stylesheets, scripts, fonts, or trackers.
- The only permitted image source is the path %s. Use it for every image.
- All styling must be inline CSS inside the document (style attributes or a <style> element in the head).
- Output one complete HTML document and nothing else: no commentary, no explanation of your reasoning, no markdown.
- Make the page dense and plausibly complete. Real pages have navigation, headings, body copy, and footers; include them with believable content for this URL.`

// BuildMessages constructs the two-message exchange for reconstructing the
// page at targetURL: the fixed instruction plus a request naming the URL.
func BuildMessages(targetURL, placeholderPath string) []domain.Message {
	return []domain.Message{
		{
			Role:    domain.RoleSystem,
			Content: fmt.Sprintf(reconstructionInstruction, placeholderPath),
		},
		{
			Role:    domain.RoleUser,
			Content: fmt.Sprintf("Reconstruct the page at %s", targetURL),
		},
	}
}
