package postprocess

import "strings"

// attrReplacer entity-escapes &, <, >, ", ' in that order. A Replacer
// substitutes each input character exactly once, so already-escaped text
// passed through again would be double-escaped; callers apply it only to
// raw user-influenced strings.
var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeAttr escapes a user-influenced string for embedding into generated
// markup attributes or text content.
func EscapeAttr(s string) string {
	return attrReplacer.Replace(s)
}
