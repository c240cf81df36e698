package postprocess

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var bodyCloseRegex = regexp.MustCompile(`(?i)</body>`)

// navigationScript intercepts anchor clicks and form submissions so every
// navigation stays inside the proxy. Targets resolve against the bound
// original URL and redirect to the internal view endpoint; no real network
// request ever leaves the page.
const navigationScript = `<script>
(function () {
  var ORIGIN = %s;
  var VIEW = %s;
  function viewHref(target) {
    return VIEW + "?url=" + encodeURIComponent(target);
  }
  document.addEventListener("click", function (e) {
    if (e.defaultPrevented || e.button !== 0) return;
    var el = e.target;
    while (el && el.tagName !== "A") el = el.parentElement;
    if (!el) return;
    var href = el.getAttribute("href");
    if (!href || href.charAt(0) === "#") return;
    var lower = href.toLowerCase();
    if (lower.indexOf("mailto:") === 0 || lower.indexOf("tel:") === 0 || lower.indexOf("javascript:") === 0) return;
    e.preventDefault();
    window.location.href = viewHref(new URL(href, ORIGIN).href);
  }, true);
  document.addEventListener("submit", function (e) {
    var form = e.target;
    if (!form || form.tagName !== "FORM") return;
    e.preventDefault();
    var target = new URL(form.getAttribute("action") || ORIGIN, ORIGIN);
    var method = (form.getAttribute("method") || "get").toLowerCase();
    if (method !== "get") target.searchParams.set("_method", method);
    new FormData(form).forEach(function (value, key) {
      if (typeof value === "string") target.searchParams.set(key, value);
    });
    window.location.href = viewHref(target.href);
  }, true);
})();
</script>`

// InjectNavigation appends the navigation-interception script just before
// the closing body tag, or at the very end when the document has none. The
// bound URL and view path are JSON-encoded; encoding/json escapes <, > and
// & so the payload cannot break out of the script element.
func InjectNavigation(html, originalURL, viewPath string) string {
	origin, err := json.Marshal(originalURL)
	if err != nil {
		return html
	}
	view, err := json.Marshal(viewPath)
	if err != nil {
		return html
	}

	script := fmt.Sprintf(navigationScript, origin, view)

	// Inject before the last closing body marker
	if locs := bodyCloseRegex.FindAllStringIndex(html, -1); len(locs) > 0 {
		last := locs[len(locs)-1]
		return html[:last[0]] + script + "\n" + html[last[0]:]
	}

	return html + "\n" + script
}
