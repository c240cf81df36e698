package server

import "html/template"

// Presentation-only templates. The generated documents never pass through
// these; html/template's contextual escaping covers the values we inject.

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>mirage</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 6rem auto; color: #222; }
input[type=url] { width: 70%; padding: 0.5rem; font-size: 1rem; }
button { padding: 0.5rem 1rem; font-size: 1rem; }
p.hint { color: #777; }
</style>
</head>
<body>
<h1>mirage</h1>
<p>Enter a URL and get the page as the model remembers it. Nothing is fetched from the live web.</p>
<form action="/view" method="get">
<input type="url" name="url" placeholder="https://example.com" required autofocus>
<button type="submit">Reconstruct</button>
</form>
<p class="hint">Repeat visits are served from the local page store.</p>
</body>
</html>
`))

type errorPageData struct {
	URL     string
	Message string
}

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>mirage &mdash; error</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 6rem auto; color: #222; }
code { background: #f2f2f2; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
<h1>Reconstruction failed</h1>
<p>{{.Message}}</p>
{{if .URL}}<p>Requested: <code>{{.URL}}</code></p>{{end}}
<p><a href="/">Try another URL</a></p>
</body>
</html>
`))
