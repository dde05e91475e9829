package preview

import "html/template"

type pageData struct {
	Title   string
	Nav     template.HTML
	Content template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; display: flex; font-family: system-ui, sans-serif; line-height: 1.5; }
nav { width: 16rem; padding: 1rem; border-right: 1px solid #ddd; font-size: 0.9rem; }
nav h1 { font-size: 1rem; }
nav ul { padding-left: 1rem; }
main { flex: 1; max-width: 52rem; padding: 1rem 2rem; }
code { background: #f4f4f4; padding: 0 0.2em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: 0.25rem 0.5rem; }
</style>
</head>
<body>
{{if .Nav}}<nav>{{.Nav}}</nav>{{end}}
<main>{{.Content}}</main>
</body>
</html>
`))
