package web

import (
	"embed"
	"html/template"
	"net/url"

	"taxifleet/pkg/querystring"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages. Each page is named after its file.
func Templates(routes *Routes) *template.Template {
	funcs := template.FuncMap{
		"url": routes.URL,
		"query_transform": func(query url.Values, kv ...interface{}) template.URL {
			return template.URL(querystring.Transform(query, querystring.Pairs(kv...)...))
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
