package stacks

import (
	"bytes"
	"cmp"
	"html/template"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"slices"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="{{.Charset}}">
<title>{{.Title}}</title>
<style>
body { font-family: monospace; }
td { padding: 0 0.75em; white-space: nowrap; }
td.size { text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
{{- range .Rows}}
<tr><td>{{.Permissions}}</td><td>{{.Owner}}</td><td>{{.Group}}</td><td class="size">{{.Size}}</td><td>{{.Mtime}}</td><td><a href="{{.Href}}">{{.Name}}</a>{{if .LinkTarget}} &rarr; {{.LinkTarget}}{{end}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

type listingPage struct {
	Title   string
	Charset string
	Rows    []listingRow
}

type listingRow struct {
	Permissions string
	Owner       string
	Group       string
	Size        string
	Mtime       string
	Href        string
	Name        string
	LinkTarget  string
}

// renderListing turns lister output into an HTML table sorted by display
// name, with a link to the parent directory unless uri is the site root.
func (r *Resolver) renderListing(uri, dir string, entries map[string]DirEntry) *Response {
	page := listingPage{
		Title:   dir,
		Charset: r.charset,
		Rows:    make([]listingRow, 0, len(entries)+1),
	}

	if uri != "/" {
		page.Rows = append(page.Rows, listingRow{Href: "../", Name: "../"})
	}

	sorted := slices.SortedFunc(maps.Values(entries), func(a, b DirEntry) int {
		return cmp.Compare(a.DisplayName, b.DisplayName)
	})
	for _, e := range sorted {
		href := (&url.URL{Path: e.Name}).String()
		if e.Kind == KindDirectory {
			href += "/"
		}
		page.Rows = append(page.Rows, listingRow{
			Permissions: e.Permissions,
			Owner:       e.Owner,
			Group:       e.Group,
			Size:        e.HumanSize,
			Mtime:       e.HumanMtime,
			Href:        href,
			Name:        e.DisplayName,
			LinkTarget:  e.LinkTarget,
		})
	}

	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, page); err != nil {
		slog.Error("failed to render listing", "dir", dir, "err", err)
		return textResponse(http.StatusInternalServerError, "failed to render listing")
	}

	return &Response{
		Status: http.StatusOK,
		Reason: "listing",
		Header: http.Header{"Content-Type": {"text/html; charset=" + r.charset}},
		Body:   buf.Bytes(),
	}
}
