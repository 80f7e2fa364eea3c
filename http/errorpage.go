package http

import (
	"fmt"
	"html"
	"net/http"
)

const notFoundPage = `<!DOCTYPE html>
<html>
<head><title>404 Not Found</title></head>
<body>
<h1>404 Not Found</h1>
<p>%s</p>
<hr><address>stacks</address>
</body>
</html>
`

// writeDefaultNotFound answers paths that no mount resolves.
func writeDefaultNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = fmt.Fprintf(w, notFoundPage, html.EscapeString(r.URL.Path))
}
