// Package http serves stacks mounts over HTTP using chi.
//
// Every mount is a Resolver with a URL prefix. The router registers GET and
// HEAD for the prefix itself and everything below it, so the most specific
// mount wins and the root mount ("") catches the rest.
//
// # Features
//
//   - Static files with ETag / If-Modified-Since revalidation
//   - Directory redirects, index files and HTML listings (see package stacks)
//   - Path traversal protection before a resolver sees the path
//   - Request ids (X-Request-ID) and one structured log line per request
//   - Configurable CORS support
//   - HTML 404 page for paths no mount can answer
//
// # Usage
//
//	resolver, _ := stacks.NewResolver(cfg, filesystem.New(), filesystem.NewAccounts(), filesystem.NewMIMETable())
//
//	handler := http.NewHandler(&http.HandlerConfig{
//	    Mounts: []http.Resolver{resolver},
//	})
//	http.ListenAndServe(":5708", handler.Router())
//
// Resolver responses are written verbatim. A nil response (the path does not
// exist) is answered by HandlerConfig.NotFound.
package http
