package stacks

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// FileSystem defines the system calls the resolver and lister need.
// Implementations must be safe for concurrent use.
//
// Errors for missing paths must satisfy errors.Is(err, fs.ErrNotExist) and
// errors for denied access errors.Is(err, fs.ErrPermission).
type FileSystem interface {
	// Stat returns the raw stat fields of path, following symlinks.
	Stat(path string) (Stat, error)

	// Lstat returns the raw stat fields of path without following a final
	// symlink.
	Lstat(path string) (Stat, error)

	// ReadDir returns the names of the entries in the directory, in no
	// particular order. The directory handle is closed before returning.
	ReadDir(path string) ([]string, error)

	// Readlink returns the destination of the symbolic link at path.
	Readlink(path string) (string, error)

	// ReadFile opens path, reads it completely and closes it.
	ReadFile(path string) ([]byte, error)
}

// Accounts resolves numeric owner ids to names.
type Accounts interface {
	UserName(uid uint32) (string, error)
	GroupName(gid uint32) (string, error)
}

// MIMETypes looks up content types by file extension (including the dot).
// An empty result means the extension is unknown.
type MIMETypes interface {
	TypeByExtension(ext string) string
}

// Sniffer is implemented by MIMETypes tables that can also detect a content
// type from file content. It is only consulted when DirConfig.SniffUnknown is
// set.
type Sniffer interface {
	Sniff(content []byte) string
}

const (
	defaultCharset     = "utf-8"
	defaultContentType = "binary/octet-stream"
)

// Resolver answers requests for one mounted directory: it translates URIs to
// filesystem paths and produces file, redirect, index or listing responses.
// A Resolver is read-only after construction and safe for concurrent use.
type Resolver struct {
	prefix   string
	mapper   PathMapper
	root     string
	index    []string
	listing  bool
	charset  string
	sniff    bool
	listOpts ListOptions

	fs     FileSystem
	types  MIMETypes
	lister *Lister
}

// NewResolver validates cfg and builds a Resolver. Static roots are made
// absolute and always end with a path separator; the URL prefix loses its
// trailing slash.
func NewResolver(cfg DirConfig, fsys FileSystem, accounts Accounts, types MIMETypes) (*Resolver, error) {
	if fsys == nil || types == nil {
		return nil, fmt.Errorf("new resolver: %w: filesystem and mime table are required", ErrInvalidInput)
	}

	if cfg.Root.isZero() {
		return nil, fmt.Errorf("new resolver: %w: root cannot be empty", ErrInvalidInput)
	}

	prefix := strings.TrimRight(cfg.URLPrefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("new resolver: %w: url prefix %q must start with /", ErrInvalidInput, cfg.URLPrefix)
	}

	var root string
	if cfg.Root.IsStatic() {
		abs, err := filepath.Abs(cfg.Root.Root())
		if err != nil {
			return nil, fmt.Errorf("new resolver: %w", err)
		}
		root = abs
		if !strings.HasSuffix(root, string(filepath.Separator)) {
			root += string(filepath.Separator)
		}
	}

	charset := cfg.Charset
	if charset == "" {
		charset = defaultCharset
	}

	listOpts := ListOptions{HideSymlinks: cfg.HideSymlinks}
	if cfg.ShowHidden {
		listOpts.NameFilter = func(string) bool { return true }
	}

	return &Resolver{
		prefix:   prefix,
		mapper:   cfg.Root,
		root:     root,
		index:    append([]string(nil), cfg.IndexFiles...),
		listing:  cfg.AllowListing,
		charset:  charset,
		sniff:    cfg.SniffUnknown,
		listOpts: listOpts,
		fs:       fsys,
		types:    types,
		lister:   NewLister(fsys, accounts),
	}, nil
}

// Prefix returns the normalized URL prefix ("" for the root mount).
func (r *Resolver) Prefix() string {
	return r.prefix
}

// ResolvePath translates a URI path into a filesystem path.
//
// For static roots the URI must lie below the configured prefix. A URI
// outside the prefix means the request was routed to the wrong resolver,
// which is a programming error: ResolvePath panics.
func (r *Resolver) ResolvePath(uri string) string {
	if !r.mapper.IsStatic() {
		return r.mapper.fn(uri)
	}

	rest, ok := strings.CutPrefix(uri, r.prefix)
	if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
		slog.Error("uri routed outside of mount", "uri", uri, "prefix", r.prefix)
		panic(fmt.Sprintf("stacks: uri %q is outside prefix %q", uri, r.prefix))
	}

	return r.root + filepath.FromSlash(strings.TrimPrefix(rest, "/"))
}

// Handle produces the response for uri. It returns nil when the resolved
// path does not exist so the caller can fall through to its own not-found
// handling.
//
// The dispatch order is:
//  0. uri rejected by IsSafePath: 403
//  1. missing path: nil
//  2. regular file: file content (see conditional handling below)
//  3. anything but a directory: 403
//  4. directory without trailing slash: 307 to uri + "/"
//  5. first existing index file: its content
//  6. listing disabled: 403 "no directory lists"
//  7. HTML directory listing
//
// Files honour If-None-Match (against the device-inode-mtime tag) and
// If-Modified-Since with 304 responses.
func (r *Resolver) Handle(req *http.Request, uri string) *Response {
	if !IsSafePath(uri) {
		slog.Warn("rejected unsafe uri", "uri", uri)
		return textResponse(http.StatusForbidden, "invalid path")
	}

	path := r.ResolvePath(uri)

	st, err := r.fs.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("stat failed, treating as missing", "path", path, "err", err)
		}
		return nil
	}

	switch classify(st.Mode) {
	case KindFile:
		return r.serveFile(req, path)
	case KindDirectory:
	default:
		return textResponse(http.StatusForbidden, "not a regular file or directory")
	}

	if !strings.HasSuffix(uri, "/") {
		loc := (&url.URL{Path: uri + "/"}).EscapedPath()
		return &Response{
			Status: http.StatusTemporaryRedirect,
			Reason: "directory",
			Header: http.Header{"Location": {loc}},
		}
	}

	for _, name := range r.index {
		p := filepath.Join(path, name)
		ist, err := r.fs.Stat(p)
		if err == nil && classify(ist.Mode) == KindFile {
			return r.serveFile(req, p)
		}
	}

	if !r.listing {
		return textResponse(http.StatusForbidden, "no directory lists")
	}

	entries, err := r.lister.List(path, r.listOpts)
	if err != nil {
		slog.Warn("directory listing failed", "path", path, "err", err)
	}

	return r.renderListing(uri, path, entries)
}

// ETag returns the weak identity tag of a file: device, inode and
// modification time joined with hyphens. It is only stable within one
// filesystem.
func ETag(st Stat) string {
	return fmt.Sprintf("%d-%d-%d", st.Dev, st.Ino, st.Mtime.Unix())
}

func (r *Resolver) serveFile(req *http.Request, path string) *Response {
	st, err := r.fs.Stat(path)
	if err != nil {
		return textResponse(http.StatusNotFound, "file not found")
	}

	tag := ETag(st)
	mtime := st.Mtime.Truncate(time.Second)
	validators := http.Header{}
	validators.Set("ETag", tag)
	validators.Set("Last-Modified", mtime.UTC().Format(http.TimeFormat))

	if inm := req.Header.Get("If-None-Match"); inm != "" && etagMatches(inm, tag) {
		return &Response{Status: http.StatusNotModified, Reason: "match etag", Header: validators}
	}

	if ims, err := http.ParseTime(req.Header.Get("If-Modified-Since")); err == nil && !ims.Before(mtime) {
		return &Response{Status: http.StatusNotModified, Reason: "unchanged", Header: validators}
	}

	body, err := r.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return textResponse(http.StatusNotFound, "file not found")
		}
		slog.Warn("failed to read file", "path", path, "err", err)
		return textResponse(http.StatusForbidden, "file not readable")
	}

	h := validators
	h.Set("Content-Type", r.contentType(path, body))
	h.Set("Content-Length", fmt.Sprint(len(body)))

	return &Response{Status: http.StatusOK, Reason: "ok", Header: h, Body: body}
}

func (r *Resolver) contentType(path string, body []byte) string {
	ctype := r.types.TypeByExtension(filepath.Ext(path))
	if ctype == "" && r.sniff {
		if s, ok := r.types.(Sniffer); ok {
			ctype = s.Sniff(body)
		}
	}
	if ctype == "" {
		return defaultContentType
	}

	mediaType, _, err := mime.ParseMediaType(ctype)
	if err != nil {
		return defaultContentType
	}

	if isTextual(mediaType) {
		return mediaType + "; charset=" + r.charset
	}
	return mediaType
}

// asciiTypes are application types whose bodies are ASCII-compatible text.
var asciiTypes = map[string]bool{
	"application/json":       true,
	"application/javascript": true,
	"application/ecmascript": true,
	"application/xml":        true,
}

// isTextual reports whether mediaType carries text that takes a charset
// parameter: any text/* type plus ASCII-compatible application types,
// including the +json and +xml structured suffixes.
func isTextual(mediaType string) bool {
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	sub, ok := strings.CutPrefix(mediaType, "application/")
	if !ok {
		return false
	}
	return asciiTypes[mediaType] || strings.HasSuffix(sub, "+json") || strings.HasSuffix(sub, "+xml")
}

// etagMatches accepts the tag verbatim as well as its quoted and weak forms.
func etagMatches(header, tag string) bool {
	switch strings.TrimSpace(header) {
	case tag, `"` + tag + `"`, `W/"` + tag + `"`:
		return true
	}
	return false
}

func textResponse(status int, reason string) *Response {
	return &Response{
		Status: status,
		Reason: reason,
		Header: http.Header{"Content-Type": {"text/plain; charset=utf-8"}},
		Body:   []byte(reason),
	}
}

func classify(mode uint32) EntryKind {
	switch mode & modeTypeMask {
	case modeSymlink:
		return KindSymlink
	case modeDir:
		return KindDirectory
	case modeRegular:
		return KindFile
	default:
		return KindOther
	}
}
