package stacks

import (
	"net/http"
	"time"
)

// PathMapper translates request URIs into filesystem paths. It is either a
// static root directory (see StaticRoot) or a caller supplied function (see
// MapperFunc).
type PathMapper struct {
	root string
	fn   func(uri string) string
}

// StaticRoot maps URIs below the configured prefix onto dir.
func StaticRoot(dir string) PathMapper {
	return PathMapper{root: dir}
}

// MapperFunc maps URIs with fn. The prefix is not checked or stripped.
func MapperFunc(fn func(uri string) string) PathMapper {
	return PathMapper{fn: fn}
}

// IsStatic reports whether the mapper is a static root.
func (m PathMapper) IsStatic() bool {
	return m.fn == nil
}

// Root returns the static root directory, or "" for function mappers.
func (m PathMapper) Root() string {
	return m.root
}

func (m PathMapper) isZero() bool {
	return m.fn == nil && m.root == ""
}

// DirConfig configures a Resolver. It is copied by NewResolver and never
// mutated afterwards.
type DirConfig struct {
	URLPrefix    string
	Root         PathMapper
	IndexFiles   []string
	AllowListing bool
	Charset      string

	// ShowHidden lists names beginning with a dot.
	ShowHidden bool
	// HideSymlinks reports symlinks as the file they point to.
	HideSymlinks bool
	// SniffUnknown detects the content type of files with an unknown
	// extension instead of answering binary/octet-stream.
	SniffUnknown bool
}

// Stat holds the raw fields of a stat(2) call. Mode carries unix st_mode
// bits on every platform.
type Stat struct {
	Dev     uint64
	Ino     uint64
	Mode    uint32
	Nlink   uint64
	Uid     uint32
	Gid     uint32
	Size    int64
	Atime   time.Time
	Mtime   time.Time
	Ctime   time.Time
	Blksize int64
	Blocks  int64
}

type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
	KindSymlink
	KindOther
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// MarshalText encodes the kind by name.
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DirEntry is a single directory listing row. Entries are built per listing
// request and never cached.
type DirEntry struct {
	Name string    `json:"name"`
	Path string    `json:"path"`
	Stat Stat      `json:"stat"`
	Kind EntryKind `json:"kind"`

	Permissions      string `json:"permissions"`
	Owner            string `json:"owner"`
	Group            string `json:"group"`
	HumanSize        string `json:"human_size,omitempty"`
	HumanMtime       string `json:"human_mtime"`
	DisplayName      string `json:"display_name"`
	LinkTarget       string `json:"link_target,omitempty"`
	LinkTargetExists bool   `json:"link_target_exists,omitempty"`
}

// ListOptions controls which entries a listing contains.
type ListOptions struct {
	// NameFilter is applied to raw names before stat. Nil excludes names
	// beginning with a dot.
	NameFilter func(name string) bool
	// PostFilter is applied after stat. Returning false drops the entry.
	PostFilter func(DirEntry) bool
	// HideSymlinks stats through symlinks instead of reporting them.
	HideSymlinks bool
}

// Response is a complete HTTP answer produced by a Resolver. Reason is a
// short explanation used for logging; it is not sent as the status text.
type Response struct {
	Status int
	Reason string
	Header http.Header
	Body   []byte
}
