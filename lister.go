package stacks

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
)

// TimeLayout is the format of DirEntry.HumanMtime (local time).
const TimeLayout = "2006-01-02 15:04:05"

// Lister reads directories into enriched DirEntry values.
type Lister struct {
	fs       FileSystem
	accounts Accounts
}

// NewLister creates a Lister. accounts may be nil, in which case owners and
// groups are reported as numeric ids.
func NewLister(fsys FileSystem, accounts Accounts) *Lister {
	return &Lister{fs: fsys, accounts: accounts}
}

// List returns the entries of dir keyed by raw name.
//
// Names are first checked with opts.NameFilter (hidden names are dropped by
// default), then stat'ed, classified and checked with opts.PostFilter.
// Entries that disappear while the listing runs are skipped.
//
// If the directory cannot be read, List returns an empty map together with
// the error; callers may render the empty map.
func (l *Lister) List(dir string, opts ListOptions) (map[string]DirEntry, error) {
	entries := make(map[string]DirEntry)

	names, err := l.fs.ReadDir(dir)
	if err != nil {
		return entries, fmt.Errorf("list directory %s: %w", dir, err)
	}

	nameFilter := opts.NameFilter
	if nameFilter == nil {
		nameFilter = notHidden
	}

	stat := l.fs.Lstat
	if opts.HideSymlinks {
		stat = l.fs.Stat
	}

	var owners, groups nameCache
	if l.accounts != nil {
		owners.lookup = l.accounts.UserName
		groups.lookup = l.accounts.GroupName
	}

	for _, name := range names {
		if !nameFilter(name) {
			continue
		}

		p := filepath.Join(dir, name)
		st, err := stat(p)
		if err != nil {
			slog.Debug("skipping entry", "path", p, "err", err)
			continue
		}

		e := DirEntry{
			Name:        name,
			Path:        p,
			Stat:        st,
			Kind:        classify(st.Mode),
			DisplayName: name,
		}

		if opts.PostFilter != nil && !opts.PostFilter(e) {
			continue
		}

		switch e.Kind {
		case KindSymlink:
			if target, err := l.fs.Readlink(p); err == nil {
				e.LinkTarget = target
			}
			_, err := l.fs.Stat(p)
			e.LinkTargetExists = err == nil
		case KindFile:
			e.HumanSize = HumanSize(st.Size)
		case KindDirectory:
			e.DisplayName = name + "/"
		}

		e.Owner = owners.name(st.Uid)
		e.Group = groups.name(st.Gid)
		e.Permissions = PermissionString(st.Mode)
		e.HumanMtime = st.Mtime.Local().Format(TimeLayout)

		entries[name] = e
	}

	return entries, nil
}

func notHidden(name string) bool {
	return !strings.HasPrefix(name, ".")
}

// nameCache memoizes id lookups for the duration of one listing.
type nameCache struct {
	lookup func(id uint32) (string, error)
	names  map[uint32]string
}

func (c *nameCache) name(id uint32) string {
	if n, ok := c.names[id]; ok {
		return n
	}

	n := strconv.FormatUint(uint64(id), 10)
	if c.lookup != nil {
		if looked, err := c.lookup(id); err == nil && looked != "" {
			n = looked
		}
	}

	if c.names == nil {
		c.names = make(map[uint32]string)
	}
	c.names[id] = n
	return n
}
