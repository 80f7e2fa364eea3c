package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sagarc03/stacks"
)

// Formatter formats listings for output.
type Formatter interface {
	FormatListing(w io.Writer, dir string, entries []stacks.DirEntry) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{}
}

// HumanFormatter outputs ls -l style text.
type HumanFormatter struct{}

// FormatListing prints one line per entry with aligned owner, group and size
// columns.
func (f *HumanFormatter) FormatListing(w io.Writer, dir string, entries []stacks.DirEntry) error {
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(w, "%s: no entries\n", dir)
		return nil
	}

	ownerLen, groupLen, sizeLen := 1, 1, 1
	for i := range entries {
		e := &entries[i]
		ownerLen = max(ownerLen, len(e.Owner))
		groupLen = max(groupLen, len(e.Group))
		sizeLen = max(sizeLen, len(e.HumanSize))
	}

	for i := range entries {
		e := &entries[i]
		name := e.DisplayName
		if e.Kind == stacks.KindSymlink {
			name += " -> " + e.LinkTarget
		}
		_, _ = fmt.Fprintf(w, "%s  %-*s  %-*s  %*s  %s  %s\n",
			e.Permissions,
			ownerLen, e.Owner,
			groupLen, e.Group,
			sizeLen, e.HumanSize,
			e.HumanMtime,
			name,
		)
	}

	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatListing writes the directory and its entries as one JSON document.
func (f *JSONFormatter) FormatListing(w io.Writer, dir string, entries []stacks.DirEntry) error {
	output := struct {
		Dir     string            `json:"dir"`
		Entries []stacks.DirEntry `json:"entries"`
	}{
		Dir:     dir,
		Entries: entries,
	}
	return writeJSON(w, output)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
