package stacks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagarc03/stacks"
)

func TestIsSafePath(t *testing.T) {
	// Create a path with invalid UTF-8 (without embedding raw invalid bytes in source)
	invalidUTF8 := string([]byte{'/', 'a', 0xff, 'b'})

	tt := []struct {
		Name string
		Path string
		Want bool
	}{
		// Basics
		{Name: "root path", Path: "/", Want: true},
		{Name: "empty path", Path: "", Want: true},
		{Name: "nested file", Path: "/some/path/file.ext", Want: true},
		{Name: "directory with slash", Path: "/some/path/", Want: true},

		// Double dot segments are invalid
		{Name: "double dots segment", Path: "/../", Want: false},
		{Name: "double dots in middle segment", Path: "/a/../b", Want: false},
		{Name: "double dots at end", Path: "/a/..", Want: false},
		{Name: "double dots only", Path: "..", Want: false},

		// Dots inside names are fine
		{Name: "double dots in filename", Path: "/a/b..c", Want: true},
		{Name: "double dots prefix", Path: "/a/..b", Want: true},
		{Name: "hidden file", Path: "/.hidden/file", Want: true},
		{Name: "single dot segment", Path: "/a/./b", Want: true},

		// Characters
		{Name: "contains space", Path: "/some path/file.ext", Want: true},
		{Name: "contains tilde", Path: "/~user/file", Want: true},
		{Name: "unicode", Path: "/dokumente/übersicht.txt", Want: true},
		{Name: "contains backslash", Path: `/some\..\file`, Want: false},
		{Name: "contains NUL", Path: "/some\x00path", Want: false},
		{Name: "contains DEL", Path: "/some\x7fpath", Want: false},
		{Name: "contains newline", Path: "/some\npath", Want: false},
		{Name: "contains tab", Path: "/some\tpath", Want: false},

		// UTF-8 validity
		{Name: "invalid utf8", Path: invalidUTF8, Want: false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Want, stacks.IsSafePath(tc.Path))
		})
	}
}

func TestHumanSize(t *testing.T) {
	tt := []struct {
		Name string
		Size int64
		Want string
	}{
		{Name: "zero", Size: 0, Want: "0.0  "},
		{Name: "small", Size: 42, Want: "42.0  "},
		{Name: "hundreds of bytes", Size: 500, Want: "500  "},
		{Name: "exactly 1024 stays bytes", Size: 1024, Want: "1024  "},
		{Name: "just over 1024", Size: 1025, Want: "1.0kB"},
		{Name: "two kilobytes", Size: 2048, Want: "2.0kB"},
		{Name: "fractional kilobytes", Size: 1536, Want: "1.5kB"},
		{Name: "hundreds of kilobytes", Size: 200 * 1024, Want: "200kB"},
		{Name: "three megabytes", Size: 3145728, Want: "3.0MB"},
		{Name: "gigabytes", Size: 5 * 1024 * 1024 * 1024, Want: "5.0GB"},
		{Name: "terabytes stay in gigabytes", Size: 2 * 1024 * 1024 * 1024 * 1024, Want: "2048GB"},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Want, stacks.HumanSize(tc.Size))
		})
	}
}
