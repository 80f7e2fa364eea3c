package stacks

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IsSafePath reports whether a request path can be mapped onto the
// filesystem. It rejects:
//   - ".." segments (path traversal)
//   - backslashes
//   - NUL, control characters (< 0x20) and DEL (0x7f)
//   - invalid UTF-8
//
// Spaces, dots inside names and hidden files are allowed.
func IsSafePath(p string) bool {
	if !utf8.ValidString(p) {
		return false
	}

	if strings.ContainsRune(p, '\\') {
		return false
	}

	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	for seg := range strings.SplitSeq(p, "/") {
		if seg == ".." {
			return false
		}
	}

	return true
}

var sizeUnits = []string{"  ", "kB", "MB", "GB"}

// HumanSize formats a byte count for listings: the value is divided by 1024
// while it exceeds 1024, then printed with no decimals from 100 upwards and
// one decimal below. Bytes carry a blank two-character unit.
func HumanSize(size int64) string {
	v := float64(size)
	unit := 0
	for v > 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}

	if v >= 100 {
		return fmt.Sprintf("%.0f%s", v, sizeUnits[unit])
	}
	return fmt.Sprintf("%.1f%s", v, sizeUnits[unit])
}
