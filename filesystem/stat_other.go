//go:build !linux && !darwin

package filesystem

import (
	"io/fs"

	"github.com/sagarc03/stacks"
)

func statFromInfo(fi fs.FileInfo) stacks.Stat {
	return genericStat(fi)
}
