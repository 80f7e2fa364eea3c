package filesystem

import (
	"io/fs"

	"github.com/sagarc03/stacks"
)

// genericStat fills what fs.FileInfo offers. Device, inode and owner stay
// zero, so tags are only as unique as the modification time.
func genericStat(fi fs.FileInfo) stacks.Stat {
	return stacks.Stat{
		Mode:  stacks.UnixMode(fi.Mode()),
		Nlink: 1,
		Size:  fi.Size(),
		Atime: fi.ModTime(),
		Mtime: fi.ModTime(),
		Ctime: fi.ModTime(),
	}
}
