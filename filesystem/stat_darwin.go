//go:build darwin

package filesystem

import (
	"io/fs"
	"syscall"
	"time"

	"github.com/sagarc03/stacks"
)

func statFromInfo(fi fs.FileInfo) stacks.Stat {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return genericStat(fi)
	}

	return stacks.Stat{
		Dev:     uint64(st.Dev),
		Ino:     st.Ino,
		Mode:    uint32(st.Mode),
		Nlink:   uint64(st.Nlink),
		Uid:     st.Uid,
		Gid:     st.Gid,
		Size:    st.Size,
		Atime:   time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec),
		Mtime:   time.Unix(st.Mtimespec.Sec, st.Mtimespec.Nsec),
		Ctime:   time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec),
		Blksize: int64(st.Blksize),
		Blocks:  st.Blocks,
	}
}
