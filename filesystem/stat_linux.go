//go:build linux

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
		Ino:     uint64(st.Ino),
		Mode:    uint32(st.Mode),
		Nlink:   uint64(st.Nlink),
		Uid:     st.Uid,
		Gid:     st.Gid,
		Size:    st.Size,
		Atime:   time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)),
		Mtime:   time.Unix(int64(st.Mtim.Sec), int64(st.Mtim.Nsec)),
		Ctime:   time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)),
		Blksize: int64(st.Blksize),
		Blocks:  st.Blocks,
	}
}
