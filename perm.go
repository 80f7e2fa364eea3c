package stacks

import "io/fs"

// unix st_mode bits, kept here so the table works on every platform.
const (
	modeTypeMask = 0o170000
	modeSocket   = 0o140000
	modeSymlink  = 0o120000
	modeRegular  = 0o100000
	modeBlock    = 0o060000
	modeDir      = 0o040000
	modeChar     = 0o020000
	modeFIFO     = 0o010000

	modeSetuid = 0o4000
	modeSetgid = 0o2000
	modeSticky = 0o1000
)

var fileTypeLetters = map[uint32]byte{
	modeSocket:  's',
	modeSymlink: 'l',
	modeRegular: '-',
	modeBlock:   'b',
	modeDir:     'd',
	modeChar:    'c',
	modeFIFO:    'p',
}

var rwxTriplets = [8]string{"---", "--x", "-w-", "-wx", "r--", "r-x", "rw-", "rwx"}

// special bits and the position of the execute character they replace.
var specialBits = []struct {
	bit     uint32
	pos     int
	set     byte
	noExec  byte
	execBit uint32
}{
	{modeSetuid, 3, 's', 'S', 0o100},
	{modeSetgid, 6, 's', 'S', 0o010},
	{modeSticky, 9, 't', 'T', 0o001},
}

// PermissionString renders unix mode bits the way ls -l does, e.g.
// "drwxr-xr-x" or "-rwsr-Sr-T".
func PermissionString(mode uint32) string {
	out := make([]byte, 0, 10)

	letter, ok := fileTypeLetters[mode&modeTypeMask]
	if !ok {
		letter = '?'
	}
	out = append(out, letter)

	out = append(out, rwxTriplets[(mode>>6)&7]...)
	out = append(out, rwxTriplets[(mode>>3)&7]...)
	out = append(out, rwxTriplets[mode&7]...)

	for _, sb := range specialBits {
		if mode&sb.bit == 0 {
			continue
		}
		if mode&sb.execBit != 0 {
			out[sb.pos] = sb.set
		} else {
			out[sb.pos] = sb.noExec
		}
	}

	return string(out)
}

// UnixMode converts an fs.FileMode into unix st_mode bits. It is used on
// platforms where the raw mode is not available from stat.
func UnixMode(fm fs.FileMode) uint32 {
	mode := uint32(fm.Perm())

	switch {
	case fm&fs.ModeDir != 0:
		mode |= modeDir
	case fm&fs.ModeSymlink != 0:
		mode |= modeSymlink
	case fm&fs.ModeNamedPipe != 0:
		mode |= modeFIFO
	case fm&fs.ModeSocket != 0:
		mode |= modeSocket
	case fm&fs.ModeCharDevice != 0:
		mode |= modeChar
	case fm&fs.ModeDevice != 0:
		mode |= modeBlock
	case fm.IsRegular():
		mode |= modeRegular
	}

	if fm&fs.ModeSetuid != 0 {
		mode |= modeSetuid
	}
	if fm&fs.ModeSetgid != 0 {
		mode |= modeSetgid
	}
	if fm&fs.ModeSticky != 0 {
		mode |= modeSticky
	}

	return mode
}
