package textbuf

import (
	"bytes"
	"strings"
	"unsafe"
)

// Source is anything an operation can read text from: a *TextBuffer, a Str
// or a Raw.
type Source interface {
	view() []byte
}

// Str adapts a Go string as a raw sequence. The sequence ends at the first
// zero byte in the string.
type Str string

// Raw adapts a byte slice as a raw sequence. The sequence ends at the first
// zero byte in the slice; a nil Raw is the empty sequence.
type Raw []byte

func (s Str) view() []byte {
	str := string(s)
	if i := strings.IndexByte(str, 0); i >= 0 {
		str = str[:i]
	}
	return stringBytes(str)
}

func (r Raw) view() []byte {
	if i := bytes.IndexByte(r, 0); i >= 0 {
		return r[:i]
	}
	return r
}

// viewOf returns the bytes of src without copying. The result must not be
// modified.
func viewOf(src Source) []byte {
	if src == nil {
		return nil
	}
	return src.view()
}

// stringBytes returns the bytes backing s without copying.
// The result must not be modified.
func stringBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
