package textbuf

import (
	"fmt"
	"io"
)

// TextBuffer is a mutable byte string backed by exactly Len()+1 bytes of
// storage, the last of which is always zero.
//
// The zero value is an empty buffer ready to use; its storage is allocated on
// the first mutation.
type TextBuffer struct {
	length int    // Number of content bytes, excluding the terminator
	buf    []byte // len(buf) == length+1 and buf[length] == 0
}

// New creates an empty buffer holding only the terminator.
func New() *TextBuffer {
	return &TextBuffer{buf: make([]byte, 1)}
}

// FromString creates a buffer from s, which is read up to its first zero byte.
func FromString(s string) *TextBuffer {
	return fromView(Str(s).view())
}

// FromBytes creates a buffer from p, which is read up to its first zero byte.
// A nil slice yields an empty buffer.
func FromBytes(p []byte) *TextBuffer {
	return fromView(Raw(p).view())
}

// Of creates an independent buffer holding the text of src.
// A nil src yields an empty buffer.
func Of(src Source) *TextBuffer {
	return fromView(viewOf(src))
}

func fromView(p []byte) *TextBuffer {
	b := &TextBuffer{
		length: len(p),
		buf:    make([]byte, len(p)+1),
	}
	copy(b.buf, p)
	return b
}

// ensure allocates the terminator for a zero value buffer.
func (b *TextBuffer) ensure() {
	if b.buf == nil {
		b.buf = make([]byte, 1)
		b.length = 0
	}
}

// view implements Source. A nil buffer is the empty sequence.
func (b *TextBuffer) view() []byte {
	if b == nil {
		return nil
	}
	return b.buf[:b.length]
}

// Clone returns a deep copy of the buffer.
func (b *TextBuffer) Clone() *TextBuffer {
	return fromView(b.view())
}

// Assign replaces the content with a copy of src and returns b.
// Assigning a buffer to itself leaves it unchanged.
func (b *TextBuffer) Assign(src Source) *TextBuffer {
	if other, ok := src.(*TextBuffer); ok && other == b {
		return b
	}
	v := viewOf(src)
	nb := make([]byte, len(v)+1)
	copy(nb, v)
	b.buf = nb
	b.length = len(v)
	return b
}

// Release drops the storage and leaves b as an empty buffer.
// It may be called any number of times.
func (b *TextBuffer) Release() {
	b.buf = make([]byte, 1)
	b.length = 0
}

// Len returns the number of content bytes, excluding the terminator.
func (b *TextBuffer) Len() int {
	return b.length
}

// IsEmpty returns true if the buffer has no content.
func (b *TextBuffer) IsEmpty() bool {
	return b.length == 0
}

// Bytes returns a read-only view of the content without the terminator.
// The view is valid until the next mutation.
func (b *TextBuffer) Bytes() []byte {
	return b.buf[:b.length]
}

// CBytes returns a read-only view of the content followed by the zero
// terminator. The view is valid until the next mutation.
func (b *TextBuffer) CBytes() []byte {
	b.ensure()
	return b.buf[:b.length+1]
}

// String returns a copy of the content. It allocates on every call.
func (b *TextBuffer) String() string {
	return string(b.buf[:b.length])
}

// At returns the byte at index i. The index is not checked against Len():
// At(Len()) returns the terminator and anything past it panics.
func (b *TextBuffer) At(i int) byte {
	return b.buf[i]
}

// Set stores c at index i. Like At, the index is not checked against Len(),
// and writing the terminator position breaks the buffer's invariants.
func (b *TextBuffer) Set(i int, c byte) {
	b.buf[i] = c
}

// ByteAt returns the byte at index i, or ErrIndexOutOfRange if i is outside
// [0, Len()).
func (b *TextBuffer) ByteAt(i int) (byte, error) {
	if i < 0 || i >= b.length {
		return 0, fmt.Errorf("byte %d of %d: %w", i, b.length, ErrIndexOutOfRange)
	}
	return b.buf[i], nil
}

// IndexByte returns the index of the first c in the content, or -1.
func (b *TextBuffer) IndexByte(c byte) int {
	for i := 0; i < b.length; i++ {
		if b.buf[i] == c {
			return i
		}
	}
	return -1
}

// Validate checks the storage invariants: storage exists, is exactly Len()+1
// bytes, and ends with a zero byte. A zero value buffer is valid.
func (b *TextBuffer) Validate() error {
	if b.buf == nil {
		if b.length == 0 {
			return nil
		}
		return ErrNilStorage
	}
	if len(b.buf) != b.length+1 {
		return fmt.Errorf("%w: storage %d, length %d", ErrLengthMismatch, len(b.buf), b.length)
	}
	if b.buf[b.length] != 0 {
		return ErrMissingTerminator
	}
	return nil
}

// appendBytes grows the storage to exactly fit p and copies it in verbatim.
func (b *TextBuffer) appendBytes(p []byte) {
	n := b.length + len(p)
	nb := make([]byte, n+1)
	copy(nb, b.buf[:b.length])
	copy(nb[b.length:], p)
	b.buf = nb
	b.length = n
}

// Write appends p verbatim, including any zero bytes, and implements
// io.Writer. It never fails.
func (b *TextBuffer) Write(p []byte) (int, error) {
	b.appendBytes(p)
	return len(p), nil
}

// WriteString appends s verbatim and implements io.StringWriter.
func (b *TextBuffer) WriteString(s string) (int, error) {
	b.appendBytes(stringBytes(s))
	return len(s), nil
}

// WriteByte appends c and implements io.ByteWriter.
func (b *TextBuffer) WriteByte(c byte) error {
	b.appendBytes([]byte{c})
	return nil
}

// WriteTo writes the content, without the terminator, to w.
func (b *TextBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf[:b.length])
	return int64(n), err
}

// MarshalText implements encoding.TextMarshaler.
func (b *TextBuffer) MarshalText() ([]byte, error) {
	out := make([]byte, b.length)
	copy(out, b.buf[:b.length])
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is copied
// verbatim so that MarshalText output round-trips exactly.
func (b *TextBuffer) UnmarshalText(text []byte) error {
	nb := make([]byte, len(text)+1)
	copy(nb, text)
	b.buf = nb
	b.length = len(text)
	return nil
}
