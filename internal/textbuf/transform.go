package textbuf

import (
	"fmt"

	"golang.org/x/text/transform"
)

// asciiCaser maps every byte through fold. It never changes the length of
// its input, so it can always make progress with any non-empty dst.
type asciiCaser struct {
	transform.NopResetter
	fold func(byte) byte
}

// UpperASCII returns a transformer that uppercases ASCII letters and passes
// every other byte through, matching ToUpper.
func UpperASCII() transform.SpanningTransformer {
	return asciiCaser{fold: upperASCII}
}

// LowerASCII returns a transformer that lowercases ASCII letters and passes
// every other byte through, matching ToLower.
func LowerASCII() transform.SpanningTransformer {
	return asciiCaser{fold: lowerASCII}
}

func (c asciiCaser) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
		err = transform.ErrShortDst
	}
	for i := 0; i < n; i++ {
		dst[i] = c.fold(src[i])
	}
	return n, n, err
}

func (c asciiCaser) Span(src []byte, atEOF bool) (n int, err error) {
	for n < len(src) {
		if c.fold(src[n]) != src[n] {
			return n, transform.ErrEndOfSpan
		}
		n++
	}
	return n, nil
}

// Transform runs t over the content and replaces it with the output, sized
// exactly. On error the buffer is left unchanged.
func (b *TextBuffer) Transform(t transform.Transformer) error {
	out, _, err := transform.Bytes(t, b.buf[:b.length])
	if err != nil {
		return fmt.Errorf("textbuf: transform: %w", err)
	}
	nb := make([]byte, len(out)+1)
	copy(nb, out)
	b.buf = nb
	b.length = len(out)
	return nil
}
