package textbuf

// Equal reports whether a and b hold the same bytes. Lengths are compared
// first, then bytes from left to right until the first mismatch.
func Equal(a, b Source) bool {
	va, vb := viewOf(a), viewOf(b)
	if len(va) != len(vb) {
		return false
	}
	n := 0
	for n < len(va) && va[n] == vb[n] {
		n++
	}
	return n == len(va)
}

// Compare orders a and b the way C's strcmp orders terminated strings: bytes
// are compared as unsigned values and comparison stops at the first zero
// byte. Content past an embedded zero byte is therefore ignored, unlike Equal.
// The result is -1, 0 or +1.
func Compare(a, b Source) int {
	va, vb := viewOf(a), viewOf(b)
	for i := 0; ; i++ {
		var ca, cb byte
		if i < len(va) {
			ca = va[i]
		}
		if i < len(vb) {
			cb = vb[i]
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		if ca == 0 {
			return 0
		}
	}
}

// Less reports whether a orders before b under Compare.
func Less(a, b Source) bool {
	return Compare(a, b) < 0
}

// Equals reports whether the buffer holds the same bytes as other.
func (b *TextBuffer) Equals(other Source) bool {
	return Equal(b, other)
}

// Compare orders the buffer against other. See the package level Compare.
func (b *TextBuffer) Compare(other Source) int {
	return Compare(b, other)
}

// Less reports whether the buffer orders before other.
func (b *TextBuffer) Less(other Source) bool {
	return Compare(b, other) < 0
}
