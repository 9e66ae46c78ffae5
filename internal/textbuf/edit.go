package textbuf

// Concat appends the text of other and returns b for chaining.
// The storage is reallocated to exactly the new size.
func (b *TextBuffer) Concat(other Source) *TextBuffer {
	b.appendBytes(viewOf(other))
	return b
}

// Add returns a new buffer holding left followed by right.
// Neither input is modified.
func Add(left, right Source) *TextBuffer {
	return Of(left).Concat(right)
}

// ToUpper converts ASCII lowercase letters to uppercase in place.
func (b *TextBuffer) ToUpper() *TextBuffer {
	for i := 0; i < b.length; i++ {
		b.buf[i] = upperASCII(b.buf[i])
	}
	return b
}

// ToLower converts ASCII uppercase letters to lowercase in place.
func (b *TextBuffer) ToLower() *TextBuffer {
	for i := 0; i < b.length; i++ {
		b.buf[i] = lowerASCII(b.buf[i])
	}
	return b
}

func upperASCII(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Find returns the index of the first occurrence of needle, or -1 if needle
// is empty or does not occur.
func (b *TextBuffer) Find(needle Source) int {
	return find(b.view(), viewOf(needle))
}

// find scans hay once, rewinding to one past the start of a partial match
// whenever it breaks. Worst case is O(len(hay) * len(needle)).
func find(hay, needle []byte) int {
	if len(needle) == 0 {
		return -1
	}
	matched := 0
	for i := 0; i < len(hay); i++ {
		if hay[i] == needle[matched] {
			matched++
			if matched == len(needle) {
				return i - matched + 1
			}
			continue
		}
		i -= matched
		matched = 0
	}
	return -1
}

// Replace substitutes the first occurrence of target with replacement and
// returns b. If target is empty or absent the buffer is left unchanged.
// The storage is reallocated to exactly the new size.
func (b *TextBuffer) Replace(target, replacement Source) *TextBuffer {
	t, r := viewOf(target), viewOf(replacement)
	at := find(b.view(), t)
	if at < 0 {
		return b
	}

	n := b.length + len(r) - len(t)
	nb := make([]byte, n+1)
	copy(nb, b.buf[:at])
	copy(nb[at:], r)
	copy(nb[at+len(r):], b.buf[at+len(t):b.length])

	b.buf = nb
	b.length = n
	return b
}

// Erase removes everything from index from to the end and returns b.
// It is a no-op if from is negative or greater than Len().
func (b *TextBuffer) Erase(from int) *TextBuffer {
	return b.EraseRange(from, b.length)
}

// EraseRange removes the bytes in [from, to) and returns b. It is a no-op
// if from is negative or greater than Len(), or if to is before from or
// past Len(). The storage is reused, never reallocated.
func (b *TextBuffer) EraseRange(from, to int) *TextBuffer {
	if from < 0 || from > b.length || to < from || to > b.length {
		return b
	}
	b.ensure()

	if to == b.length {
		// Trailing range: zero it, nothing to shift.
		clear(b.buf[from:to])
	} else {
		// Shift the tail, terminator included, down over the gap.
		copy(b.buf[from:], b.buf[to:b.length+1])
	}
	b.length -= to - from
	b.buf = b.buf[:b.length+1]
	return b
}

// EraseFront removes the bytes in [0, to], including the byte at to, and
// returns b. It is a no-op if to is negative or greater than Len(); when to
// equals Len() the buffer is emptied.
func (b *TextBuffer) EraseFront(to int) *TextBuffer {
	if to < 0 || to > b.length {
		return b
	}
	b.ensure()

	n := to + 1
	if n > b.length {
		n = b.length
	}
	copy(b.buf, b.buf[n:b.length+1])
	b.length -= n
	b.buf = b.buf[:b.length+1]
	return b
}
