// Package textbuf provides TextBuffer, a small mutable byte string that keeps
// its storage sized to exactly the content plus one trailing zero byte.
//
// A TextBuffer owns a single contiguous allocation of Len()+1 bytes whose last
// byte is always zero, so the content can be handed to code that expects a
// C-style terminated string (see CBytes). Operations are byte oriented: there
// is no UTF-8 awareness and case conversion only touches ASCII letters.
//
// Basic usage:
//
//	b := textbuf.FromString("hello world")
//	b.Replace(textbuf.Str("world"), textbuf.Str("there")) // "hello there"
//	b.ToUpper()                                          // "HELLO THERE"
//	b.EraseFront(5)                                      // "THERE"
//	s := textbuf.Add(b, textbuf.Str("!"))                // new buffer "THERE!"
//
// # Sources
//
// Operations that take another piece of text accept a Source. A *TextBuffer is
// a Source, and so are the raw sequence adapters Str and Raw. A raw sequence is
// read the way a C string is: it ends at its first zero byte, and a nil Raw (or
// a nil *TextBuffer) is the empty sequence.
//
// # Errors
//
// Mutators never fail. Arguments they cannot honor (an erase range outside the
// content, a replace target that does not occur) leave the buffer unchanged and
// are not reported. Indexed access through At and Set is unchecked; use ByteAt
// when the index is untrusted.
//
// # Ownership
//
// Copies made with Clone, Of, Add and Assign never share storage with their
// source. Bytes and CBytes return views into the live storage which are only
// valid until the next mutation.
//
// A TextBuffer is not safe for concurrent mutation; callers sharing one
// instance across goroutines must synchronize access themselves.
package textbuf
