package textbuf

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Source
		want bool
	}{
		{"same content", FromString("hello"), FromString("hello"), true},
		{"different content", FromString("hello"), FromString("world"), false},
		{"prefix", FromString("hell"), FromString("hello"), false},
		{"buffer and string", FromString("hello"), Str("hello"), true},
		{"string and buffer", Str("hello"), FromString("hello"), true},
		{"raw", FromString("hi"), Raw("hi"), true},
		{"raw stops at zero", FromString("hi"), Raw("hi\x00there"), true},
		{"both empty", New(), Str(""), true},
		{"nil raw and empty", Raw(nil), New(), true},
		{"case differs", FromString("Hello"), Str("hello"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualsMethod(t *testing.T) {
	s := FromString("hello")
	d := FromString("world")
	if !s.Equals(s.Clone()) {
		t.Error("buffer should equal its clone")
	}
	if s.Equals(d) {
		t.Error("hello should not equal world")
	}
	if !s.Equals(Str("hello")) {
		t.Error("buffer should equal matching Str")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Source
		want int
	}{
		{"equal", Str("abc"), FromString("abc"), 0},
		{"less by byte", FromString("abc"), Str("abd"), -1},
		{"greater by byte", Str("abd"), FromString("abc"), 1},
		{"prefix is less", FromString("ab"), FromString("abc"), -1},
		{"longer is greater", FromString("abc"), Str("ab"), 1},
		{"empty is least", New(), Str("a"), -1},
		{"unsigned bytes", Str("\xff"), Str("a"), 1},
		{"uppercase before lowercase", Str("Z"), Str("a"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare() reversed = %d, want %d", got, -tt.want)
			}
			if got := Less(tt.a, tt.b); got != (tt.want < 0) {
				t.Errorf("Less() = %v, want %v", got, tt.want < 0)
			}
		})
	}
}

// Ordering stops at the first zero byte while Equal looks at the full length.
func TestCompareEmbeddedZero(t *testing.T) {
	b := FromString("ab")
	b.Write([]byte{0, 'c'})

	if Equal(b, Str("ab")) {
		t.Error("Equal should see the bytes after the zero")
	}
	if got := Compare(b, Str("ab")); got != 0 {
		t.Errorf("Compare() = %d, want 0", got)
	}
	if b.Less(Str("ab")) || Less(Str("ab"), b) {
		t.Error("neither side should order first")
	}
}

func TestLessMethod(t *testing.T) {
	a := FromString("apple")
	if !a.Less(Str("banana")) {
		t.Error("apple should order before banana")
	}
	if a.Less(a) {
		t.Error("a buffer should not order before itself")
	}
	if a.Compare(FromString("apple")) != 0 {
		t.Error("Compare with equal buffer should be 0")
	}
}
