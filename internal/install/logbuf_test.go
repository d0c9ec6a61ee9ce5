package install

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBufferJoinsWithNewline(t *testing.T) {
	b := NewBuffer(100)
	b.Append(1, "first")
	b.Append(1, "second")
	if got := b.Get(1); got != "first\nsecond" {
		t.Errorf("Get = %q, want %q", got, "first\nsecond")
	}
}

func TestBufferNeverExceedsCap(t *testing.T) {
	b := NewBuffer(50)
	for i := 0; i < 20; i++ {
		b.Append(1, strings.Repeat("x", 10))
	}
	if got := len(b.Get(1)); got > 50 {
		t.Errorf("buffer length = %d, want <= 50", got)
	}
}

func TestBufferEvictsOldestFirst(t *testing.T) {
	b := NewBuffer(12)
	b.Append(1, "oldest")
	b.Append(1, "newest")
	got := b.Get(1)
	if !strings.HasSuffix(got, "newest") {
		t.Errorf("buffer = %q, want newest content preserved", got)
	}
	if strings.HasPrefix(got, "oldest") {
		t.Errorf("buffer = %q, want oldest content evicted", got)
	}
}

func TestBufferItemsIndependent(t *testing.T) {
	b := NewBuffer(100)
	b.Append(1, "one")
	b.Append(2, "two")
	b.Clear(1)
	if got := b.Get(1); got != "" {
		t.Errorf("cleared buffer = %q, want empty", got)
	}
	if got := b.Get(2); got != "two" {
		t.Errorf("other buffer = %q, want untouched", got)
	}
}

func TestAppendKeepsRuneBoundaryOnEviction(t *testing.T) {
	b := NewBuffer(5)
	b.Append(1, "aé日本")

	got := b.Get(1)
	if !utf8.ValidString(got) {
		t.Fatalf("buffer = %q, contains a split rune", got)
	}
	if got != "本" {
		t.Errorf("buffer = %q, want %q", got, "本")
	}
}
