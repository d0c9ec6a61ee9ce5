package install

import "unicode/utf8"

// Buffer accumulates streamed install output per item, bounded by a
// sliding-window character cap: once full, the oldest content is evicted
// so the most recent output is always retained.
type Buffer struct {
	cap   int
	items map[int]string
}

// NewBuffer creates a buffer with the given per-item character cap.
func NewBuffer(cap int) *Buffer {
	return &Buffer{cap: cap, items: make(map[int]string)}
}

// Append adds one line to the item's buffer, joining with a newline.
func (b *Buffer) Append(id int, line string) {
	prev := b.items[id]
	next := line
	if prev != "" {
		next = prev + "\n" + line
	}
	if len(next) > b.cap {
		next = next[len(next)-b.cap:]
		// Eviction slices at a byte offset; drop any continuation bytes
		// of a rune split at the new head.
		for len(next) > 0 && !utf8.RuneStart(next[0]) {
			next = next[1:]
		}
	}
	b.items[id] = next
}

// Get returns the item's accumulated output.
func (b *Buffer) Get(id int) string {
	return b.items[id]
}

// Clear empties the item's buffer. Called at session start and after a
// terminal event has been folded into a history record.
func (b *Buffer) Clear(id int) {
	delete(b.items, id)
}
