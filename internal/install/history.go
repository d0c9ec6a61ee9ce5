package install

import "time"

// Record is an immutable summary of one completed install attempt. App name
// and command are snapshots taken at completion time.
type Record struct {
	App      string
	Status   string
	Command  string
	Output   string
	ExitCode *int
	When     time.Time
}

// History holds install records, newest first. Growth is unbounded; callers
// render only a bounded prefix via Recent.
type History struct {
	records []Record
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Prepend inserts a record at the front.
func (h *History) Prepend(r Record) {
	h.records = append([]Record{r}, h.records...)
}

// Recent returns up to n records, newest first.
func (h *History) Recent(n int) []Record {
	if n > len(h.records) {
		n = len(h.records)
	}
	out := make([]Record, n)
	copy(out, h.records[:n])
	return out
}

// Len returns the total number of records.
func (h *History) Len() int {
	return len(h.records)
}
