package main

import "strings"

// logFollower yields the not-yet-printed portion of a live install log.
// The log is a sliding window: under the cap the head gets evicted and
// the previous text stops being a prefix of the current one, so a plain
// byte offset would address the wrong content. When that happens only
// the newest line is emitted, on a fresh line.
type logFollower struct {
	last string
}

func (f *logFollower) next(log string) string {
	if log == f.last {
		return ""
	}
	prev := f.last
	f.last = log

	if strings.HasPrefix(log, prev) {
		return log[len(prev):]
	}
	if i := strings.LastIndex(log, "\n"); i >= 0 {
		return "\n" + log[i+1:]
	}
	return "\n" + log
}
