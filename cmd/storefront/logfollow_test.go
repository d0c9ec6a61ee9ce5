package main

import "testing"

func TestLogFollowerEmitsOnlyNewContent(t *testing.T) {
	var f logFollower

	if got := f.next("line one"); got != "line one" {
		t.Errorf("first chunk = %q, want full log", got)
	}
	if got := f.next("line one\nline two"); got != "\nline two" {
		t.Errorf("appended chunk = %q, want suffix only", got)
	}
	if got := f.next("line one\nline two"); got != "" {
		t.Errorf("unchanged log emitted %q", got)
	}
}

func TestLogFollowerSurvivesHeadEviction(t *testing.T) {
	var f logFollower

	f.next("oldest\nmiddle")
	// The sliding-window cap evicted the head; the previous text is no
	// longer a prefix of the current log.
	if got := f.next("middle\nnewest"); got != "\nnewest" {
		t.Errorf("chunk after eviction = %q, want newest line only", got)
	}
	if got := f.next("middle\nnewest"); got != "" {
		t.Errorf("unchanged log emitted %q", got)
	}
}

func TestLogFollowerHandlesFullRewrite(t *testing.T) {
	var f logFollower

	f.next("streamed output")
	if got := f.next("replaced"); got != "\nreplaced" {
		t.Errorf("rewrite chunk = %q, want the new content on a fresh line", got)
	}
}
