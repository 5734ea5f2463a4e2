package main

import "strings"

// firstDiff returns the 1-based number of the first line where want and got
// differ, or 0 if they are identical.
func firstDiff(want, got string) int {
	if want == got {
		return 0
	}
	wantLines := strings.SplitAfter(want, "\n")
	gotLines := strings.SplitAfter(got, "\n")
	for i := range min(len(wantLines), len(gotLines)) {
		if wantLines[i] != gotLines[i] {
			return i + 1
		}
	}
	return min(len(wantLines), len(gotLines)) + 1
}
