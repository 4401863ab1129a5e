// Package rcfile keeps required lines present in shell rc files.
package rcfile

import "strings"

// HasLine reports whether content already carries line: either some line
// equals it after trimming, or some line contains marker.
func HasLine(content, line, marker string) bool {
	want := strings.TrimSpace(line)
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) == want {
			return true
		}
		if marker != "" && strings.Contains(l, marker) {
			return true
		}
	}
	return false
}

// AppendLine appends line to content, terminating the previous last line first.
func AppendLine(content, line string) string {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + strings.TrimRight(line, "\n") + "\n"
}
