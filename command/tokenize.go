package command

import "strings"

const separator = " "

// Tokenize splits what follows the first n bytes of line (the prefix and the
// matched name) and its separating space on single spaces. Runs of spaces
// yield empty tokens and quotes mean nothing, so "cmd " carries one empty
// argument. A bare invocation yields an empty slice.
func Tokenize(line string, n int) []string {
	if n >= len(line) {
		return []string{}
	}
	return strings.Split(line[n+len(separator):], separator)
}
