package command

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Match reports which known name line invokes. A name matches when line is
// exactly prefix+name, or starts with prefix+name followed by a space. When
// several names match, the longest wins, so "echo" and "e" never race for
// "echo hi".
func Match(line, prefix string, known mapset.Set[string]) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	rest := line[len(prefix):]

	var best string
	known.Each(func(name string) bool {
		if len(name) <= len(best) {
			return false
		}
		if rest == name || strings.HasPrefix(rest, name+separator) {
			best = name
		}
		return false
	})
	return best, best != ""
}
