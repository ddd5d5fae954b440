package modules

import (
	"sort"
	"strings"
)

// Normalize turns a module list into a set: names are trimmed and
// lower-cased, empty names and duplicates are dropped and the result is sorted.
func Normalize(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	sort.Strings(out)
	return out
}

// Split parses a comma separated module list as accepted on the command line
func Split(list string) []string {
	return Normalize(strings.Split(list, ","))
}

// Valid returns the names that pass ValidName, in their original order
func Valid(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if ValidName(name) {
			out = append(out, name)
		}
	}

	return out
}

// ValidName reports whether name is usable as a module file name
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}
