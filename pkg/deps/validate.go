package deps

import (
	"fmt"
	"strings"
)

// Validate checks the structural invariants of a dependency list: all names
// pairwise distinct and all folder names pairwise distinct.
//
// Both checks always run; every violation found is collected into the
// returned message so a caller sees all problems at once. An empty list is
// always valid. ok is true iff the message is empty.
func Validate(list List) (ok bool, message string) {
	var problems []string

	seenNames := make(map[string]int, len(list))
	for _, d := range list {
		seenNames[d.Name]++
	}
	for _, name := range orderedKeys(list, func(d Dependency) string { return d.Name }) {
		if seenNames[name] > 1 {
			problems = append(problems, fmt.Sprintf("duplicate dependency name %q (%d entries)", name, seenNames[name]))
		}
	}

	seenFolders := make(map[string]int, len(list))
	for _, d := range list {
		seenFolders[d.Folder]++
	}
	for _, folder := range orderedKeys(list, func(d Dependency) string { return d.Folder }) {
		if seenFolders[folder] > 1 {
			problems = append(problems, fmt.Sprintf("duplicate folder name %q (%d entries)", folder, seenFolders[folder]))
		}
	}

	return len(problems) == 0, strings.Join(problems, "; ")
}

// orderedKeys returns the distinct key values in first-appearance order, so
// validation messages are deterministic regardless of map iteration.
func orderedKeys(list List, key func(Dependency) string) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, d := range list {
		k := key(d)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
