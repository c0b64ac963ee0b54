// Package deps defines the dependency record and list types plus the
// structural operations Arbor's installer is built on: list validation
// and precedence-aware merging.
//
// # Overview
//
// A [Dependency] declares one external repository: where it comes from,
// which ref it tracks, which folder it lands in, and (optionally) an exact
// pinned revision. A [List] is an ordered set of dependencies keyed by name.
//
// Two operations carry the real invariants:
//
//   - [Validate] enforces name and folder uniqueness inside one list,
//     reporting every violation at once.
//   - [Merge] combines a persisted list with an explicitly supplied one,
//     letting the explicit list win on every field except an already
//     recorded pin.
//
// Both are pure functions over value types; nothing here touches the
// filesystem or the network.
package deps

import "strings"

// Dependency describes one declared external dependency.
// Identity for merge purposes is the Name field.
type Dependency struct {
	Name    string // unique identifier within a list; merge key
	URL     string // source location (remote URL or local path)
	Branch  string // branch or ref to track
	Folder  string // local directory name under the dependency root; unique within a list
	Pin     string // optional exact revision; survives re-installs unless overridden
	Version string // optional semver tag constraint, resolved when Pin is empty
}

// HasPin reports whether the dependency carries a pinned revision.
func (d Dependency) HasPin() bool {
	return strings.TrimSpace(d.Pin) != ""
}

// List is an ordered sequence of dependency records.
// Order carries no merge semantics but is preserved for determinism.
type List []Dependency

// Find returns the index of the dependency with the given name, or -1.
// Lookup is always by name, never by position.
func (l List) Find(name string) int {
	for i, d := range l {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the dependency names in list order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, d := range l {
		names[i] = d.Name
	}
	return names
}

// Clone returns a copy of the list that shares no backing storage.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}
