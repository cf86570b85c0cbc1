package compliance

import "sort"

// ExceptionSet holds dependency names exempt from the check. Membership is an
// exact, case-sensitive string match.
type ExceptionSet struct {
	names map[string]struct{}
}

// NewExceptionSet builds a set from names. Duplicates collapse and empty
// names are dropped.
func NewExceptionSet(names ...string) ExceptionSet {
	set := ExceptionSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if name == "" {
			continue
		}
		set.names[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is exempt.
func (s ExceptionSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of distinct names.
func (s ExceptionSet) Len() int {
	return len(s.names)
}

// Names returns the names in sorted order.
func (s ExceptionSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
