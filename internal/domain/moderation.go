package domain

import "sort"

// ModerationResult holds per-category flags from the content pre-check.
type ModerationResult struct {
	Flags map[string]bool
}

func (m ModerationResult) Flagged() bool {
	for _, v := range m.Flags {
		if v {
			return true
		}
	}
	return false
}

// FlaggedCategories returns the categories set to true, sorted.
func (m ModerationResult) FlaggedCategories() []string {
	var out []string
	for k, v := range m.Flags {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
