package core

import "strings"

// NormalizeStateLabel lowercases a provider workflow state name and
// collapses separators so "In Progress", "in-progress" and "IN_PROGRESS"
// compare equal.
func NormalizeStateLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, "-", " ")
	label = strings.ReplaceAll(label, "_", " ")
	return strings.Join(strings.Fields(label), " ")
}

// CanonicalStateToken converts a provider workflow state name into the
// canonical snake_case status value ("In Progress" becomes "in_progress").
func CanonicalStateToken(label string) string {
	return strings.ReplaceAll(NormalizeStateLabel(label), " ", "_")
}

// MatchStateOption finds the provider state whose label matches the
// canonical label under normalization. The second return is false when no
// option matches.
func MatchStateOption(label string, options []StateOption) (StateOption, bool) {
	want := NormalizeStateLabel(label)
	if want == "" {
		return StateOption{}, false
	}
	for _, option := range options {
		if NormalizeStateLabel(option.Label) == want {
			return option, true
		}
	}
	return StateOption{}, false
}
