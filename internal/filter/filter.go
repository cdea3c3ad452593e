package filter

import "strings"

// All is the sentinel value that disables a categorical dimension.
const All = "all"

// Query is the admin list-filter state: one free-text term plus any number of
// categorical dimensions (status, type, destination, ...). The zero value
// matches everything.
type Query struct {
	Search     string
	Categories map[string]string
}

// Text reports whether the search term appears in at least one of the given
// fields, case-insensitively. The term is matched as a single contiguous
// substring, not tokenized: "doe john" will not match "John Doe".
// An empty term always matches.
func Text(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Category reports whether the selected value equals the actual one exactly.
// Empty selection and the "all" sentinel disable the dimension; callers pass
// values exactly as stored (statuses are canonical lowercase).
func Category(selected, actual string) bool {
	if selected == "" || selected == All {
		return true
	}
	return selected == actual
}

// Match combines every active predicate with logical AND: the text match over
// the given fields plus each categorical dimension against the entity's
// values. A dimension present in the query but absent from values fails.
func (q Query) Match(textFields []string, values map[string]string) bool {
	if !Text(q.Search, textFields...) {
		return false
	}
	for dim, selected := range q.Categories {
		if selected == "" || selected == All {
			continue
		}
		actual, ok := values[dim]
		if !ok || !Category(selected, actual) {
			return false
		}
	}
	return true
}
