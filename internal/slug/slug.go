package slug

import "strings"

// Make derives a URL slug from a title: lowercase, runs of non-alphanumeric
// characters collapse to a single hyphen, leading/trailing hyphens stripped.
//
// Only ASCII letters and digits survive; anything else separates words. The
// derivation runs on create only; an entity that already has an id keeps
// whatever slug it was saved with.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
