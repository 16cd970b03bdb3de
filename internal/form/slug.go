package form

import "strings"

// DeriveSlug normalizes a display name into a slug: the name is lowercased
// and every run of characters outside [a-z0-9] collapses into a single
// hyphen. The function is total and idempotent; it never trims hyphens, so
// "Contact Form!!" derives "contact-form-".
func DeriveSlug(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	inRun := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('-')
			inRun = true
		}
	}

	return b.String()
}

// EffectiveSlug resolves the slug stored on a new form: an explicit slug is
// used verbatim after trimming; a blank slug falls back to deriving one from
// the name.
func EffectiveSlug(name, slug string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return s
	}
	return DeriveSlug(name)
}
