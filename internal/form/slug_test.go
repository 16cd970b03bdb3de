package form

import "testing"

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Contact", "contact"},
		{"two words", "Contact Form", "contact-form"},
		{"trailing punctuation kept as hyphen", "Contact Form!!", "contact-form-"},
		{"leading punctuation kept as hyphen", "!Contact", "-contact"},
		{"run collapses to one hyphen", "A  --  B", "a-b"},
		{"digits pass through", "Form 2024", "form-2024"},
		{"uppercase folds", "LEAD CAPTURE", "lead-capture"},
		{"unicode becomes hyphen", "Café Müller", "caf-m-ller"},
		{"empty", "", ""},
		{"only punctuation", "!!!", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSlug(tt.input)
			if got != tt.expected {
				t.Errorf("DeriveSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDeriveSlug_Idempotent(t *testing.T) {
	inputs := []string{"Contact Form!!", "Lead Capture", "a--b", "", "form-2024"}
	for _, in := range inputs {
		once := DeriveSlug(in)
		twice := DeriveSlug(once)
		if once != twice {
			t.Errorf("DeriveSlug not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestEffectiveSlug(t *testing.T) {
	tests := []struct {
		name     string
		formName string
		slug     string
		expected string
	}{
		{"explicit slug wins", "Contact Form", "my-slug", "my-slug"},
		{"explicit slug is trimmed not normalized", "Contact Form", "  My Slug  ", "My Slug"},
		{"blank slug derives from name", "Contact Form", "", "contact-form"},
		{"whitespace slug derives from name", "Contact Form", "   ", "contact-form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveSlug(tt.formName, tt.slug)
			if got != tt.expected {
				t.Errorf("EffectiveSlug(%q, %q) = %q, want %q", tt.formName, tt.slug, got, tt.expected)
			}
		})
	}
}
