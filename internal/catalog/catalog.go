// Package catalog defines the static form template catalog.
//
// The catalog is an immutable lookup table keyed by template identifier.
// It carries no rendering concerns; the TUI decides how entries are drawn.
package catalog

// Template is a static catalog entry describing a starting point for a
// managed form. The Fields list names the inputs the template implies, in
// the order they appear on the created form.
type Template struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Fields      []string
}

// Blank returns true for the sentinel template that starts from scratch.
// Selecting it pre-fills nothing in the creation wizard.
func (t Template) Blank() bool {
	return t.ID == BlankID
}

// BlankID is the identifier of the start-from-scratch sentinel template.
const BlankID = "blank"

// templates is the fixed catalog, in display order.
var templates = []Template{
	{
		ID:          "contact",
		Name:        "Contact Form",
		Description: "Name, email and a message box for general inquiries",
		Icon:        "✉",
		Fields:      []string{"name", "email", "message"},
	},
	{
		ID:          "lead",
		Name:        "Lead Capture",
		Description: "Collect leads with company and phone details",
		Icon:        "◎",
		Fields:      []string{"name", "email", "company", "phone"},
	},
	{
		ID:          "feedback",
		Name:        "Customer Feedback",
		Description: "Rating plus free-form comments",
		Icon:        "★",
		Fields:      []string{"rating", "comments", "email"},
	},
	{
		ID:          "signup",
		Name:        "Event Signup",
		Description: "Registration with attendee count and dietary notes",
		Icon:        "◷",
		Fields:      []string{"name", "email", "attendees", "notes"},
	},
	{
		ID:          BlankID,
		Name:        "Blank Form",
		Description: "Start from scratch with no fields",
		Icon:        "▢",
		Fields:      nil,
	},
}

// All returns the catalog entries in display order. The returned slice is a
// copy; callers cannot mutate the catalog.
func All() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// ByID looks up a template by identifier.
func ByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Len returns the number of catalog entries.
func Len() int {
	return len(templates)
}
