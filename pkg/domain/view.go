package domain

import (
	"fmt"
	"strings"
)

// IncompleteHint is shown while the current step blocks forward navigation.
const IncompleteHint = "Please fill in all required fields to continue"

// ReviewIntro is shown above the recap on the summary step.
const ReviewIntro = "Please review all information before submitting the form."

// Acknowledgement is the user-visible message returned after a submit.
const Acknowledgement = "Form submitted successfully!"

// TabView describes one entry of the step indicator.
type TabView struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Current bool   `json:"current"`
	// Reachable is true for the current and earlier steps.
	Reachable bool `json:"reachable"`
}

// FieldView is the render contract for one visible field.
type FieldView struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"type"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Multiple    bool      `json:"multiple,omitempty"`
	Numeric     bool      `json:"numeric,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Value       *Value    `json:"value,omitempty"`
}

// SummaryRow is one recap line.
type SummaryRow struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Display string `json:"display"`
}

// SummarySection is the recap of one step. EditStep is the navigation target
// of its edit affordance.
type SummarySection struct {
	StepID   string       `json:"step_id"`
	Title    string       `json:"title"`
	EditStep int          `json:"edit_step"`
	Rows     []SummaryRow `json:"rows"`
}

// Summary is the read-only recap of all visible fields.
type Summary struct {
	Sections []SummarySection `json:"sections"`
}

// View is what the host should present for the current state.
type View struct {
	FormTitle string    `json:"form_title"`
	Step      int       `json:"step"`
	StepID    string    `json:"step_id"`
	Title     string    `json:"title"`
	IsSummary bool      `json:"is_summary"`
	Tabs      []TabView `json:"tabs"`

	Fields  []FieldView `json:"fields,omitempty"`
	Summary *Summary    `json:"summary,omitempty"`

	CanRetreat bool `json:"can_retreat"`
	CanAdvance bool `json:"can_advance"`
	CanSubmit  bool `json:"can_submit"`

	// Missing lists visible required fields without a provided value.
	Missing []string `json:"missing,omitempty"`
	Hint    string   `json:"hint,omitempty"`

	Status Status `json:"status"`
}

// Markdown renders the recap as a markdown document, one section per step.
func (s *Summary) Markdown(title string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	fmt.Fprintf(&b, "%s\n\n", ReviewIntro)
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "## %d. %s\n\n", sec.EditStep, sec.Title)
		for _, r := range sec.Rows {
			fmt.Fprintf(&b, "- **%s**: %s\n", r.Label, markdownEscaper.Replace(r.Display))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`", `[`, `\[`, `]`, `\]`, "\n", " ")
