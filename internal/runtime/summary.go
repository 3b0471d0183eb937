package runtime

import "github.com/aretw0/stepwise/pkg/domain"

const (
	notProvided     = "Not provided"
	fileUploaded    = "File uploaded"
	noFilesUploaded = "No files uploaded"
)

// BuildSummary projects the values of every regular step into a read-only
// recap. Hidden fields are skipped and so are steps left without visible
// fields.
func BuildSummary(form *domain.Form, values map[string]domain.Value) *domain.Summary {
	summary := &domain.Summary{}
	for i := range form.Steps {
		step := &form.Steps[i]
		if step.Summary {
			continue
		}
		visible := VisibleFields(step, values)
		if len(visible) == 0 {
			continue
		}
		section := domain.SummarySection{
			StepID:   step.ID,
			Title:    step.Title,
			EditStep: i + 1,
		}
		for _, f := range visible {
			v, ok := values[f.Key]
			section.Rows = append(section.Rows, domain.SummaryRow{
				Key:     f.Key,
				Label:   f.Label,
				Display: FormatValue(v, ok),
			})
		}
		summary.Sections = append(summary.Sections, section)
	}
	return summary
}

// FormatValue renders a value for the recap.
func FormatValue(value domain.Value, ok bool) string {
	if !ok {
		return notProvided
	}
	switch value.Kind {
	case domain.ValueBool:
		if value.Bool {
			return "Yes"
		}
		return "No"
	case domain.ValueFile:
		f, _ := value.File()
		if f.Name == "" {
			return fileUploaded
		}
		return f.Name
	case domain.ValueFiles:
		if len(value.Files) == 0 {
			return noFilesUploaded
		}
		return value.String()
	default:
		if value.Text == "" {
			return notProvided
		}
		return value.Text
	}
}
