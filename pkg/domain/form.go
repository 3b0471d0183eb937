package domain

// Step is one page of the wizard.
type Step struct {
	ID      string  `json:"id" yaml:"id"`
	Title   string  `json:"title" yaml:"title"`
	Summary bool    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Fields  []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Form is the static, ordered wizard definition.
// Steps are addressed by their 1-based position.
type Form struct {
	Title string `json:"title" yaml:"title"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Len returns the number of steps.
func (f *Form) Len() int {
	return len(f.Steps)
}

// Step returns the step at the 1-based index.
func (f *Form) Step(index int) (*Step, bool) {
	if index < 1 || index > len(f.Steps) {
		return nil, false
	}
	return &f.Steps[index-1], true
}

// Field finds a field by key across all steps.
func (f *Form) Field(key string) (*Field, bool) {
	for i := range f.Steps {
		for j := range f.Steps[i].Fields {
			if f.Steps[i].Fields[j].Key == key {
				return &f.Steps[i].Fields[j], true
			}
		}
	}
	return nil, false
}

// StepOf returns the 1-based index of the step declaring key, or 0.
func (f *Form) StepOf(key string) int {
	for i, s := range f.Steps {
		for _, fd := range s.Fields {
			if fd.Key == key {
				return i + 1
			}
		}
	}
	return 0
}
