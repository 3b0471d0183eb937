package domain

// FieldKind selects the input widget used for a field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldCheckbox FieldKind = "checkbox"
	FieldFile     FieldKind = "file"
)

// Valid reports whether k is one of the known field kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldText, FieldEmail, FieldTextarea, FieldSelect, FieldCheckbox, FieldFile:
		return true
	}
	return false
}

// IsTextual reports whether the kind stores a text value.
func (k FieldKind) IsTextual() bool {
	return k == FieldText || k == FieldEmail || k == FieldTextarea || k == FieldSelect
}

// ValidationNumbers restricts a text field to ASCII digits.
const ValidationNumbers = "numbers"

// MaxConditions is the number of visibility conditions a field may declare.
const MaxConditions = 2

// Condition is a key/expected-value equality check against another field.
type Condition struct {
	Key    string `json:"key" yaml:"key"`
	Equals Value  `json:"equals" yaml:"equals"`
}

// Field describes one input of a step.
type Field struct {
	Key         string      `json:"key" yaml:"key"`
	Label       string      `json:"label" yaml:"label"`
	Kind        FieldKind   `json:"type" yaml:"type"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Multiple    bool        `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Validation  string      `json:"validation,omitempty" yaml:"validation,omitempty"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	When        []Condition `json:"when,omitempty" yaml:"when,omitempty"`
}

// NumericOnly reports whether the field only accepts digits.
func (f Field) NumericOnly() bool {
	return f.Validation == ValidationNumbers
}

// HasOption reports whether v is one of the field options.
func (f Field) HasOption(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}
