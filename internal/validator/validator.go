package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Issue is a single problem found in a form definition.
type Issue struct {
	Path   string // e.g. steps[1].fields[0]
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Reason)
}

// Error aggregates every issue found in a form definition.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 1 {
		return "invalid form: " + e.Issues[0].String()
	}
	lines := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		lines[i] = is.String()
	}
	return fmt.Sprintf("invalid form: found %d errors:\n- %s", len(e.Issues), strings.Join(lines, "\n- "))
}

// Validate checks the structural rules of a form definition and reports all
// violations at once. It returns nil for a valid form.
func Validate(form *domain.Form) error {
	v := &collector{}
	if form == nil || len(form.Steps) == 0 {
		v.add("steps", "form must declare at least one step")
		return v.err()
	}

	summaries := 0
	stepIDs := make(map[string]int)
	fieldKeys := make(map[string]string)

	for i, step := range form.Steps {
		path := fmt.Sprintf("steps[%d]", i)
		switch {
		case step.ID == "":
			v.add(path, "step id is required")
		case stepIDs[step.ID] > 0:
			v.add(path, fmt.Sprintf("duplicate step id %q", step.ID))
		}
		stepIDs[step.ID]++

		if step.Summary {
			summaries++
			if i != len(form.Steps)-1 {
				v.add(path, "summary step must be the last step")
			}
			if len(step.Fields) > 0 {
				v.add(path, "summary step cannot declare fields")
			}
			continue
		}
		if len(step.Fields) == 0 {
			v.add(path, "step must declare at least one field")
		}

		for j, f := range step.Fields {
			fpath := fmt.Sprintf("%s.fields[%d]", path, j)
			if f.Key == "" {
				v.add(fpath, "field key is required")
			} else if owner, dup := fieldKeys[f.Key]; dup {
				v.add(fpath, fmt.Sprintf("duplicate field key %q (first declared in %s)", f.Key, owner))
			} else {
				fieldKeys[f.Key] = step.ID
			}
			checkField(v, fpath, f)
		}
	}

	if summaries != 1 {
		v.add("steps", fmt.Sprintf("form must declare exactly one summary step, found %d", summaries))
	}

	// Conditions may reference fields of any step, so resolve after indexing.
	for i, step := range form.Steps {
		for j, f := range step.Fields {
			for k, c := range f.When {
				cpath := fmt.Sprintf("steps[%d].fields[%d].when[%d]", i, j, k)
				if c.Key == f.Key {
					v.add(cpath, "field cannot depend on itself")
					continue
				}
				target, ok := form.Field(c.Key)
				if !ok {
					v.add(cpath, fmt.Sprintf("unknown field %q", c.Key))
					continue
				}
				if target.Kind == domain.FieldCheckbox && c.Equals.Kind != domain.ValueBool {
					v.add(cpath, fmt.Sprintf("condition on checkbox %q must compare to a boolean", c.Key))
				}
			}
		}
	}

	return v.err()
}

func checkField(v *collector, path string, f domain.Field) {
	if f.Label == "" {
		v.add(path, "field label is required")
	}
	if !f.Kind.Valid() {
		v.add(path, fmt.Sprintf("unknown field type %q", f.Kind))
		return
	}
	if f.Kind == domain.FieldSelect && len(f.Options) == 0 {
		v.add(path, "select field requires options")
	}
	if f.Kind != domain.FieldSelect && len(f.Options) > 0 {
		v.add(path, "options are only allowed on select fields")
	}
	if f.Multiple && f.Kind != domain.FieldFile {
		v.add(path, "multiple is only allowed on file fields")
	}
	if f.Validation != "" {
		if f.Validation != domain.ValidationNumbers {
			v.add(path, fmt.Sprintf("unknown validation %q", f.Validation))
		} else if f.Kind != domain.FieldText {
			v.add(path, "numbers validation is only allowed on text fields")
		}
	}
	if len(f.When) > domain.MaxConditions {
		v.add(path, fmt.Sprintf("at most %d conditions are allowed, found %d", domain.MaxConditions, len(f.When)))
	}
}

type collector struct {
	issues []Issue
}

func (c *collector) add(path, reason string) {
	c.issues = append(c.issues, Issue{Path: path, Reason: reason})
}

func (c *collector) err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &Error{Issues: c.issues}
}
