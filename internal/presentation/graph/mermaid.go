// Package graph draws a form as a Mermaid flowchart: one subgraph per step,
// one node per field and dotted edges for visibility conditions.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Overlay marks session progress on the chart.
type Overlay struct {
	Visited []int
	Current int
}

// OverlayFor builds the overlay of a session state.
func OverlayFor(state *domain.State) *Overlay {
	if state == nil {
		return nil
	}
	return &Overlay{Visited: state.History, Current: state.CurrentStep}
}

// GenerateMermaid renders the outline of form. Field shapes follow the kind:
//   - text, email, textarea: [/Parallelogram/]
//   - select: [[Subroutine]]
//   - checkbox: {{Hexagon}}
//   - file: [(Cylinder)]
//
// Required fields carry a trailing asterisk. The summary step is drawn as a
// stadium.
func GenerateMermaid(form *domain.Form, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, step := range form.Steps {
		idx := i + 1
		title := fmt.Sprintf("%d. %s", idx, step.Title)
		if step.Summary {
			fmt.Fprintf(&sb, "    %s([\"%s\"])\n", stepID(idx), escape(title))
			continue
		}
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", stepID(idx), escape(title))
		for _, f := range step.Fields {
			opener, closer := shape(f.Kind)
			label := f.Label
			if f.Required {
				label += " *"
			}
			fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", fieldID(f.Key), opener, escape(label), closer)
		}
		sb.WriteString("    end\n")
	}

	for i := 1; i < len(form.Steps); i++ {
		fmt.Fprintf(&sb, "    %s --> %s\n", stepID(i), stepID(i+1))
	}

	for _, step := range form.Steps {
		for _, f := range step.Fields {
			for _, c := range f.When {
				fmt.Fprintf(&sb, "    %s -. \"= %s\" .-> %s\n", fieldID(c.Key), escape(c.Equals.String()), fieldID(f.Key))
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, idx := range overlay.Visited {
			if idx == overlay.Current || seen[idx] || idx < 1 || idx > len(form.Steps) {
				continue
			}
			seen[idx] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", stepID(idx))
		}
		if overlay.Current >= 1 && overlay.Current <= len(form.Steps) {
			fmt.Fprintf(&sb, "    class %s current;\n", stepID(overlay.Current))
		}
	}

	return sb.String()
}

func shape(kind domain.FieldKind) (string, string) {
	switch kind {
	case domain.FieldSelect:
		return "[[", "]]"
	case domain.FieldCheckbox:
		return "{{", "}}"
	case domain.FieldFile:
		return "[(", ")]"
	}
	return "[/", "/]"
}

func stepID(idx int) string {
	return fmt.Sprintf("step%d", idx)
}

func fieldID(key string) string {
	return "field_" + sanitizeMermaidID(key)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
