package runtime_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/domain"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		val  domain.Value
		ok   bool
		want string
	}{
		{"absent", domain.Value{}, false, "Not provided"},
		{"empty text", domain.TextValue(""), true, "Not provided"},
		{"text", domain.TextValue("Acme"), true, "Acme"},
		{"true", domain.BoolValue(true), true, "Yes"},
		{"false", domain.BoolValue(false), true, "No"},
		{"file", domain.FileValue(domain.FileRef{Name: "cv.pdf"}), true, "cv.pdf"},
		{"nameless file", domain.FileValue(domain.FileRef{}), true, "File uploaded"},
		{"files", domain.FilesValue(domain.FileRef{Name: "a.png"}, domain.FileRef{Name: "b.png"}), true, "a.png, b.png"},
		{"no files", domain.FilesValue(), true, "No files uploaded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.FormatValue(tt.val, tt.ok))
		})
	}
}

func TestBuildSummary(t *testing.T) {
	form := applicationForm()
	values := map[string]domain.Value{
		"email":    domain.TextValue("a@b.com"),
		"employed": domain.BoolValue(false),
		"role":     domain.TextValue("designer"),
		"cv":       domain.FileValue(domain.FileRef{Name: "cv.pdf"}),
	}

	want := &domain.Summary{Sections: []domain.SummarySection{
		{StepID: "personal", Title: "Personal Information", EditStep: 1, Rows: []domain.SummaryRow{
			{Key: "email", Label: "Email", Display: "a@b.com"},
			{Key: "employed", Label: "Currently employed", Display: "No"},
		}},
		{StepID: "details", Title: "Details", EditStep: 2, Rows: []domain.SummaryRow{
			{Key: "age", Label: "Age", Display: "Not provided"},
			{Key: "role", Label: "Role", Display: "designer"},
			{Key: "remote", Label: "Remote", Display: "Not provided"},
		}},
		{StepID: "documents", Title: "Documents", EditStep: 3, Rows: []domain.SummaryRow{
			{Key: "cv", Label: "CV", Display: "cv.pdf"},
			{Key: "extras", Label: "Extras", Display: "Not provided"},
		}},
	}}

	got := runtime.BuildSummary(form, values)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildSummary() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSummary_OmitsHiddenSteps(t *testing.T) {
	form := &domain.Form{Steps: []domain.Step{
		{ID: "a", Title: "A", Fields: []domain.Field{{Key: "go", Label: "Go", Kind: domain.FieldCheckbox}}},
		{ID: "b", Title: "B", Fields: []domain.Field{{
			Key: "why", Label: "Why", Kind: domain.FieldText,
			When: []domain.Condition{{Key: "go", Equals: domain.BoolValue(true)}},
		}}},
		{ID: "end", Title: "End", Summary: true},
	}}

	hidden := runtime.BuildSummary(form, map[string]domain.Value{})
	require.Len(t, hidden.Sections, 1)
	assert.Equal(t, "a", hidden.Sections[0].StepID)

	shown := runtime.BuildSummary(form, map[string]domain.Value{"go": domain.BoolValue(true)})
	require.Len(t, shown.Sections, 2)
	assert.Equal(t, 2, shown.Sections[1].EditStep)
}

func TestMarkdown(t *testing.T) {
	summary := &domain.Summary{Sections: []domain.SummarySection{{
		Title: "Personal", EditStep: 1,
		Rows: []domain.SummaryRow{{Label: "Name", Display: "*bold*_name_"}},
	}}}

	md := summary.Markdown("Form")
	assert.Contains(t, md, "# Form")
	assert.Contains(t, md, domain.ReviewIntro)
	assert.Contains(t, md, "## 1. Personal")
	assert.Contains(t, md, `- **Name**: \*bold\*\_name\_`)
}

func TestEngine_Render_Summary(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	v := render(t, e, reachReview(t, e))

	assert.True(t, v.IsSummary)
	assert.True(t, v.CanSubmit)
	assert.False(t, v.CanAdvance)
	assert.Empty(t, v.Fields)
	require.NotNil(t, v.Summary)
	assert.Len(t, v.Summary.Sections, 3)
}
