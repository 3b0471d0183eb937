package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/domain"
)

// applicationForm mirrors a small job application:
// personal (email, employed, company when employed), details (age, role,
// remote + reason when role=engineer and remote), documents (cv, extras),
// review.
func applicationForm() *domain.Form {
	return &domain.Form{
		Title: "Job Application",
		Steps: []domain.Step{
			{
				ID:    "personal",
				Title: "Personal Information",
				Fields: []domain.Field{
					{Key: "email", Label: "Email", Kind: domain.FieldEmail, Required: true},
					{Key: "employed", Label: "Currently employed", Kind: domain.FieldCheckbox},
					{
						Key: "company", Label: "Company", Kind: domain.FieldText, Required: true,
						When: []domain.Condition{{Key: "employed", Equals: domain.BoolValue(true)}},
					},
				},
			},
			{
				ID:    "details",
				Title: "Details",
				Fields: []domain.Field{
					{Key: "age", Label: "Age", Kind: domain.FieldText, Validation: domain.ValidationNumbers},
					{Key: "role", Label: "Role", Kind: domain.FieldSelect, Options: []string{"engineer", "designer"}, Required: true},
					{Key: "remote", Label: "Remote", Kind: domain.FieldCheckbox},
					{
						Key: "reason", Label: "Why remote", Kind: domain.FieldTextarea, Required: true,
						When: []domain.Condition{
							{Key: "role", Equals: domain.TextValue("engineer")},
							{Key: "remote", Equals: domain.BoolValue(true)},
						},
					},
				},
			},
			{
				ID:    "documents",
				Title: "Documents",
				Fields: []domain.Field{
					{Key: "cv", Label: "CV", Kind: domain.FieldFile, Required: true},
					{Key: "extras", Label: "Extras", Kind: domain.FieldFile, Multiple: true},
				},
			},
			{ID: "review", Title: "Review & Submit", Summary: true},
		},
	}
}

func start(t *testing.T, e *runtime.Engine) *domain.State {
	t.Helper()
	s, err := e.Start(context.Background(), "s1")
	require.NoError(t, err)
	return s
}

func set(t *testing.T, e *runtime.Engine, s *domain.State, key string, v domain.Value) *domain.State {
	t.Helper()
	next, err := e.Update(context.Background(), s, key, v)
	require.NoError(t, err)
	return next
}

func advance(t *testing.T, e *runtime.Engine, s *domain.State) *domain.State {
	t.Helper()
	next, err := e.Advance(context.Background(), s)
	require.NoError(t, err)
	return next
}

func render(t *testing.T, e *runtime.Engine, s *domain.State) *domain.View {
	t.Helper()
	v, err := e.Render(context.Background(), s)
	require.NoError(t, err)
	return v
}

// reachReview fills every required field and walks to the summary step.
func reachReview(t *testing.T, e *runtime.Engine) *domain.State {
	t.Helper()
	s := start(t, e)
	s = set(t, e, s, "email", domain.TextValue("a@b.com"))
	s = advance(t, e, s)
	s = set(t, e, s, "role", domain.TextValue("designer"))
	s = advance(t, e, s)
	s = set(t, e, s, "cv", domain.FileValue(domain.FileRef{Name: "cv.pdf", Size: 10}))
	s = advance(t, e, s)
	require.Equal(t, 4, s.CurrentStep)
	return s
}
