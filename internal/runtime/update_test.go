package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/domain"
)

func TestEngine_Update_NumericFilter(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := set(t, e, start(t, e), "age", domain.TextValue("42"))

	for _, in := range []string{"42a", "4 2", "-1", "٤٢", "1.5"} {
		next, err := e.Update(context.Background(), s, "age", domain.TextValue(in))
		require.NoError(t, err, in)
		got, _ := next.Get("age")
		assert.Equal(t, "42", got.Text, "input %q must be ignored", in)
	}

	cleared := set(t, e, s, "age", domain.TextValue(""))
	got, _ := cleared.Get("age")
	assert.Equal(t, "", got.Text)
}

func TestEngine_Update_Errors(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)

	tests := []struct {
		name string
		key  string
		val  domain.Value
		want error
	}{
		{"unknown key", "nope", domain.TextValue("x"), domain.ErrUnknownField},
		{"bool into text", "email", domain.BoolValue(true), domain.ErrValueShape},
		{"text into checkbox", "employed", domain.TextValue("true"), domain.ErrValueShape},
		{"files into single file", "cv", domain.FilesValue(domain.FileRef{Name: "a"}), domain.ErrValueShape},
		{"file into multiple", "extras", domain.FileValue(domain.FileRef{Name: "a"}), domain.ErrValueShape},
		{"option not listed", "role", domain.TextValue("pilot"), domain.ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Update(context.Background(), s, tt.key, tt.val)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEngine_Update_EmptySelectAllowed(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := set(t, e, start(t, e), "role", domain.TextValue(""))
	v, ok := s.Get("role")
	assert.True(t, ok)
	assert.Equal(t, "", v.Text)
}

func TestEngine_Toggle(t *testing.T) {
	ctx := context.Background()
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)

	once, err := e.Toggle(ctx, s, "employed")
	require.NoError(t, err)
	v, _ := once.Get("employed")
	assert.True(t, v.Bool, "absent toggles to checked")

	twice, err := e.Toggle(ctx, once, "employed")
	require.NoError(t, err)
	v, _ = twice.Get("employed")
	assert.False(t, v.Bool)

	thrice, err := e.Toggle(ctx, twice, "employed")
	require.NoError(t, err)
	v, _ = thrice.Get("employed")
	assert.True(t, v.Bool, "toggling twice restores the value")
}

func TestEngine_Toggle_Errors(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)

	_, err := e.Toggle(context.Background(), s, "email")
	assert.ErrorIs(t, err, domain.ErrValueShape)
	_, err = e.Toggle(context.Background(), s, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestEngine_Reset(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := reachReview(t, e)
	s, _, err := e.Submit(context.Background(), s)
	require.NoError(t, err)

	s, err = e.Reset(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentStep)
	assert.Empty(t, s.Values)
	assert.Equal(t, domain.StatusActive, s.Status)
	assert.Nil(t, s.SubmittedAt)
	assert.Equal(t, "s1", s.SessionID)
}

func TestIsProvided(t *testing.T) {
	text := &domain.Field{Kind: domain.FieldText}
	check := &domain.Field{Kind: domain.FieldCheckbox}
	file := &domain.Field{Kind: domain.FieldFile}
	files := &domain.Field{Kind: domain.FieldFile, Multiple: true}

	tests := []struct {
		name  string
		field *domain.Field
		val   domain.Value
		ok    bool
		want  bool
	}{
		{"absent", text, domain.Value{}, false, false},
		{"empty text", text, domain.TextValue(""), true, false},
		{"blank text", text, domain.TextValue(" \t"), true, false},
		{"text", text, domain.TextValue("x"), true, true},
		{"unchecked", check, domain.BoolValue(false), true, false},
		{"checked", check, domain.BoolValue(true), true, true},
		{"file without name", file, domain.FileValue(domain.FileRef{}), true, false},
		{"file", file, domain.FileValue(domain.FileRef{Name: "a.pdf"}), true, true},
		{"empty list", files, domain.FilesValue(), true, false},
		{"list", files, domain.FilesValue(domain.FileRef{Name: "a"}), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.IsProvided(tt.field, tt.val, tt.ok))
		})
	}
}

func TestIsVisible(t *testing.T) {
	field := &domain.Field{
		Key: "reason",
		When: []domain.Condition{
			{Key: "role", Equals: domain.TextValue("engineer")},
			{Key: "remote", Equals: domain.BoolValue(true)},
		},
	}

	tests := []struct {
		name   string
		values map[string]domain.Value
		want   bool
	}{
		{"no values", nil, false},
		{"one condition", map[string]domain.Value{"role": domain.TextValue("engineer")}, false},
		{"both", map[string]domain.Value{"role": domain.TextValue("engineer"), "remote": domain.BoolValue(true)}, true},
		{"wrong kind", map[string]domain.Value{"role": domain.TextValue("engineer"), "remote": domain.TextValue("true")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.IsVisible(field, tt.values))
		})
	}

	assert.True(t, runtime.IsVisible(&domain.Field{Key: "x"}, nil))
}

func TestIsVisible_UnsetCheckboxIsUnchecked(t *testing.T) {
	unemployed := &domain.Field{When: []domain.Condition{{Key: "employed", Equals: domain.BoolValue(false)}}}
	employed := &domain.Field{When: []domain.Condition{{Key: "employed", Equals: domain.BoolValue(true)}}}
	named := &domain.Field{When: []domain.Condition{{Key: "role", Equals: domain.TextValue("")}}}

	tests := []struct {
		name   string
		field  *domain.Field
		values map[string]domain.Value
		want   bool
	}{
		{"false operand, unset", unemployed, map[string]domain.Value{}, true},
		{"false operand, unchecked", unemployed, map[string]domain.Value{"employed": domain.BoolValue(false)}, true},
		{"false operand, checked", unemployed, map[string]domain.Value{"employed": domain.BoolValue(true)}, false},
		{"true operand, unset", employed, nil, false},
		{"text operand, unset", named, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.IsVisible(tt.field, tt.values))
		})
	}
}

func TestToggle_HidesFieldConditionedOnUnchecked(t *testing.T) {
	form := &domain.Form{
		Title: "Status",
		Steps: []domain.Step{
			{
				ID: "status", Title: "Status",
				Fields: []domain.Field{
					{Key: "employed", Label: "Employed", Kind: domain.FieldCheckbox},
					{
						Key: "seeking", Label: "What are you looking for", Kind: domain.FieldText, Required: true,
						When: []domain.Condition{{Key: "employed", Equals: domain.BoolValue(false)}},
					},
				},
			},
			{ID: "review", Title: "Review", Summary: true},
		},
	}
	e := runtime.NewEngine(form)
	ctx := context.Background()
	s, err := e.Start(ctx, "s1")
	require.NoError(t, err)

	view, err := e.Render(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"seeking"}, view.Missing)

	s, err = e.Toggle(ctx, s, "employed")
	require.NoError(t, err)
	view, err = e.Render(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, view.Missing)
	assert.True(t, view.CanAdvance)
}
