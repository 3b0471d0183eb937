package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/domain"
)

func TestEngine_Start(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)

	assert.Equal(t, "s1", s.SessionID)
	assert.Equal(t, 1, s.CurrentStep)
	assert.Equal(t, domain.StatusActive, s.Status)
	assert.Empty(t, s.Values)
	assert.Equal(t, []int{1}, s.History)
}

func TestEngine_Start_EmptyForm(t *testing.T) {
	e := runtime.NewEngine(&domain.Form{})
	_, err := e.Start(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

// Worked example: email required, company required only while employed.
func TestEngine_WorkedExample(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)

	s = set(t, e, s, "employed", domain.BoolValue(false))
	v := render(t, e, s)
	assert.False(t, v.CanAdvance)
	assert.Equal(t, []string{"email"}, v.Missing)
	assert.Equal(t, domain.IncompleteHint, v.Hint)

	s = set(t, e, s, "email", domain.TextValue("a@b.com"))
	v = render(t, e, s)
	assert.True(t, v.CanAdvance)
	assert.Empty(t, v.Hint)

	s = set(t, e, s, "employed", domain.BoolValue(true))
	v = render(t, e, s)
	assert.False(t, v.CanAdvance)
	assert.Equal(t, []string{"company"}, v.Missing)

	blocked := advance(t, e, s)
	assert.Equal(t, 1, blocked.CurrentStep)

	s = set(t, e, s, "company", domain.TextValue("Acme"))
	s = advance(t, e, s)
	assert.Equal(t, 2, s.CurrentStep)
}

func TestEngine_HiddenFieldsExcluded(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)
	s = set(t, e, s, "email", domain.TextValue("a@b.com"))
	s = advance(t, e, s)

	s = set(t, e, s, "role", domain.TextValue("designer"))
	s = set(t, e, s, "remote", domain.BoolValue(true))
	v := render(t, e, s)

	keys := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"age", "role", "remote"}, keys)
	assert.True(t, v.CanAdvance, "hidden required field must not block")

	s = set(t, e, s, "role", domain.TextValue("engineer"))
	v = render(t, e, s)
	assert.Len(t, v.Fields, 4)
	assert.False(t, v.CanAdvance)
	assert.Equal(t, []string{"reason"}, v.Missing)
}

func TestEngine_Render_Tabs(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)
	s = set(t, e, s, "email", domain.TextValue("a@b.com"))
	s = advance(t, e, s)

	v := render(t, e, s)
	require.Len(t, v.Tabs, 4)
	assert.True(t, v.Tabs[0].Reachable)
	assert.False(t, v.Tabs[0].Current)
	assert.True(t, v.Tabs[1].Current)
	assert.False(t, v.Tabs[2].Reachable)
	assert.True(t, v.CanRetreat)
	assert.Equal(t, "details", v.StepID)
	assert.Equal(t, "Job Application", v.FormTitle)
}

func TestEngine_Render_FieldView(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)
	s = set(t, e, s, "email", domain.TextValue("a@b.com"))
	s = advance(t, e, s)

	v := render(t, e, s)
	require.NotEmpty(t, v.Fields)
	age := v.Fields[0]
	assert.Equal(t, "age", age.Key)
	assert.True(t, age.Numeric)
	assert.Nil(t, age.Value)

	v = render(t, e, set(t, e, s, "age", domain.TextValue("42")))
	require.NotNil(t, v.Fields[0].Value)
	assert.Equal(t, "42", v.Fields[0].Value.Text)
}

func TestEngine_Render_InvalidStep(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	_, err := e.Render(context.Background(), &domain.State{CurrentStep: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestEngine_Inspect(t *testing.T) {
	form := applicationForm()
	e := runtime.NewEngine(form)
	assert.Same(t, form, e.Inspect())
}

func TestEngine_Immutability(t *testing.T) {
	e := runtime.NewEngine(applicationForm())
	s := start(t, e)
	next := set(t, e, s, "email", domain.TextValue("a@b.com"))

	_, ok := s.Get("email")
	assert.False(t, ok, "update must not mutate the input state")
	assert.NotSame(t, s, next)
}
