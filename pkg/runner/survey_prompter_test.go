package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/pkg/domain"
)

// fakeAsk records the prompt and writes a canned response.
func fakeAsk(seen *survey.Prompt, response any, err error) AskFunc {
	return func(p survey.Prompt, out any, opts ...survey.AskOpt) error {
		*seen = p
		if err != nil {
			return err
		}
		switch dst := out.(type) {
		case *string:
			*dst = response.(string)
		case *bool:
			*dst = response.(bool)
		case *int:
			*dst = response.(int)
		}
		return nil
	}
}

func TestSurveyPrompter_Field(t *testing.T) {
	tests := []struct {
		name     string
		field    domain.FieldView
		response any
		want     domain.Value
		prompt   survey.Prompt
	}{
		{
			name:     "checkbox uses confirm",
			field:    domain.FieldView{Kind: domain.FieldCheckbox, Label: "Agree"},
			response: true,
			want:     domain.BoolValue(true),
			prompt:   &survey.Confirm{},
		},
		{
			name:     "select",
			field:    domain.FieldView{Kind: domain.FieldSelect, Label: "Role", Options: []string{"a", "b"}},
			response: "b",
			want:     domain.TextValue("b"),
			prompt:   &survey.Select{},
		},
		{
			name:     "textarea uses multiline",
			field:    domain.FieldView{Kind: domain.FieldTextarea, Label: "Bio"},
			response: "x\ny",
			want:     domain.TextValue("x\ny"),
			prompt:   &survey.Multiline{},
		},
		{
			name:     "text",
			field:    domain.FieldView{Kind: domain.FieldEmail, Label: "Email"},
			response: "a@b.com",
			want:     domain.TextValue("a@b.com"),
			prompt:   &survey.Input{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen survey.Prompt
			p := NewSurveyPrompter(WithAskFunc(fakeAsk(&seen, tt.response, nil)))
			got, err := p.Field(context.Background(), tt.field)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %+v", got)
			assert.IsType(t, tt.prompt, seen)
		})
	}
}

func TestSurveyPrompter_Interrupt(t *testing.T) {
	var seen survey.Prompt
	p := NewSurveyPrompter(WithAskFunc(fakeAsk(&seen, nil, terminal.InterruptErr)))

	_, err := p.Field(context.Background(), domain.FieldView{Kind: domain.FieldText, Label: "Name"})
	assert.ErrorIs(t, err, ErrAborted)

	_, err = p.Choose(context.Background(), []Action{{Kind: ActionQuit}})
	assert.ErrorIs(t, err, ErrAborted)
}

func TestSurveyPrompter_Choose(t *testing.T) {
	var seen survey.Prompt
	p := NewSurveyPrompter(WithAskFunc(fakeAsk(&seen, 1, nil)))
	actions := []Action{{Kind: ActionNext, Label: "Next"}, {Kind: ActionQuit, Label: "Quit"}}

	got, err := p.Choose(context.Background(), actions)
	require.NoError(t, err)
	assert.Equal(t, actions[1], got)

	sel, ok := seen.(*survey.Select)
	require.True(t, ok)
	assert.Equal(t, []string{"Next", "Quit"}, sel.Options)
}

func TestSurveyPrompter_PassesOtherErrors(t *testing.T) {
	boom := errors.New("tty gone")
	var seen survey.Prompt
	p := NewSurveyPrompter(WithAskFunc(fakeAsk(&seen, nil, boom)))
	_, err := p.Field(context.Background(), domain.FieldView{Kind: domain.FieldCheckbox})
	assert.ErrorIs(t, err, boom)
}
