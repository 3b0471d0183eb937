package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/aretw0/stepwise/pkg/domain"
)

// AskFunc matches survey.AskOne so prompts can be scripted in tests.
type AskFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

// SurveyPrompter renders fields as interactive terminal widgets.
type SurveyPrompter struct {
	ask  AskFunc
	opts []survey.AskOpt
	out  terminal.FileWriter
}

// SurveyOption configures a SurveyPrompter.
type SurveyOption func(*SurveyPrompter)

// WithAskFunc replaces survey.AskOne.
func WithAskFunc(fn AskFunc) SurveyOption {
	return func(p *SurveyPrompter) {
		p.ask = fn
	}
}

// WithStdio sets the terminal streams used by survey.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) SurveyOption {
	return func(p *SurveyPrompter) {
		p.out = out
		p.opts = append(p.opts, survey.WithStdio(in, out, errOut))
	}
}

// NewSurveyPrompter creates a prompter on the process terminal.
func NewSurveyPrompter(opts ...SurveyOption) *SurveyPrompter {
	p := &SurveyPrompter{ask: survey.AskOne}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *SurveyPrompter) Show(ctx context.Context, text string) error {
	if p.out != nil {
		_, err := fmt.Fprintln(p.out, strings.TrimRight(text, "\n"))
		return err
	}
	fmt.Println(strings.TrimRight(text, "\n"))
	return nil
}

func (p *SurveyPrompter) Field(ctx context.Context, field domain.FieldView) (domain.Value, error) {
	if err := ctx.Err(); err != nil {
		return domain.Value{}, err
	}
	message := promptLabel(field)
	current := currentText(field)
	opts := append([]survey.AskOpt{}, p.opts...)

	switch field.Kind {
	case domain.FieldCheckbox:
		out := field.Value != nil && field.Value.Bool
		if err := p.ask(&survey.Confirm{Message: message, Default: out}, &out, opts...); err != nil {
			return domain.Value{}, translateSurveyErr(err)
		}
		return domain.BoolValue(out), nil

	case domain.FieldSelect:
		var out string
		prompt := &survey.Select{Message: message, Options: field.Options}
		if field.Value != nil && containsString(field.Options, current) {
			prompt.Default = current
		}
		if err := p.ask(prompt, &out, opts...); err != nil {
			return domain.Value{}, translateSurveyErr(err)
		}
		return domain.TextValue(out), nil

	case domain.FieldTextarea:
		var out string
		if err := p.ask(&survey.Multiline{Message: message, Default: current}, &out, opts...); err != nil {
			return domain.Value{}, translateSurveyErr(err)
		}
		return domain.TextValue(out), nil

	case domain.FieldFile:
		help := "Path to a file"
		if field.Multiple {
			help = "Paths, comma separated"
		}
		var out string
		validate := func(ans any) error {
			s, _ := ans.(string)
			_, err := fileValue(field, s)
			return err
		}
		opts = append(opts, survey.WithValidator(validate))
		if err := p.ask(&survey.Input{Message: message, Help: help}, &out, opts...); err != nil {
			return domain.Value{}, translateSurveyErr(err)
		}
		if strings.TrimSpace(out) == "" && field.Value != nil {
			return domain.Value{}, ErrSkip
		}
		return fileValue(field, out)

	default:
		var out string
		prompt := &survey.Input{Message: message, Default: current}
		if field.Numeric {
			prompt.Help = "Digits only"
		}
		if field.Required {
			opts = append(opts, survey.WithValidator(survey.Required))
		}
		if err := p.ask(prompt, &out, opts...); err != nil {
			return domain.Value{}, translateSurveyErr(err)
		}
		clean, err := SanitizeAnswer(field.Numeric, out)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.TextValue(clean), nil
	}
}

func (p *SurveyPrompter) Choose(ctx context.Context, actions []Action) (Action, error) {
	if err := ctx.Err(); err != nil {
		return Action{}, err
	}
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.String()
	}
	var idx int
	if err := p.ask(&survey.Select{Message: "What next?", Options: labels}, &idx, p.opts...); err != nil {
		return Action{}, translateSurveyErr(err)
	}
	if idx < 0 || idx >= len(actions) {
		return Action{}, fmt.Errorf("invalid choice %d", idx)
	}
	return actions[idx], nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func containsString(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
