package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
)

// TextPrompter asks questions line by line. An empty answer keeps the
// current value; textarea answers end with an empty line.
type TextPrompter struct {
	Reader *bufio.Reader
	Writer io.Writer

	lines     chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// NewTextPrompter creates a prompter on the given streams, defaulting to
// Stdin and Stdout.
func NewTextPrompter(r io.Reader, w io.Writer) *TextPrompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TextPrompter{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
}

// pump reads lines in the background so a blocked read never outlives a
// cancelled context.
func (p *TextPrompter) pump() {
	for {
		text, err := p.Reader.ReadString('\n')
		if text != "" {
			p.lines <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				p.lines <- inputResult{err: err}
			}
			close(p.lines)
			return
		}
	}
}

func (p *TextPrompter) readLine(ctx context.Context, prompt string) (string, error) {
	return p.readAnswer(ctx, prompt, false)
}

func (p *TextPrompter) readAnswer(ctx context.Context, prompt string, numeric bool) (string, error) {
	p.startOnce.Do(func() {
		p.lines = make(chan inputResult)
		go p.pump()
	})

	fmt.Fprint(p.Writer, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			return "", ErrAborted
		}
		if res.err != nil {
			return "", res.err
		}
		return SanitizeAnswer(numeric, strings.TrimRight(res.text, "\r\n"))
	}
}

func (p *TextPrompter) Show(ctx context.Context, text string) error {
	_, err := fmt.Fprintln(p.Writer, strings.TrimRight(text, "\n"))
	return err
}

func (p *TextPrompter) Field(ctx context.Context, field domain.FieldView) (domain.Value, error) {
	for {
		value, err := p.askField(ctx, field)
		if err == nil || errors.Is(err, ErrSkip) || errors.Is(err, ErrAborted) || ctx.Err() != nil {
			return value, err
		}
		fmt.Fprintf(p.Writer, "Error: %v. Please try again.\n", err)
	}
}

func (p *TextPrompter) askField(ctx context.Context, field domain.FieldView) (domain.Value, error) {
	label := promptLabel(field)
	if cur := currentText(field); cur != "" {
		label += " [" + cur + "]"
	}

	switch field.Kind {
	case domain.FieldCheckbox:
		line, err := p.readLine(ctx, label+" (y/n): ")
		if err != nil {
			return domain.Value{}, err
		}
		if strings.TrimSpace(line) == "" {
			return domain.Value{}, ErrSkip
		}
		b, err := parseYesNo(line)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.BoolValue(b), nil

	case domain.FieldSelect:
		for i, o := range field.Options {
			fmt.Fprintf(p.Writer, "  %d) %s\n", i+1, o)
		}
		line, err := p.readLine(ctx, label+": ")
		if err != nil {
			return domain.Value{}, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return domain.Value{}, ErrSkip
		}
		if n, err := strconv.Atoi(line); err == nil {
			if n < 1 || n > len(field.Options) {
				return domain.Value{}, fmt.Errorf("choose 1-%d", len(field.Options))
			}
			return domain.TextValue(field.Options[n-1]), nil
		}
		return domain.TextValue(line), nil

	case domain.FieldFile:
		hint := "path"
		if field.Multiple {
			hint = "paths, comma separated"
		}
		line, err := p.readLine(ctx, fmt.Sprintf("%s (%s): ", label, hint))
		if err != nil {
			return domain.Value{}, err
		}
		if strings.TrimSpace(line) == "" {
			return domain.Value{}, ErrSkip
		}
		return fileValue(field, line)

	case domain.FieldTextarea:
		fmt.Fprintf(p.Writer, "%s (end with an empty line)\n", label)
		var lines []string
		for {
			line, err := p.readLine(ctx, "| ")
			if err != nil {
				return domain.Value{}, err
			}
			if line == "" {
				break
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			return domain.Value{}, ErrSkip
		}
		return domain.TextValue(strings.Join(lines, "\n")), nil

	default:
		line, err := p.readAnswer(ctx, label+": ", field.Numeric)
		if err != nil {
			return domain.Value{}, err
		}
		if line == "" {
			return domain.Value{}, ErrSkip
		}
		return domain.TextValue(strings.TrimSpace(line)), nil
	}
}

// Choose prints a numbered menu and reads a choice. Actions can also be
// picked by kind name, e.g. "next".
func (p *TextPrompter) Choose(ctx context.Context, actions []Action) (Action, error) {
	for i, a := range actions {
		fmt.Fprintf(p.Writer, "  %d) %s\n", i+1, a)
	}
	for {
		line, err := p.readLine(ctx, "> ")
		if err != nil {
			return Action{}, err
		}
		line = strings.ToLower(strings.TrimSpace(line))
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(actions) {
			return actions[n-1], nil
		}
		for _, a := range actions {
			if string(a.Kind) == line && a.Step == 0 {
				return a, nil
			}
		}
		fmt.Fprintf(p.Writer, "Please choose 1-%d.\n", len(actions))
	}
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("answer y or n")
}
