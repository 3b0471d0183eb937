package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/pkg/domain"
)

func TestTextPrompter_Field(t *testing.T) {
	current := domain.TextValue("old")

	tests := []struct {
		name    string
		field   domain.FieldView
		input   string
		want    domain.Value
		wantErr error
		output  string
	}{
		{
			name:  "text",
			field: domain.FieldView{Key: "name", Label: "Name", Kind: domain.FieldText},
			input: "  Ada \n",
			want:  domain.TextValue("Ada"),
		},
		{
			name:    "empty keeps current",
			field:   domain.FieldView{Key: "name", Label: "Name", Kind: domain.FieldText, Value: &current},
			input:   "\n",
			wantErr: ErrSkip,
			output:  "Name [old]: ",
		},
		{
			name:   "checkbox reasks",
			field:  domain.FieldView{Key: "ok", Label: "Agree", Kind: domain.FieldCheckbox, Required: true},
			input:  "maybe\nyes\n",
			want:   domain.BoolValue(true),
			output: "answer y or n",
		},
		{
			name:   "select by number",
			field:  domain.FieldView{Key: "role", Label: "Role", Kind: domain.FieldSelect, Options: []string{"engineer", "designer"}},
			input:  "2\n",
			want:   domain.TextValue("designer"),
			output: "  1) engineer\n  2) designer\n",
		},
		{
			name:  "numeric answer kept verbatim",
			field: domain.FieldView{Key: "age", Label: "Age", Kind: domain.FieldText, Numeric: true},
			input: "4\a2\n",
			want:  domain.TextValue("4\a2"),
		},
		{
			name:  "text answer cleaned",
			field: domain.FieldView{Key: "name", Label: "Name", Kind: domain.FieldText},
			input: "A\ada\n",
			want:  domain.TextValue("Ada"),
		},
		{
			name:  "select by text",
			field: domain.FieldView{Key: "role", Label: "Role", Kind: domain.FieldSelect, Options: []string{"engineer", "designer"}},
			input: "engineer\n",
			want:  domain.TextValue("engineer"),
		},
		{
			name:   "select out of range",
			field:  domain.FieldView{Key: "role", Label: "Role", Kind: domain.FieldSelect, Options: []string{"engineer"}},
			input:  "7\n1\n",
			want:   domain.TextValue("engineer"),
			output: "choose 1-1",
		},
		{
			name:  "textarea",
			field: domain.FieldView{Key: "bio", Label: "Bio", Kind: domain.FieldTextarea},
			input: "line one\nline two\n\n",
			want:  domain.TextValue("line one\nline two"),
		},
		{
			name:    "eof aborts",
			field:   domain.FieldView{Key: "name", Label: "Name", Kind: domain.FieldText},
			input:   "",
			wantErr: ErrAborted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewTextPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Field(context.Background(), tt.field)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.want.Equal(got), "got %+v", got)
			}
			if tt.output != "" {
				assert.Contains(t, out.String(), tt.output)
			}
		})
	}
}

func TestTextPrompter_FileField(t *testing.T) {
	path := writeTemp(t, "cv.pdf", "hello")

	var out bytes.Buffer
	p := NewTextPrompter(strings.NewReader(path+"\n"), &out)

	got, err := p.Field(context.Background(), domain.FieldView{Key: "cv", Label: "CV", Kind: domain.FieldFile})
	require.NoError(t, err)
	f, ok := got.File()
	require.True(t, ok)
	assert.Equal(t, "cv.pdf", f.Name)
	assert.Equal(t, int64(5), f.Size)
	assert.Equal(t, "application/pdf", f.ContentType)
}

func TestTextPrompter_Choose(t *testing.T) {
	actions := []Action{
		{Kind: ActionNext, Label: "Next"},
		{Kind: ActionJump, Step: 1, Label: "Go to 1. Contact"},
		{Kind: ActionQuit, Label: "Quit"},
	}

	tests := []struct {
		name  string
		input string
		want  Action
	}{
		{"by number", "2\n", actions[1]},
		{"by kind", "QUIT\n", actions[2]},
		{"reasks", "0\nnope\n1\n", actions[0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewTextPrompter(strings.NewReader(tt.input), &out)
			got, err := p.Choose(context.Background(), actions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "  3) Quit")
		})
	}
}

func TestTextPrompter_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewTextPrompter(r, io.Discard)
	_, err := p.Field(ctx, domain.FieldView{Key: "name", Label: "Name", Kind: domain.FieldText})
	assert.ErrorIs(t, err, context.Canceled)
}
