package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/domain"
)

const contactYAML = `title: Contact
steps:
  - id: contact
    title: Contact
    fields:
      - key: email
        label: Email
        type: email
        required: true
      - key: employed
        label: Employed
        type: checkbox
      - key: company
        label: Company
        type: text
        required: true
        when:
          - key: employed
            equals: true
  - id: review
    title: Review
    summary: true
`

const brokenYAML = `title: Broken
steps:
  - id: contact
    title: Contact
    fields:
      - key: email
        type: colour
`

func writeForm(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, store string) config.Config {
	t.Helper()
	return config.Config{
		Store:       store,
		SessionDir:  filepath.Join(t.TempDir(), "sessions"),
		MaxSessions: 16,
		LogLevel:    "error",
	}
}

func TestOpenBackend(t *testing.T) {
	tests := []struct {
		store   string
		want    string
		wantErr bool
	}{
		{store: "", want: config.StoreMemory},
		{store: config.StoreMemory, want: config.StoreMemory},
		{store: config.StoreFile, want: config.StoreFile},
		{store: "postgres", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			backend, err := OpenBackend(testConfig(t, tt.store))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer backend.Close()
			assert.Equal(t, tt.want, backend.Kind)
			assert.Nil(t, backend.Locker)
			assert.NotNil(t, backend.Sessions(nil))
		})
	}
}

func TestValidateForm(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ValidateForm(context.Background(), writeForm(t, contactYAML), &out))
	assert.Contains(t, out.String(), "valid (2 steps, 3 fields)")

	out.Reset()
	err := ValidateForm(context.Background(), writeForm(t, brokenYAML), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue(s) found")
	assert.Contains(t, out.String(), "field label is required")
	assert.Contains(t, out.String(), `unknown field type "colour"`)
	assert.Contains(t, out.String(), "exactly one summary step")

	_, err = os.Stat("missing.yaml")
	require.True(t, os.IsNotExist(err))
	assert.Error(t, ValidateForm(context.Background(), "missing.yaml", &out))
}

func TestOutline(t *testing.T) {
	ctx := context.Background()
	path := writeForm(t, contactYAML)

	var out bytes.Buffer
	require.NoError(t, Outline(ctx, path, nil, "", &out))
	assert.Contains(t, out.String(), "graph TD")
	assert.Contains(t, out.String(), "field_email")
	assert.NotContains(t, out.String(), "classDef current")

	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, "s1", &domain.State{SessionID: "s1", CurrentStep: 2, History: []int{1, 2}}))

	out.Reset()
	require.NoError(t, Outline(ctx, path, store, "s1", &out))
	assert.Contains(t, out.String(), "classDef current")

	assert.Error(t, Outline(ctx, path, store, "missing", &out))
}

func TestSessionCommands(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	var out bytes.Buffer
	require.NoError(t, ListSessions(ctx, store, &out))
	assert.Contains(t, out.String(), "No active sessions")

	require.NoError(t, store.Save(ctx, "s1", &domain.State{SessionID: "s1", CurrentStep: 1, History: []int{1}}))

	out.Reset()
	require.NoError(t, ListSessions(ctx, store, &out))
	assert.Equal(t, "s1\n", out.String())

	out.Reset()
	require.NoError(t, InspectSession(ctx, store, "s1", &out))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "s1", decoded["session_id"])

	err := InspectSession(ctx, store, "missing", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	out.Reset()
	require.NoError(t, DeleteSession(ctx, store, "s1", &out))
	assert.Contains(t, out.String(), "deleted")
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRunSession_PlainInput(t *testing.T) {
	ctx := context.Background()
	output := filepath.Join(t.TempDir(), "submissions.jsonl")
	cfg := testConfig(t, config.StoreFile)

	// email, employed, company, then Next and Submit.
	in := strings.NewReader("a@b.com\ny\nAcme\n1\n1\n")
	var out bytes.Buffer

	err := RunSession(ctx, RunOptions{
		FormPath:  writeForm(t, contactYAML),
		SessionID: "cli-1",
		Quiet:     true,
		Output:    output,
		Config:    cfg,
	}, in, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[2/2] Review")
	assert.Contains(t, out.String(), domain.Acknowledgement)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var sub domain.Submission
	require.NoError(t, json.Unmarshal(data, &sub))
	assert.Equal(t, "cli-1", sub.SessionID)
	assert.Equal(t, "Acme", sub.Values["company"])

	backend, err := OpenBackend(cfg)
	require.NoError(t, err)
	state, err := backend.Store.Load(ctx, "cli-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, state.Status)
}

func TestRunSession_EndOfInputKeepsProgress(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.StoreFile)
	path := writeForm(t, contactYAML)

	var out bytes.Buffer
	err := RunSession(ctx, RunOptions{
		FormPath:  path,
		SessionID: "cli-2",
		Config:    cfg,
	}, strings.NewReader("a@b.com\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Interrupted")

	backend, err := OpenBackend(cfg)
	require.NoError(t, err)
	state, err := backend.Store.Load(ctx, "cli-2")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", state.Values["email"].Text)

	// Fresh discards the saved answers.
	out.Reset()
	err = RunSession(ctx, RunOptions{
		FormPath:  path,
		SessionID: "cli-2",
		Fresh:     true,
		Quiet:     true,
		Config:    cfg,
	}, strings.NewReader(""), &out)
	require.NoError(t, err)
	state, err = backend.Store.Load(ctx, "cli-2")
	require.NoError(t, err)
	assert.Empty(t, state.Values)
}

func TestOpenBackend_Encrypted(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.StoreFile)
	cfg.EncryptionKey = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	backend, err := OpenBackend(cfg)
	require.NoError(t, err)

	state := domain.NewState("s1")
	state.Values["email"] = domain.TextValue("a@b.com")
	require.NoError(t, backend.Store.Save(ctx, "s1", state))

	raw, err := os.ReadFile(filepath.Join(cfg.SessionDir, "s1.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "a@b.com")

	loaded, err := backend.Store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", loaded.Values["email"].Text)

	cfg.EncryptionKey = "short"
	_, err = OpenBackend(cfg)
	assert.Error(t, err)
}
