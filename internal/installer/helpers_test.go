package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/uikit/internal/config"
)

// fakeConfirmer answers questions from a script and records them.
type fakeConfirmer struct {
	answers   []bool
	err       error
	questions []string
}

func (f *fakeConfirmer) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return false, f.err
	}
	if len(f.answers) == 0 {
		return def, nil
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

// failingConfirmer fails the test when asked anything.
type failingConfirmer struct {
	t *testing.T
}

func (f failingConfirmer) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	f.t.Errorf("unexpected prompt: %s", question)
	return false, nil
}

// recordingProgress records progress calls.
type recordingProgress struct {
	events []string
}

func (p *recordingProgress) Start(text string)   { p.events = append(p.events, "start:"+text) }
func (p *recordingProgress) Stop()               { p.events = append(p.events, "stop") }
func (p *recordingProgress) Succeed(text string) { p.events = append(p.events, "succeed:"+text) }
func (p *recordingProgress) Info(text string)    { p.events = append(p.events, "info:"+text) }

func newProject(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	require.NoError(t, cfg.SetRoot(t.TempDir()))
	return cfg
}

func writeProjectFile(t *testing.T, cfg *config.Config, rel, content string) string {
	t.Helper()
	path := filepath.Join(cfg.ResolvedPaths.Cwd, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readProjectFile(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.ResolvedPaths.Cwd, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
