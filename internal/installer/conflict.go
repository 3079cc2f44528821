package installer

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/vango-dev/uikit/internal/errors"
)

// Policy decides what happens when a destination file already exists.
type Policy int

const (
	// PolicyAsk asks the user, defaulting to no.
	PolicyAsk Policy = iota
	// PolicyOverwrite replaces existing files without asking.
	PolicyOverwrite
	// PolicyNever keeps every existing file.
	PolicyNever
)

func (p Policy) String() string {
	switch p {
	case PolicyOverwrite:
		return "overwrite"
	case PolicyNever:
		return "never"
	default:
		return "ask"
	}
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

// Progress is the progress indicator shown while files are installed.
type Progress interface {
	// Start shows the indicator; an empty text keeps the previous one.
	Start(text string)
	Stop()
	Succeed(text string)
	Info(text string)
}

// Logger prints summary lines.
type Logger interface {
	Log(msg string)
	Break()
}

// ConflictResolver decides whether a destination may be written.
type ConflictResolver struct {
	// Confirm answers PolicyAsk questions. Nil declines every overwrite.
	Confirm Confirmer

	// Progress is paused while a question is shown.
	Progress Progress
}

// Resolve reports whether path may be written under policy. Paths that
// don't exist can always be written.
func (r *ConflictResolver) Resolve(ctx context.Context, path string, policy Policy) (bool, error) {
	exists, err := fileExists(path)
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}

	switch policy {
	case PolicyOverwrite:
		return true, nil
	case PolicyNever:
		return false, nil
	}

	if r.Confirm == nil {
		return false, nil
	}

	if r.Progress != nil {
		r.Progress.Stop()
	}

	question := fmt.Sprintf("The file %s already exists. Would you like to overwrite?", filepath.Base(path))
	ok, err := r.Confirm.Confirm(ctx, question, false)
	if err != nil {
		return false, err
	}

	if ok && r.Progress != nil {
		r.Progress.Start("")
	}
	return ok, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, fs.ErrNotExist), stderrors.Is(err, syscall.ENOTDIR):
		return false, nil
	default:
		return false, errors.New("E150").WithOp("stat").WithPath(path).Wrap(err)
	}
}
