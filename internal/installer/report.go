package installer

import "fmt"

// Outcomes recorded for an installed file.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
)

// Report lists the project-relative, slash-separated paths of processed
// files by outcome, in processing order. Install returns it by value and
// keeps no reference to it; callers treat it as read-only.
type Report struct {
	Created []string
	Updated []string
	Skipped []string
}

// Empty reports whether no file was processed.
func (r Report) Empty() bool {
	return len(r.Created) == 0 && len(r.Updated) == 0 && len(r.Skipped) == 0
}

func (r *Report) add(outcome, path string) {
	switch outcome {
	case OutcomeCreated:
		r.Created = append(r.Created, path)
	case OutcomeUpdated:
		r.Updated = append(r.Updated, path)
	case OutcomeSkipped:
		r.Skipped = append(r.Skipped, path)
	}
}

// Summarize prints the report grouped by outcome. It stops progress, which
// is expected to be the indicator Install started.
func (r Report) Summarize(progress Progress, logger Logger) {
	if r.Empty() {
		progress.Info("No files updated.")
	}

	if len(r.Created) > 0 {
		progress.Succeed(header("Created", len(r.Created)))
		list(logger, r.Created)
	} else {
		progress.Stop()
	}

	if len(r.Updated) > 0 {
		progress.Info(header("Updated", len(r.Updated)))
		list(logger, r.Updated)
	}

	if len(r.Skipped) > 0 {
		progress.Info(header("Skipped", len(r.Skipped)))
		list(logger, r.Skipped)
	}

	logger.Break()
}

func header(verb string, n int) string {
	noun := "files"
	if n == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%s %d %s:", verb, n, noun)
}

func list(logger Logger, paths []string) {
	for _, p := range paths {
		logger.Log("  - " + p)
	}
}
