package prh

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// Outcome is the state of one pipeline stage.
type Outcome int

const (
	// NotStarted stages never ran because an earlier
	// stage failed.
	NotStarted Outcome = iota
	// Succeeded stages did their work.
	Succeeded
	// NoOp stages found nothing to do.
	NoOp
	// Failed stages stopped the pipeline.
	Failed
)

var outcomeNames = map[Outcome]string{
	NotStarted: "not-started",
	Succeeded:  "succeeded",
	NoOp:       "succeeded-no-op",
	Failed:     "failed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}

	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Stage names in pipeline order.
const (
	StageAdd     = "add"
	StageCommit  = "commit"
	StagePush    = "push"
	StagePublish = "publish"
)

// StageNames lists the stages in execution order.
var StageNames = []string{
	StageAdd, StageCommit, StagePush, StagePublish,
}

// StageResult is the outcome of one stage.
type StageResult struct {
	Stage   string  `json:"stage"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

// Report summarises a pipeline run.
type Report struct {
	Stages []StageResult `json:"stages"`
	// Branch is the pushed branch, also the pull
	// request head.
	Branch string `json:"branch,omitempty"`
	// Repository is "owner/repo" of the remote.
	Repository string `json:"repository,omitempty"`
	// Base is the pull request base branch.
	Base string `json:"base,omitempty"`
	// PullRequestURL is the web URL of the created
	// pull request.
	PullRequestURL string `json:"pull_request_url,omitempty"`
	DryRun         bool   `json:"dry_run,omitempty"`
}

func newReport(dryRun bool) *Report {
	rep := &Report{DryRun: dryRun}

	for _, name := range StageNames {
		rep.Stages = append(rep.Stages, StageResult{
			Stage:   name,
			Outcome: NotStarted,
		})
	}

	return rep
}

func (r *Report) record(
	stage string,
	outcome Outcome,
	err error,
) {
	for i := range r.Stages {
		if r.Stages[i].Stage != stage {
			continue
		}

		r.Stages[i].Outcome = outcome
		if err != nil {
			r.Stages[i].Error = err.Error()
		}
	}
}

// Outcome returns the outcome recorded for stage.
func (r *Report) Outcome(stage string) Outcome {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s.Outcome
		}
	}

	return NotStarted
}

// Failed reports whether any stage failed.
func (r *Report) Failed() bool {
	for _, s := range r.Stages {
		if s.Outcome == Failed {
			return true
		}
	}

	return false
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	const errCtx = "writing report"

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// SaveJSON writes the report to the file at path.
func (r *Report) SaveJSON(path string) (retErr error) {
	const errCtx = "saving report"

	f, err := os.Create(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil &&
			retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	if err := r.WriteJSON(f); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
