package domain

import (
	"time"

	"github.com/google/uuid"
)

// SuccessMessage is returned to the host when yt-dlp exits cleanly
const SuccessMessage = "Download completed successfully"

// AudioFormat is the fixed audio format requested from yt-dlp
const AudioFormat = "mp3"

// InvocationArgs returns the fixed yt-dlp argument template for a resource
func InvocationArgs(resource string) []string {
	return []string{"-x", "--audio-format", AudioFormat, "--", resource}
}

// InvocationResult is the outcome of one yt-dlp run
type InvocationResult struct {
	ID         string        `json:"id"`
	Resource   string        `json:"url"`
	Command    string        `json:"command,omitempty"`
	Output     string        `json:"output,omitempty"` // stdout transcript
	Stderr     string        `json:"stderr,omitempty"`
	ExitCode   int           `json:"exit_code"`
	Err        error         `json:"-"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
}

// NewInvocationResult creates a result for a run that is about to start
func NewInvocationResult(resource string) *InvocationResult {
	return &InvocationResult{
		ID:        uuid.New().String(),
		Resource:  resource,
		StartedAt: time.Now(),
	}
}

// Succeeded reports whether the run completed without error
func (r *InvocationResult) Succeeded() bool {
	return r.Err == nil
}

// Fail records err as the terminal outcome
func (r *InvocationResult) Fail(err error) *InvocationResult {
	r.Err = err
	r.finish()
	return r
}

// Complete records a successful outcome with the captured stdout transcript
func (r *InvocationResult) Complete(output string) *InvocationResult {
	r.Output = output
	r.Err = nil
	r.finish()
	return r
}

// Message returns the text shown to the host for this outcome
func (r *InvocationResult) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return SuccessMessage
}

func (r *InvocationResult) finish() {
	r.FinishedAt = time.Now()
	r.Duration = r.FinishedAt.Sub(r.StartedAt)
}
