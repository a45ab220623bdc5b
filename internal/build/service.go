package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/emit"
)

// BuildService is the canonical interface for producing generator inputs.
// The CLI and the preview loop are thin wrappers over it.
type BuildService interface {
	// Run executes load → discover → check → emit and returns the outcome.
	// A non-nil error accompanies every failed result.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded tool configuration.
	Config *config.Config

	// Now stamps the build (copyright year, manifest time). Zero means time.Now().
	Now time.Time

	// Options provides optional build behavior modifiers.
	Options BuildOptions
}

// BuildOptions provides optional configuration for build behavior.
type BuildOptions struct {
	// DryRun checks without writing any output.
	DryRun bool

	// SkipIfUnchanged skips writing when the previous manifest already
	// describes identical inputs and documents.
	SkipIfUnchanged bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// Status indicates overall build outcome.
	Status BuildStatus

	// Check holds every issue found; nil if the build failed before checking.
	Check *check.Result

	// Manifest describes the emitted files; nil for dry runs, skips and failures.
	Manifest *emit.Manifest

	// OutputPath is the directory generator inputs were written to.
	OutputPath string

	// Documents is the number of documents discovered.
	Documents int

	// Duration is the total build execution time.
	Duration time.Duration

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time

	// SkipReason explains why the build was skipped.
	SkipReason string
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed without issues above info.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusWarning indicates the build completed with warnings.
	BuildStatusWarning BuildStatus = "warning"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusSkipped indicates nothing changed since the last build.
	BuildStatusSkipped BuildStatus = "skipped"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build produced (or kept) usable output.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning || s == BuildStatusSkipped
}
