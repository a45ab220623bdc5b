package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/corpus"
	"git.home.luguber.info/inful/notesite/internal/emit"
	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/metrics"
	"git.home.luguber.info/inful/notesite/internal/sidebar"
	"git.home.luguber.info/inful/notesite/internal/site"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	recorder metrics.Recorder
}

// NewBuildService creates a DefaultBuildService that records nothing.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// Declarations returns the site configuration and sidebar registry for cfg:
// the built-in declarations unless override files are configured.
func Declarations(cfg *config.Config, now time.Time) (*site.SiteConfig, *sidebar.Registry, error) {
	siteCfg := site.Load(now)
	if p := cfg.SiteConfigPath(); p != "" {
		loaded, err := site.LoadFile(p)
		if err != nil {
			return nil, nil, err
		}
		loaded.ThemeConfig.Footer.Copyright = site.RenderCopyright(loaded.ThemeConfig.Footer.Copyright, now)
		siteCfg = loaded
	}
	sidebars := sidebar.Declaration()
	if p := cfg.SidebarsPath(); p != "" {
		loaded, err := sidebar.LoadFile(p)
		if err != nil {
			return nil, nil, err
		}
		sidebars = loaded
	}
	return siteCfg, sidebars, nil
}

// Run executes the build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	result := &BuildResult{StartTime: time.Now(), OutputPath: req.Config.OutputPath()}
	now := req.Now
	if now.IsZero() {
		now = result.StartTime
	}

	err := s.run(ctx, req, now, result)
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	if err != nil && result.Status == "" {
		result.Status = BuildStatusFailed
	}
	s.record(result)
	if err != nil {
		slog.Warn("Build failed", logfields.Error(err), logfields.DurationMS(float64(result.Duration.Milliseconds())))
		return result, err
	}
	slog.Info("Build finished",
		slog.String("status", string(result.Status)),
		logfields.Count(result.Documents),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return result, nil
}

func (s *DefaultBuildService) run(ctx context.Context, req BuildRequest, now time.Time, result *BuildResult) error {
	cfg := req.Config
	if err := ctx.Err(); err != nil {
		result.Status = BuildStatusCancelled
		return errors.WrapError(err, errors.CategoryRuntime, "build cancelled").Build()
	}

	siteCfg, sidebars, err := Declarations(cfg, now)
	if err != nil {
		return err
	}
	docs, err := corpus.Discover(cfg.DocsPath())
	if err != nil {
		return err
	}
	result.Documents = docs.Len()

	result.Check = check.Run(check.Input{
		Site:     siteCfg,
		Sidebars: sidebars,
		Corpus:   docs,
		SiteDir:  cfg.SitePath(),
	})
	if err := result.Check.Err(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		result.Status = BuildStatusCancelled
		return errors.WrapError(err, errors.CategoryRuntime, "build cancelled").Build()
	}

	result.Status = BuildStatusSuccess
	if result.Check.HasWarnings() {
		result.Status = BuildStatusWarning
	}
	if req.Options.DryRun {
		return nil
	}

	format, err := emit.ParseFormat(cfg.Output.Format)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid output format").Build()
	}
	opts := emit.Options{Site: siteCfg, Sidebars: sidebars, Corpus: docs, Format: format, Now: now}

	if req.Options.SkipIfUnchanged {
		if reason, ok := unchanged(result.OutputPath, opts); ok {
			result.Status = BuildStatusSkipped
			result.SkipReason = reason
			slog.Info("Skipping unchanged build", logfields.Path(result.OutputPath))
			return nil
		}
	}

	result.Manifest, err = emit.Write(result.OutputPath, opts)
	return err
}

// unchanged reports whether the manifest in dir already matches opts.
func unchanged(dir string, opts emit.Options) (string, bool) {
	prev, err := emit.ReadManifest(dir)
	if err != nil {
		return "", false
	}
	fp, err := emit.InputsFingerprint(opts)
	if err != nil || fp != prev.Inputs {
		return "", false
	}
	if len(prev.Documents) != opts.Corpus.Len() || len(prev.Stale(opts.Corpus)) > 0 {
		return "", false
	}
	return "generator inputs and documents unchanged since build " + prev.BuildID, true
}

func (s *DefaultBuildService) record(result *BuildResult) {
	s.recorder.ObserveRebuildDuration(result.Duration)
	switch result.Status {
	case BuildStatusFailed, BuildStatusCancelled:
		s.recorder.IncRebuildOutcome(metrics.OutcomeFailed)
	case BuildStatusWarning:
		s.recorder.IncRebuildOutcome(metrics.OutcomeWarning)
	default:
		s.recorder.IncRebuildOutcome(metrics.OutcomeSuccess)
	}
	s.recorder.SetDocuments(result.Documents)
	if result.Check != nil {
		s.recorder.SetCheckIssues(check.SeverityError.String(), result.Check.ErrorCount())
		s.recorder.SetCheckIssues(check.SeverityWarning.String(), result.Check.WarningCount())
	}
}
