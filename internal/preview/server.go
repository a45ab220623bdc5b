package preview

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// buildStatus tracks the outcome of the most recent rebuild.
type buildStatus struct {
	mu           sync.RWMutex
	last         *build.BuildResult
	lastError    error
	hasGoodBuild bool
	rebuilds     int
}

type statusSnapshot struct {
	last         *build.BuildResult
	lastError    error
	hasGoodBuild bool
	rebuilds     int
}

func (bs *buildStatus) record(res *build.BuildResult, err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.rebuilds++
	bs.last = res
	bs.lastError = err
	if err == nil && res != nil && res.Status.IsSuccess() {
		bs.hasGoodBuild = true
	}
}

func (bs *buildStatus) snapshot() statusSnapshot {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return statusSnapshot{last: bs.last, lastError: bs.lastError, hasGoodBuild: bs.hasGoodBuild, rebuilds: bs.rebuilds}
}

// Server rebuilds generator inputs whenever watched files change.
type Server struct {
	cfg       *config.Config
	builds    build.BuildService
	recorder  metrics.Recorder
	registry  *prom.Registry
	status    buildStatus
	startTime time.Time

	ready chan struct{}
	addr  string
}

// New creates a preview server for cfg. Prometheus collectors are registered
// only when cfg.Preview.Metrics is set.
func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg, recorder: metrics.NoopRecorder{}, startTime: time.Now(), ready: make(chan struct{})}
	if cfg.Preview.Metrics {
		s.registry = prom.NewRegistry()
		s.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
		s.recorder = metrics.NewPrometheusRecorder(s.registry)
	}
	s.builds = build.NewBuildService().WithRecorder(s.recorder)
	return s
}

// Ready is closed once the HTTP listener is bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the bound listen address; valid after Ready is closed.
func (s *Server) Addr() string { return s.addr }

// WatchRoots lists the directories whose changes trigger a rebuild: the
// docs and the site's stylesheets and static assets.
func (s *Server) WatchRoots() []string {
	sitePath := s.cfg.SitePath()
	return []string{
		s.cfg.DocsPath(),
		filepath.Join(sitePath, "src"),
		filepath.Join(sitePath, "static"),
	}
}

// WatchFiles lists the configured declaration override files.
func (s *Server) WatchFiles() []string {
	var files []string
	for _, p := range []string{s.cfg.SiteConfigPath(), s.cfg.SidebarsPath()} {
		if p != "" {
			files = append(files, p)
		}
	}
	return files
}

// Run performs an initial build, then serves HTTP and rebuilds on change
// until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	docsDir := s.cfg.DocsPath()
	if st, err := os.Stat(docsDir); err != nil || !st.IsDir() {
		return errors.NewError(errors.CategoryNotFound, "docs directory not found").
			WithContext("path", docsDir).Fatal().Build()
	}

	// Watch before the first build so edits made while it runs are seen.
	ws := newWatchSet(s.WatchRoots(), s.WatchFiles())
	watcher, err := newWatcher(ws)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	s.rebuild(ctx)

	ln, err := net.Listen("tcp", s.cfg.Preview.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to listen").
			WithContext("addr", s.cfg.Preview.Addr).Fatal().Build()
	}
	s.addr = ln.Addr().String()
	httpServer := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	close(s.ready)
	slog.Info("Preview server listening", logfields.Addr(s.addr), logfields.Path(docsDir))

	rebuildReq, trigger := newDebouncer(s.cfg.Preview.Debounce)
	s.startRebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer)
		case err := <-serveErr:
			return errors.WrapError(err, errors.CategoryRuntime, "preview server failed").Build()
		case ev, ok := <-watcher.Events:
			if !ok {
				return s.shutdown(httpServer)
			}
			s.handleFileEvent(watcher, ws, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return s.shutdown(httpServer)
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (s *Server) shutdown(httpServer *http.Server) error {
	slog.Info("Shutting down preview server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

func (s *Server) handleFileEvent(watcher *fsnotify.Watcher, ws watchSet, ev fsnotify.Event, trigger func()) {
	if !ws.relevant(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	s.recorder.IncWatchEvents(1)
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// startRebuildWorker runs rebuilds one at a time. The request channel holds
// at most one value, so changes during a rebuild collapse into one follow-up.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				slog.Info("Change detected; rebuilding")
				s.rebuild(ctx)
			}
		}
	}()
}

func (s *Server) rebuild(ctx context.Context) {
	res, err := s.builds.Run(ctx, build.BuildRequest{
		Config:  s.cfg,
		Options: build.BuildOptions{SkipIfUnchanged: true},
	})
	if err != nil && ctx.Err() != nil {
		return
	}
	s.status.record(res, err)
}
