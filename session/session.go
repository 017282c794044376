// Package session schedules artifact analysis for a document being viewed.
// Page-view events reset an idle timer; analysis runs only after the view
// settles and only while detection is active. At most one run is in flight
// per session; runs triggered while one is executing coalesce onto it.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jordanlucero/scanclean/analysis"
	"github.com/jordanlucero/scanclean/doc"
	"github.com/jordanlucero/scanclean/pagecache"
)

// DefaultIdleDelay is how long a page view must settle before analysis.
const DefaultIdleDelay = 3 * time.Second

// Report is one finished analysis pass, scoped to the page that was current
// when the pass completed. Delivery happens on the analysis goroutine; the
// host hands it to its interactive layer.
type Report struct {
	PageOrdinal int
	Detections  analysis.Result
	Options     []analysis.CleanupOption
}

// Session owns the debounce timer and coalescing for one document.
type Session struct {
	d       *doc.Document
	cache   *pagecache.Service
	cfg     analysis.Config
	delay   time.Duration
	log     *slog.Logger
	deliver func(Report)

	group singleflight.Group

	mu      sync.Mutex
	timer   *time.Timer
	current int
	active  bool
	closed  bool
}

// New creates a session. deliver receives each finished report; delay <= 0
// means DefaultIdleDelay.
func New(d *doc.Document, cache *pagecache.Service, cfg analysis.Config, delay time.Duration, log *slog.Logger, deliver func(Report)) *Session {
	if delay <= 0 {
		delay = DefaultIdleDelay
	}
	return &Session{
		d:       d,
		cache:   cache,
		cfg:     cfg,
		delay:   delay,
		log:     log,
		deliver: deliver,
	}
}

// SetActive enables or disables analysis scheduling. Deactivating cancels
// any pending timer; page views while inactive only track the current page.
func (s *Session) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
	if !active {
		s.stopTimerLocked()
	}
}

// PageViewed records the page now being viewed and resets the idle timer.
func (s *Session) PageViewed(ordinal int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ordinal
	if !s.active || s.closed {
		return
	}
	s.stopTimerLocked()
	s.timer = time.AfterFunc(s.delay, s.run)
}

// RunNow runs analysis immediately, bypassing the idle delay. Called after
// a successful cleanup so the options refresh against the mutated pages.
// It blocks until the run (or the run it coalesced onto) completes.
func (s *Session) RunNow() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	s.mu.Unlock()
	s.run()
}

// Close stops the timer and suppresses further reports.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimerLocked()
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// run executes one analysis pass. Concurrent callers share the in-flight
// pass, so a burst of triggers produces exactly one report.
func (s *Session) run() {
	s.group.Do("analyze", func() (any, error) {
		res := s.detect(context.Background())

		s.mu.Lock()
		current := s.current
		closed := s.closed
		s.mu.Unlock()
		if closed || s.deliver == nil {
			return nil, nil
		}

		s.deliver(Report{
			PageOrdinal: current,
			Detections:  res,
			Options:     analysis.BuildOptions(res, current),
		})
		return nil, nil
	})
}

// detect reads the cache snapshot and runs the detectors. A missing or
// unusable blob is recovered by rebuilding from the pages; if even that
// fails, an unpersisted snapshot is built directly from the pages so the
// pass still completes.
func (s *Session) detect(ctx context.Context) analysis.Result {
	c, err := s.cache.Load(ctx, s.d.ID)
	if err != nil {
		c, err = s.cache.Rebuild(ctx, s.d)
	}
	if err != nil {
		s.log.Warn("analysis falling back to direct page reads", "doc_id", s.d.ID, "error", err)
		c = &pagecache.Cache{Version: pagecache.FormatVersion}
		for _, p := range s.d.Pages {
			c.Entries = append(c.Entries, pagecache.NewEntry(p))
		}
	}
	return analysis.Detect(c, s.cfg)
}
