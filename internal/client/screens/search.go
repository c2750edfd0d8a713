package screens

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

// DefaultDebounce is the quiet period before a typed query is sent.
const DefaultDebounce = 300 * time.Millisecond

// Search runs debounced queries. Every keystroke bumps a generation counter;
// a response is applied only if no newer query was typed meanwhile, so a slow
// stale response never overwrites fresher results. In-flight requests are
// not cancelled.
type Search struct {
	state
	videos   services.VideoService
	debounce time.Duration

	gen     uint64
	query   string
	results []models.Video
	timer   *time.Timer
	closed  bool
	pending sync.WaitGroup
}

func NewSearch(videos services.VideoService, debounce time.Duration) *Search {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Search{videos: videos, debounce: debounce, results: []models.Video{}}
}

// Type records the current query text and schedules it. A blank query clears
// the results immediately without any request.
func (s *Search) Type(ctx context.Context, sess models.Session, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.gen++
	gen := s.gen
	s.query = query
	s.stopTimerLocked()

	if strings.TrimSpace(query) == "" {
		s.results = []models.Video{}
		s.status = StatusIdle
		s.alert = nil
		return
	}
	s.pending.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() {
		defer s.pending.Done()
		s.run(ctx, sess, query, gen)
	})
}

func (s *Search) stopTimerLocked() {
	if s.timer != nil && s.timer.Stop() {
		s.pending.Done()
	}
	s.timer = nil
}

func (s *Search) run(ctx context.Context, sess models.Session, query string, gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.status = StatusLoading
	s.mu.Unlock()

	res, err := s.videos.Search(ctx, sess, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	if err != nil {
		s.status = StatusIdle
		s.lastErr = err
		s.alert = &Alert{Title: TitleError, Message: AlertMessage(err, "Recherche échouée")}
		return
	}
	s.results = res
	s.status = StatusSuccess
	s.alert = nil
}

// Wait blocks until every scheduled query has finished.
func (s *Search) Wait() { s.pending.Wait() }

// Close drops the pending query. Later calls to Type are ignored.
func (s *Search) Close() {
	s.mu.Lock()
	s.closed = true
	s.gen++
	s.stopTimerLocked()
	s.mu.Unlock()
	s.pending.Wait()
}

func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Search) Results() []models.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneVideos(s.results)
}
