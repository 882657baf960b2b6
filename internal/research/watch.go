package research

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/AIDataFireGirl/investsight/internal/config"
)

// Watcher re-researches a watchlist on a cron schedule, recording each
// run through the pipeline's recorder.
type Watcher struct {
	pipeline *Pipeline
	list     *config.Watchlist
	cron     *cron.Cron
}

// NewWatcher creates a watcher over a loaded watchlist.
func NewWatcher(p *Pipeline, wl *config.Watchlist) *Watcher {
	return &Watcher{pipeline: p, list: wl, cron: cron.New()}
}

// Start registers the schedule and starts the cron loop.
func (w *Watcher) Start() error {
	if _, err := w.cron.AddFunc(w.list.Schedule, func() {
		w.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("register watch schedule %q: %w", w.list.Schedule, err)
	}
	w.cron.Start()
	log.Printf("[INFO] watch scheduler started: %d tickers on %q", len(w.list.Tickers), w.list.Schedule)
	return nil
}

// Stop stops the cron loop. Runs already in flight finish on their own.
func (w *Watcher) Stop() {
	w.cron.Stop()
	log.Println("[INFO] watch scheduler stopped")
}

// RunOnce researches every watchlist ticker immediately.
func (w *Watcher) RunOnce(ctx context.Context) {
	log.Printf("[INFO] running watchlist research: %s", strings.Join(w.list.Tickers, ", "))

	opts := Options{DaysBack: w.list.DaysBack, Period: w.list.Period}
	for _, t := range w.list.Tickers {
		res, err := w.pipeline.Research(ctx, t, opts)
		if err != nil {
			log.Printf("[ERROR] watch research %s: %v", t, err)
			continue
		}
		rec := res.Insights.Recommendation
		log.Printf("[INFO] watch %s: %s (score %.2f, %s confidence)",
			res.Ticker, rec.Action, rec.Score, rec.Confidence)
	}
}
