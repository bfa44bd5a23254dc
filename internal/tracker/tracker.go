// Package tracker converts store-observable counts into a bounded, user
// visible progress signal. It polls the metadata store on a fixed cadence and
// terminates on completion, timeout, or caller cancellation.
package tracker

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ruchira-b/ETL-pipeline/internal/logging"
	"github.com/ruchira-b/ETL-pipeline/internal/metadata/images"
	"github.com/ruchira-b/ETL-pipeline/internal/metadata/summaries"
	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// Tracker derives per-user processing status from the metadata store.
type Tracker struct {
	images    images.Repository
	summaries summaries.Repository
	logger    logging.Logger
}

func New(img images.Repository, sum summaries.Repository, logger logging.Logger) *Tracker {
	return &Tracker{images: img, summaries: sum, logger: logger}
}

// Check performs one status derivation: Complete iff a summary row exists and
// at least one item has been processed; Partial while items are flowing in;
// NotStarted otherwise. A query failure degrades the poll to NotStarted and
// is logged, never escalated.
func (t *Tracker) Check(ctx context.Context, userID string) models.Status {
	count, err := t.images.ProcessedCount(ctx, userID)
	if err != nil {
		t.logger.Warn(ctx, "processed count query failed", "user_id", userID, "error", err)
		return models.NotStarted()
	}

	exists, err := t.summaries.Exists(ctx, userID)
	if err != nil {
		t.logger.Warn(ctx, "summary existence query failed", "user_id", userID, "error", err)
		return models.NotStarted()
	}

	switch {
	case exists && count > 0:
		return models.Complete()
	case count > 0:
		return models.Partial()
	default:
		return models.NotStarted()
	}
}

// Poll is an in-flight or finished polling session. The caller consumes
// intermediate statuses from Updates and may abandon the session with Stop;
// abandonment stops polling, it never rolls back uploaded items.
type Poll struct {
	updates chan models.Status
	done    chan struct{}
	cancel  context.CancelFunc

	mu   sync.Mutex
	last models.Status
}

// Updates streams every observed status in order. The channel is closed when
// the session finishes.
func (p *Poll) Updates() <-chan models.Status {
	return p.updates
}

// Done reports when the session has finished.
func (p *Poll) Done() <-chan struct{} {
	return p.done
}

// Final returns the last observed status. A non-Complete value after Done
// means "still processing, check later", never failure.
func (p *Poll) Final() models.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Stop abandons the session. Safe to call more than once.
func (p *Poll) Stop() {
	p.cancel()
}

func (p *Poll) observe(s models.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = s
}

// pollAttempts bounds the loop at ceil(maxWait/interval) iterations, with at
// least one poll even for a zero wait.
func pollAttempts(maxWait, interval time.Duration) int {
	if interval <= 0 {
		return 1
	}
	attempts := int(math.Ceil(float64(maxWait) / float64(interval)))
	if attempts < 1 {
		attempts = 1
	}
	return attempts
}

// Start launches a polling session for the user. The session ends when the
// status reaches Complete, when the attempt budget runs out, or when the
// caller cancels via ctx or Stop.
func (t *Tracker) Start(ctx context.Context, userID string, maxWait, interval time.Duration) *Poll {
	ctx, cancel := context.WithCancel(ctx)
	p := &Poll{
		updates: make(chan models.Status),
		done:    make(chan struct{}),
		cancel:  cancel,
		last:    models.NotStarted(),
	}
	go t.run(ctx, p, userID, maxWait, interval)
	return p
}

func (t *Tracker) run(ctx context.Context, p *Poll, userID string, maxWait, interval time.Duration) {
	defer close(p.done)
	defer close(p.updates)
	defer p.cancel()

	attempts := pollAttempts(maxWait, interval)

	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return
		}

		status := t.Check(ctx, userID)
		p.observe(status)

		select {
		case p.updates <- status:
		case <-ctx.Done():
			return
		}

		// Complete is terminal; the session never leaves it.
		if status.Stage == models.StageComplete {
			return
		}
		if i == attempts-1 {
			return
		}

		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// AwaitCompletion runs a polling session to the end and returns the final
// status. A non-Complete return after the wait budget is a timeout, not an
// error; the only error returned is caller cancellation.
func (t *Tracker) AwaitCompletion(ctx context.Context, userID string, maxWait, interval time.Duration) (models.Status, error) {
	p := t.Start(ctx, userID, maxWait, interval)
	for range p.Updates() {
	}
	<-p.Done()
	return p.Final(), ctx.Err()
}
