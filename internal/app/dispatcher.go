// internal/app/dispatcher.go
package app

import (
	"context"
	"sync"
	"time"

	"shop_notifier/internal/domain/mailer"
	"shop_notifier/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// PreparedMessage pairs a ready-to-send message with its originating record.
type PreparedMessage struct {
	RecordID int64
	Message  mailer.Message
}

// Result is the dispatch outcome for one prepared message.
type Result struct {
	RecordID int64
	Outcome  mailer.Outcome
}

// BatchDispatcher sends prepared messages in fixed-size batches. All sends
// within a batch run concurrently; the dispatcher waits for the whole batch
// before pausing for the configured delay and starting the next one. This
// keeps bursts against the rate-limited transport bounded without serializing
// every send. One message's failure never cancels its siblings.
type BatchDispatcher struct {
	client    mailer.Client
	batchSize int
	delay     time.Duration
	logger    *logrus.Logger
}

func NewBatchDispatcher(client mailer.Client, batchSize int, delay time.Duration, logger *logrus.Logger) *BatchDispatcher {
	if batchSize < 1 {
		batchSize = 1
	}
	return &BatchDispatcher{
		client:    client,
		batchSize: batchSize,
		delay:     delay,
		logger:    logger,
	}
}

// Dispatch sends every message and returns one result per input, in input
// order. The inter-batch delay is inserted between batches, not after the
// last one. Context cancellation stops before the next batch; messages of an
// unstarted batch come back as failed outcomes with the context error.
func (d *BatchDispatcher) Dispatch(ctx context.Context, msgs []PreparedMessage) []Result {
	results := make([]Result, len(msgs))

	for start := 0; start < len(msgs); start += d.batchSize {
		if start > 0 {
			if err := sleepCtx(ctx, d.delay); err != nil {
				d.logger.WithField("remaining", len(msgs)-start).Warn("Dispatch cancelled between batches")
				for i := start; i < len(msgs); i++ {
					results[i] = Result{RecordID: msgs[i].RecordID, Outcome: mailer.Outcome{
						Success:      false,
						ErrorMessage: err.Error(),
					}}
				}
				return results
			}
		}

		end := start + d.batchSize
		if end > len(msgs) {
			end = len(msgs)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = Result{
					RecordID: msgs[i].RecordID,
					Outcome:  d.client.Send(ctx, msgs[i].Message),
				}
			}(i)
		}
		wg.Wait()
		metrics.BatchesTotal.Inc()
		d.logger.WithFields(logrus.Fields{"batch_size": end - start, "sent_so_far": end, "total": len(msgs)}).
			Debug("Dispatch batch completed")
	}

	return results
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
