package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"shop_notifier/internal/domain/mailer"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// recordingClient tracks send start times and in-flight concurrency.
type recordingClient struct {
	mu            sync.Mutex
	startTimes    []time.Time
	inFlight      int
	maxInFlight   int
	sendDuration  time.Duration
	failRecipient string
}

func (c *recordingClient) Send(ctx context.Context, msg mailer.Message) mailer.Outcome {
	c.mu.Lock()
	c.startTimes = append(c.startTimes, time.Now())
	c.inFlight++
	if c.inFlight > c.maxInFlight {
		c.maxInFlight = c.inFlight
	}
	c.mu.Unlock()

	time.Sleep(c.sendDuration)

	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()

	if msg.To == c.failRecipient {
		return mailer.Outcome{Success: false, ErrorMessage: "invalid recipient"}
	}
	return mailer.Outcome{Success: true}
}

func prepared(n int) []PreparedMessage {
	msgs := make([]PreparedMessage, n)
	for i := range msgs {
		msgs[i] = PreparedMessage{
			RecordID: int64(i + 1),
			Message:  mailer.Message{To: fmt.Sprintf("user%d@example.com", i+1)},
		}
	}
	return msgs
}

func TestDispatchBatchPacing(t *testing.T) {
	const (
		total     = 12
		batchSize = 5
		delay     = 80 * time.Millisecond
	)
	client := &recordingClient{sendDuration: 5 * time.Millisecond}
	d := NewBatchDispatcher(client, batchSize, delay, testLogger())

	start := time.Now()
	results := d.Dispatch(context.Background(), prepared(total))
	elapsed := time.Since(start)

	if len(results) != total {
		t.Fatalf("got %d results, want %d", len(results), total)
	}
	for i, res := range results {
		if res.RecordID != int64(i+1) {
			t.Errorf("result %d has record id %d, want %d", i, res.RecordID, i+1)
		}
		if !res.Outcome.Success {
			t.Errorf("result %d unexpectedly failed: %+v", i, res.Outcome)
		}
	}

	if client.maxInFlight > batchSize {
		t.Errorf("max in-flight sends = %d, want <= %d", client.maxInFlight, batchSize)
	}
	// Two inter-batch delays for 3 batches (5, 5, 2).
	if elapsed < 2*delay {
		t.Errorf("elapsed %v, want at least %v (two inter-batch delays)", elapsed, 2*delay)
	}

	// Cluster start times by gaps of at least half the delay: exactly 3
	// batches of sizes 5, 5 and 2.
	starts := append([]time.Time(nil), client.startTimes...)
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	sizes := []int{1}
	for i := 1; i < len(starts); i++ {
		if starts[i].Sub(starts[i-1]) >= delay/2 {
			sizes = append(sizes, 1)
		} else {
			sizes[len(sizes)-1]++
		}
	}
	want := []int{5, 5, 2}
	if len(sizes) != len(want) {
		t.Fatalf("observed %d batches %v, want %v", len(sizes), sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("batch %d size = %d, want %d (all: %v)", i, sizes[i], want[i], sizes)
		}
	}
}

func TestDispatchFailureDoesNotCancelSiblings(t *testing.T) {
	client := &recordingClient{failRecipient: "user2@example.com"}
	d := NewBatchDispatcher(client, 3, 0, testLogger())

	results := d.Dispatch(context.Background(), prepared(3))

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[1].Outcome.Success {
		t.Error("expected failure for record 2")
	}
	if !results[0].Outcome.Success || !results[2].Outcome.Success {
		t.Errorf("siblings of a failed send must still complete: %+v", results)
	}
}

func TestDispatchEmptyInput(t *testing.T) {
	d := NewBatchDispatcher(&recordingClient{}, 5, time.Second, testLogger())
	results := d.Dispatch(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("got %d results for empty input, want 0", len(results))
	}
}

func TestDispatchCancelledBetweenBatches(t *testing.T) {
	client := &recordingClient{}
	d := NewBatchDispatcher(client, 2, 500*time.Millisecond, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	results := d.Dispatch(ctx, prepared(4))

	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	if !results[0].Outcome.Success || !results[1].Outcome.Success {
		t.Errorf("first batch should complete before cancellation: %+v", results[:2])
	}
	for _, res := range results[2:] {
		if res.Outcome.Success {
			t.Errorf("record %d sent after cancellation", res.RecordID)
		}
		if res.Outcome.ErrorMessage == "" {
			t.Errorf("record %d missing cancellation diagnostic", res.RecordID)
		}
	}
	if got := len(client.startTimes); got != 2 {
		t.Errorf("transport saw %d sends, want 2 (second batch never started)", got)
	}
}
