package logstream

import (
	"fmt"

	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
)

// Accumulated is one appended log event together with its synthetic key.
// The key is stable list identity only; it carries no semantics.
type Accumulated struct {
	Key   string
	Event runsmodel.LogEvent
}

// Accumulator appends incoming batches into an ordered, uniquely keyed
// sequence. Keys are csk<n>, monotonic within one accumulation epoch and
// reset to 0 exactly when the sequence is reset.
type Accumulator struct {
	seq   []Accumulated
	next  int
	epoch int
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Reset discards the accumulated sequence, restarts key numbering at 0 and
// advances the accumulation epoch.
func (a *Accumulator) Reset() {
	a.seq = nil
	a.next = 0
	a.epoch++
}

// Ingest applies one batch to the sequence. A first response discards all
// prior state before appending; the channel signals it both on true first
// connect and on silent reconnects, and events delivered before a drop
// cannot be assumed disjoint from events re-delivered after, so a full
// reset is the only safe policy. A subscription-failure batch contributes
// zero events. Returns a snapshot of the resulting sequence.
func (a *Accumulator) Ingest(batch *runsmodel.LogBatch, firstResponse bool) []Accumulated {
	if firstResponse {
		a.Reset()
	}

	if batch.Failure {
		return a.Events()
	}

	for _, ev := range batch.Events {
		a.seq = append(a.seq, Accumulated{
			Key:   fmt.Sprintf("csk%d", a.next),
			Event: ev,
		})
		a.next++
	}

	return a.Events()
}

// Events returns a copy of the accumulated sequence.
func (a *Accumulator) Events() []Accumulated {
	out := make([]Accumulated, len(a.seq))
	copy(out, a.seq)
	return out
}

// Len returns the number of accumulated events.
func (a *Accumulator) Len() int {
	return len(a.seq)
}

// Epoch returns the current accumulation epoch.
func (a *Accumulator) Epoch() int {
	return a.epoch
}
