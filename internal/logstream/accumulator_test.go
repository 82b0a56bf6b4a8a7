package logstream_test

import (
	"fmt"
	"testing"

	"github.com/juanspinelli/dagster/internal/logstream"
	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
)

func messageBatch(msgs ...string) *runsmodel.LogBatch {
	events := make([]runsmodel.LogEvent, 0, len(msgs))
	for _, m := range msgs {
		events = append(events, &runsmodel.LogMessageEvent{
			EventMeta: runsmodel.EventMeta{RunID: "run1", Message: m},
			Level:     runsmodel.LevelInfo,
		})
	}
	return &runsmodel.LogBatch{Events: events}
}

func TestAccumulatorKeysAreContiguous(t *testing.T) {
	acc := logstream.NewAccumulator()

	acc.Ingest(messageBatch("a", "b"), true)
	seq := acc.Ingest(messageBatch("c"), false)

	if len(seq) != 3 {
		t.Fatalf("expected 3 accumulated events, got %d", len(seq))
	}
	for i, item := range seq {
		want := fmt.Sprintf("csk%d", i)
		if item.Key != want {
			t.Errorf("expected key %s at position %d, got %s", want, i, item.Key)
		}
	}
}

func TestAccumulatorResetOnFirstResponse(t *testing.T) {
	acc := logstream.NewAccumulator()

	acc.Ingest(messageBatch("a", "b", "c"), true)
	if acc.Len() != 3 {
		t.Fatalf("expected 3 events before reconnect, got %d", acc.Len())
	}
	epoch := acc.Epoch()

	seq := acc.Ingest(messageBatch("x"), true)

	if len(seq) != 1 {
		t.Fatalf("expected 1 event after reconnect, got %d", len(seq))
	}
	if seq[0].Key != "csk0" {
		t.Errorf("expected key numbering to restart at csk0, got %s", seq[0].Key)
	}
	if acc.Epoch() != epoch+1 {
		t.Errorf("expected epoch %d after reconnect, got %d", epoch+1, acc.Epoch())
	}
}

func TestAccumulatorFailureBatchContributesNothing(t *testing.T) {
	acc := logstream.NewAccumulator()

	acc.Ingest(messageBatch("a"), true)
	seq := acc.Ingest(&runsmodel.LogBatch{Failure: true, FailureMessage: "stream broke"}, false)

	if len(seq) != 1 {
		t.Fatalf("expected failure batch to add no events, got %d", len(seq))
	}
}

func TestAccumulatorFailureBatchAsFirstResponseStillResets(t *testing.T) {
	acc := logstream.NewAccumulator()

	acc.Ingest(messageBatch("a", "b"), true)
	seq := acc.Ingest(&runsmodel.LogBatch{Failure: true}, true)

	if len(seq) != 0 {
		t.Fatalf("expected empty sequence after failing reconnect, got %d events", len(seq))
	}
}

func TestAccumulatorEventsReturnsCopy(t *testing.T) {
	acc := logstream.NewAccumulator()
	acc.Ingest(messageBatch("a", "b"), true)

	seq := acc.Events()
	seq[0] = logstream.Accumulated{}

	if acc.Events()[0].Key != "csk0" {
		t.Fatal("expected internal sequence to be isolated from returned snapshots")
	}
}
