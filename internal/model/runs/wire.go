package runs

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Wire discriminators for the batch envelope.
const (
	TagBatchSuccess = "RunLogsSubscriptionSuccess"
	TagBatchFailure = "RunLogsSubscriptionFailure"
)

// envelope is the flat wire representation of a log event.
type envelope struct {
	Typename  string    `json:"__typename"`
	RunID     string    `json:"runId"`
	Timestamp Timestamp `json:"timestamp"`
	Message   string    `json:"message"`
	StepKey   string    `json:"stepKey,omitempty"`
	Level     Level     `json:"level,omitempty"`
}

// UnmarshalLogEvent decodes a single wire event into its concrete variant.
func UnmarshalLogEvent(data []byte) (LogEvent, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "failed to decode log event: %v", err)
	}

	meta := EventMeta{
		RunID:     e.RunID,
		Timestamp: e.Timestamp,
		Message:   e.Message,
		StepKey:   e.StepKey,
	}

	switch e.Typename {
	case TagLogMessage:
		return &LogMessageEvent{EventMeta: meta, Level: e.Level}, nil
	case TagRunStart:
		return &RunStartEvent{EventMeta: meta}, nil
	case TagRunSuccess:
		return &RunSuccessEvent{EventMeta: meta}, nil
	case TagRunFailure:
		return &RunFailureEvent{EventMeta: meta}, nil
	case TagRunInitFailure:
		return &RunInitFailureEvent{EventMeta: meta}, nil
	case TagStepExpectation:
		return &StepExpectationEvent{EventMeta: meta}, nil
	case TagStepMaterialization:
		return &StepMaterializationEvent{EventMeta: meta}, nil
	case TagEngine:
		return &EngineEvent{EventMeta: meta}, nil
	case TagStepInput:
		return &StepInputEvent{EventMeta: meta}, nil
	case TagStepOutput:
		return &StepOutputEvent{EventMeta: meta}, nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown log event tag: %s", e.Typename)
	}
}

// MarshalLogEvent encodes a log event into its flat wire representation.
func MarshalLogEvent(ev LogEvent) ([]byte, error) {
	e := envelope{
		Typename:  ev.Tag(),
		RunID:     ev.GetRunID(),
		Timestamp: Timestamp(ev.GetTimestamp()),
		Message:   ev.GetMessage(),
		StepKey:   ev.GetStepKey(),
	}
	if msg, ok := ev.(*LogMessageEvent); ok {
		e.Level = msg.Level
	}

	data, err := json.Marshal(&e)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode log event: %v", err)
	}

	return data, nil
}

// LogBatch is one delivery of the run log stream: either an ordered list
// of events, or a payload signaling that the subscription itself failed.
type LogBatch struct {
	Events         []LogEvent
	Failure        bool
	FailureMessage string
	Cursor         string
}

// batchEnvelope is the wire representation of a LogBatch.
type batchEnvelope struct {
	Typename string            `json:"__typename"`
	Messages []json.RawMessage `json:"messages,omitempty"`
	Message  string            `json:"message,omitempty"`
	Cursor   string            `json:"cursor,omitempty"`
}

// UnmarshalBatch decodes one wire batch.
func UnmarshalBatch(data []byte) (*LogBatch, error) {
	var e batchEnvelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "failed to decode log batch: %v", err)
	}

	switch e.Typename {
	case TagBatchFailure:
		return &LogBatch{
			Failure:        true,
			FailureMessage: e.Message,
			Cursor:         e.Cursor,
		}, nil
	case TagBatchSuccess:
		events := make([]LogEvent, 0, len(e.Messages))
		for _, raw := range e.Messages {
			ev, err := UnmarshalLogEvent(raw)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}

		return &LogBatch{
			Events: events,
			Cursor: e.Cursor,
		}, nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown log batch tag: %s", e.Typename)
	}
}

// MarshalBatch encodes a LogBatch into its wire representation.
func MarshalBatch(b *LogBatch) ([]byte, error) {
	e := batchEnvelope{Cursor: b.Cursor}

	if b.Failure {
		e.Typename = TagBatchFailure
		e.Message = b.FailureMessage
	} else {
		e.Typename = TagBatchSuccess
		e.Messages = make([]json.RawMessage, 0, len(b.Events))
		for _, ev := range b.Events {
			raw, err := MarshalLogEvent(ev)
			if err != nil {
				return nil, err
			}
			e.Messages = append(e.Messages, raw)
		}
	}

	data, err := json.Marshal(&e)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode log batch: %v", err)
	}

	return data, nil
}
