package runs

import (
	"bytes"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Level classifies a log event for filtering purposes.
type Level string

// Levels emitted by the run log stream.
const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"

	// LevelEvent is the synthetic level assigned to structured lifecycle
	// and step events, which carry no level of their own.
	LevelEvent Level = "EVENT"
)

// ToString converts the Level to its string representation.
func (l Level) ToString() string {
	return string(l)
}

// AllLevels returns every level, including the synthetic EVENT level.
func AllLevels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical, LevelEvent}
}

// Status represents the overall lifecycle status of a run.
type Status string

// Statuses for the run, derived from lifecycle markers in the log stream.
const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusStarted    Status = "STARTED"
	StatusSuccess    Status = "SUCCESS"
	StatusFailure    Status = "FAILURE"
)

// ToString converts the Status to its string representation.
func (s Status) ToString() string {
	return string(s)
}

// IsTerminal reports whether the run can no longer be terminated.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// StatusRecord is the shared-cache projection of a run's status.
type StatusRecord struct {
	Status       Status `json:"status"`
	CanTerminate bool   `json:"canTerminate"`
}

// Timestamp is a unix timestamp in milliseconds. The wire format emits it
// either as a JSON number or as a numeric string.
type Timestamp int64

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = 0
		return nil
	}

	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid timestamp: %v", err)
	}

	*t = Timestamp(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(t), 10)), nil
}

// LogEvent is one event of a run's log stream. Each concrete variant
// carries the common fields via EventMeta; structured variants are
// identified by their tag alone and report the synthetic EVENT level.
type LogEvent interface {
	GetRunID() string
	GetTimestamp() int64
	GetMessage() string
	GetStepKey() string

	// Tag returns the wire discriminator of the variant.
	Tag() string

	// EffectiveLevel returns the event's own level for leveled messages
	// and LevelEvent for structured variants.
	EffectiveLevel() Level
}

// EventMeta holds the fields common to every log event variant.
type EventMeta struct {
	RunID     string    `json:"runId"`
	Timestamp Timestamp `json:"timestamp"`
	Message   string    `json:"message"`
	StepKey   string    `json:"stepKey,omitempty"`
}

// GetRunID returns the id of the run the event belongs to.
func (m *EventMeta) GetRunID() string {
	return m.RunID
}

// GetTimestamp returns the event timestamp in unix milliseconds.
func (m *EventMeta) GetTimestamp() int64 {
	return int64(m.Timestamp)
}

// GetMessage returns the human-readable event message.
func (m *EventMeta) GetMessage() string {
	return m.Message
}

// GetStepKey returns the step the event is scoped to, if any.
func (m *EventMeta) GetStepKey() string {
	return m.StepKey
}

// Wire discriminators for the log event variants.
const (
	TagLogMessage          = "LogMessageEvent"
	TagRunStart            = "RunStartEvent"
	TagRunSuccess          = "RunSuccessEvent"
	TagRunFailure          = "RunFailureEvent"
	TagRunInitFailure      = "RunInitFailureEvent"
	TagStepExpectation     = "StepExpectationEvent"
	TagStepMaterialization = "StepMaterializationEvent"
	TagEngine              = "EngineEvent"
	TagStepInput           = "StepInputEvent"
	TagStepOutput          = "StepOutputEvent"
)

// StructuredTags returns the tag names of the structured (non-leveled)
// event variants, used for filter suggestions.
func StructuredTags() []string {
	return []string{
		TagRunStart,
		TagRunSuccess,
		TagRunFailure,
		TagRunInitFailure,
		TagStepExpectation,
		TagStepMaterialization,
		TagEngine,
		TagStepInput,
		TagStepOutput,
	}
}

// LogMessageEvent is a free-form leveled log line.
type LogMessageEvent struct {
	EventMeta
	Level Level `json:"level"`
}

// Tag returns the wire discriminator of the variant.
func (*LogMessageEvent) Tag() string { return TagLogMessage }

// EffectiveLevel returns the level the message was logged at.
func (e *LogMessageEvent) EffectiveLevel() Level { return e.Level }

// RunStartEvent marks the run as started.
type RunStartEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*RunStartEvent) Tag() string { return TagRunStart }

// EffectiveLevel returns the synthetic EVENT level.
func (*RunStartEvent) EffectiveLevel() Level { return LevelEvent }

// RunSuccessEvent marks the run as completed successfully.
type RunSuccessEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*RunSuccessEvent) Tag() string { return TagRunSuccess }

// EffectiveLevel returns the synthetic EVENT level.
func (*RunSuccessEvent) EffectiveLevel() Level { return LevelEvent }

// RunFailureEvent marks the run as failed.
type RunFailureEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*RunFailureEvent) Tag() string { return TagRunFailure }

// EffectiveLevel returns the synthetic EVENT level.
func (*RunFailureEvent) EffectiveLevel() Level { return LevelEvent }

// RunInitFailureEvent marks the run as failed during initialization.
type RunInitFailureEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*RunInitFailureEvent) Tag() string { return TagRunInitFailure }

// EffectiveLevel returns the synthetic EVENT level.
func (*RunInitFailureEvent) EffectiveLevel() Level { return LevelEvent }

// StepExpectationEvent reports an expectation result for a step.
type StepExpectationEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*StepExpectationEvent) Tag() string { return TagStepExpectation }

// EffectiveLevel returns the synthetic EVENT level.
func (*StepExpectationEvent) EffectiveLevel() Level { return LevelEvent }

// StepMaterializationEvent reports a materialization produced by a step.
type StepMaterializationEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*StepMaterializationEvent) Tag() string { return TagStepMaterialization }

// EffectiveLevel returns the synthetic EVENT level.
func (*StepMaterializationEvent) EffectiveLevel() Level { return LevelEvent }

// EngineEvent reports engine-level activity for the run.
type EngineEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*EngineEvent) Tag() string { return TagEngine }

// EffectiveLevel returns the synthetic EVENT level.
func (*EngineEvent) EffectiveLevel() Level { return LevelEvent }

// StepInputEvent reports an input consumed by a step.
type StepInputEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*StepInputEvent) Tag() string { return TagStepInput }

// EffectiveLevel returns the synthetic EVENT level.
func (*StepInputEvent) EffectiveLevel() Level { return LevelEvent }

// StepOutputEvent reports an output produced by a step.
type StepOutputEvent struct {
	EventMeta
}

// Tag returns the wire discriminator of the variant.
func (*StepOutputEvent) Tag() string { return TagStepOutput }

// EffectiveLevel returns the synthetic EVENT level.
func (*StepOutputEvent) EffectiveLevel() Level { return LevelEvent }
