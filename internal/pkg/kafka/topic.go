package kafka

import "fmt"

const (
	// TopicRunLogsPrefix is the prefix for run-specific log topics.
	TopicRunLogsPrefix = "run-logs."
)

// GetRunLogsTopic returns the run-specific topic carrying log batches.
func GetRunLogsTopic(runID string) string {
	return fmt.Sprintf("%s%s", TopicRunLogsPrefix, runID)
}
