package redis

import "fmt"

const (
	// ChannelRunLogsPrefix is the prefix for run-specific log channels.
	ChannelRunLogsPrefix = "run_logs:"

	// KeyRunStatusPrefix is the prefix for run status cache records.
	KeyRunStatusPrefix = "run_status:"
)

// GetRunLogsChannel returns the run-specific channel name for streaming logs.
func GetRunLogsChannel(runID string) string {
	return fmt.Sprintf("%s%s", ChannelRunLogsPrefix, runID)
}

// GetRunStatusKey returns the cache key holding the run's status record.
func GetRunStatusKey(runID string) string {
	return fmt.Sprintf("%s%s", KeyRunStatusPrefix, runID)
}
