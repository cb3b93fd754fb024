package mqtt

import "fmt"

// Topic prefixes.
const (
	// TopicPrefix is the base of every staffdb topic.
	TopicPrefix = "staffdb"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "staffdb/system"
)

// Topics provides builders for staffdb MQTT topics.
//
//	topic := mqtt.Topics{}.Report("0b5f...")
//	// Returns: "staffdb/report/0b5f..."
type Topics struct{}

// Report returns the topic a run report is published on.
//
// Example: staffdb/report/5d1c2f9e-7a1b-4c0e-9f5e-2a6d8b3c4e10
func (Topics) Report(runID string) string {
	return fmt.Sprintf("%s/report/%s", TopicPrefix, runID)
}

// SystemStatus returns the retained status topic (online/offline, LWT).
//
// Example: staffdb/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
