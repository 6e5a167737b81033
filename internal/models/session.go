package models

import "encoding/json"

// StudySession is an archived study run stored in the document store, keyed
// by ID. Guide and Sources are produced by the content-generation service and
// carried as opaque payloads: this layer never inspects their structure.
type StudySession struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	// Timestamp is Unix milliseconds at save time. History is sorted on it,
	// newest first.
	Timestamp int64 `json:"timestamp"`

	Sources json.RawMessage `json:"sources"`
	Guide   json.RawMessage `json:"guide"`

	RewardClaimed bool `json:"rewardClaimed"`
}
