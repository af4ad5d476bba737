package models

import "time"

// DingType identifies what triggered a ding.
type DingType string

const (
	DingMotion DingType = "motion"
	DingRing   DingType = "ring"
	// DingUnknown covers kinds the API reports that this client does not
	// recognize. The remote schema grows over time; decoding stays permissive.
	DingUnknown DingType = "unknown"
)

// Ding represents a motion or ring event recorded by a device.
type Ding struct {
	ID               uint64    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Answered         bool      `json:"answered"`
	RecordingIsReady bool      `json:"recording_is_ready"`
	Type             DingType  `json:"type"`
	// Device is the device the ding originated from, matched against the
	// device list at decode time. Nil when the API reports a ding for a
	// device that is no longer on the account.
	Device *Device `json:"device,omitempty"`
}
