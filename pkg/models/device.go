package models

// DeviceType identifies which hardware category a device belongs to.
type DeviceType string

const (
	DeviceDoorbell           DeviceType = "doorbell"
	DeviceAuthorizedDoorbell DeviceType = "authorized_doorbell"
	DeviceChime              DeviceType = "chime"
	DeviceCam                DeviceType = "camera"
)

// BatteryNotApplicable is the BatteryLife value for hardware without a
// battery (chimes are mains powered).
const BatteryNotApplicable = -1

// Device represents a single Ring device on the account.
type Device struct {
	ID          uint64     `json:"id"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	BatteryLife int        `json:"battery_life"` // BatteryNotApplicable when the hardware has none
	Type        DeviceType `json:"type"`
}
