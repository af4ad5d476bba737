package client

import (
	"encoding/json"
	"fmt"

	"ring-cli/pkg/models"
)

// deviceEntry keeps the required fields as pointers so that a missing field
// can be told apart from a zero value.
type deviceEntry struct {
	ID          *uint64  `json:"id"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	BatteryLife int      `json:"battery_life"`
}

// deviceListResponse is the shape of GET /clients_api/ring_devices: one
// sibling array per hardware category.
type deviceListResponse struct {
	Doorbots           []deviceEntry `json:"doorbots"`
	AuthorizedDoorbots []deviceEntry `json:"authorized_doorbots"`
	Chimes             []deviceEntry `json:"chimes"`
	StickupCams        []deviceEntry `json:"stickup_cams"`
}

// ListDevices fetches every device on the account. A fresh slice is built on
// each call and the caller owns it.
func (c *RingClient) ListDevices() ([]models.Device, error) {
	resp, err := c.get(devicesPath, c.authParams())
	if err != nil {
		return nil, err
	}

	var body deviceListResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: device list: %v", ErrDecode, err)
	}

	// One decode pass per category. Which array an entry came from fixes its
	// type, and chimes have no battery whatever the payload says.
	categories := []struct {
		key       string
		entries   []deviceEntry
		kind      models.DeviceType
		noBattery bool
	}{
		{"doorbots", body.Doorbots, models.DeviceDoorbell, false},
		{"authorized_doorbots", body.AuthorizedDoorbots, models.DeviceAuthorizedDoorbell, false},
		{"chimes", body.Chimes, models.DeviceChime, true},
		{"stickup_cams", body.StickupCams, models.DeviceCam, false},
	}

	var devices []models.Device
	for _, cat := range categories {
		for _, e := range cat.entries {
			if missing := e.missingField(); missing != "" {
				return nil, fmt.Errorf("%w: %s entry missing required field %q", ErrDecode, cat.key, missing)
			}

			battery := e.BatteryLife
			if cat.noBattery {
				battery = models.BatteryNotApplicable
			}

			devices = append(devices, models.Device{
				ID:          *e.ID,
				Description: *e.Description,
				Address:     *e.Address,
				Latitude:    *e.Latitude,
				Longitude:   *e.Longitude,
				BatteryLife: battery,
				Type:        cat.kind,
			})
		}
	}
	return devices, nil
}

func (e deviceEntry) missingField() string {
	switch {
	case e.ID == nil:
		return "id"
	case e.Description == nil:
		return "description"
	case e.Address == nil:
		return "address"
	case e.Latitude == nil:
		return "latitude"
	case e.Longitude == nil:
		return "longitude"
	}
	return ""
}
