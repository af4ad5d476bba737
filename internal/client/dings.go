package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ring-cli/pkg/models"
)

// DefaultHistoryLimit is used by ListDingHistory when the caller does not
// supply a limit. Any upper bound is the API's to enforce, not ours.
const DefaultHistoryLimit = 30

type dingEntry struct {
	ID        *uint64 `json:"id"`
	CreatedAt string  `json:"created_at"`
	Answered  bool    `json:"answered"`
	Kind      string  `json:"kind"`
	Recording struct {
		Status string `json:"status"`
	} `json:"recording"`
	Doorbot struct {
		ID uint64 `json:"id"`
	} `json:"doorbot"`
}

// ListActiveDings fetches the dings currently in progress on the account.
func (c *RingClient) ListActiveDings() ([]models.Ding, error) {
	return c.listDings(activeDingsPath, c.authParams())
}

// ListDingHistory fetches up to limit recent dings, most recent first.
// A limit of zero or less uses DefaultHistoryLimit.
func (c *RingClient) ListDingHistory(limit int) ([]models.Ding, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	params := c.authParams()
	params["limit"] = strconv.Itoa(limit)
	return c.listDings(dingHistoryPath, params)
}

// listDings fetches a ding listing and then the device list, so each ding
// can point back at the device it came from. The two reads are sequential
// and not atomic with respect to the remote state; a ding whose device is no
// longer on the account simply keeps a nil Device.
func (c *RingClient) listDings(path string, params map[string]string) ([]models.Ding, error) {
	resp, err := c.get(path, params)
	if err != nil {
		return nil, err
	}

	var entries []dingEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("%w: ding list: %v", ErrDecode, err)
	}

	devices, err := c.ListDevices()
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*models.Device, len(devices))
	for i := range devices {
		byID[devices[i].ID] = &devices[i]
	}

	dings := make([]models.Ding, 0, len(entries))
	for _, e := range entries {
		if e.ID == nil {
			return nil, fmt.Errorf("%w: ding entry missing required field \"id\"", ErrDecode)
		}

		created, err := time.Parse(time.RFC3339, e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ding %d: created_at: %v", ErrDecode, *e.ID, err)
		}

		dings = append(dings, models.Ding{
			ID:               *e.ID,
			CreatedAt:        created,
			Answered:         e.Answered,
			RecordingIsReady: e.Recording.Status == "ready",
			Type:             dingType(e.Kind),
			Device:           byID[e.Doorbot.ID],
		})
	}
	return dings, nil
}

// dingType maps the API's kind discriminator onto DingType. Strings this
// client does not know about become DingUnknown rather than an error.
func dingType(kind string) models.DingType {
	switch kind {
	case "motion":
		return models.DingMotion
	case "ding":
		return models.DingRing
	default:
		return models.DingUnknown
	}
}
