package client

import (
	"fmt"
	"net/http"

	"ring-cli/pkg/models"
)

// RecordingURL resolves the signed, time-limited URL for a ding's video.
// The ding must have RecordingIsReady set; asking for a recording that is
// not ready is a caller error and no request is made. The URL expires after
// a short window, so it should be used right away rather than stored.
func (c *RingClient) RecordingURL(ding models.Ding) (string, error) {
	if !ding.RecordingIsReady {
		return "", fmt.Errorf("%w: ding %d does not have a recording available", ErrInvalidArgument, ding.ID)
	}

	path := fmt.Sprintf(dingRecordingPath, ding.ID)
	c.log.Debug().Str("path", path).Msg("GET (no redirect)")

	resp, err := c.noRedirect.R().SetQueryParams(c.authParams()).Get(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	// The API answers with a redirect to the CDN and the Location header is
	// the result. Anything else, 200 included, means no recording came back.
	if resp.StatusCode() != http.StatusFound {
		return "", fmt.Errorf("%w: recording endpoint returned %s", ErrTransport, resp.Status())
	}

	location := resp.Header().Get("Location")
	if location == "" {
		return "", fmt.Errorf("%w: recording redirect missing Location header", ErrDecode)
	}
	return location, nil
}
