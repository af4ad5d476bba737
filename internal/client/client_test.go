package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const deviceFixture = `{
	"doorbots": [
		{"id": 1, "description": "Front Door", "address": "1 Main St", "latitude": 40.0094, "longitude": -75.1333, "battery_life": 80}
	],
	"authorized_doorbots": [],
	"chimes": [
		{"id": 2, "description": "Chime", "address": "1 Main St", "latitude": 40.0094, "longitude": -75.1333, "battery_life": 55}
	],
	"stickup_cams": []
}`

// serveDevices answers the device-listing endpoint with the standard
// fixture. Constructors probe this endpoint, so almost every test needs it.
func serveDevices(mux *http.ServeMux) {
	mux.HandleFunc(devicesPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(deviceFixture))
	})
}

func newTestClient(t *testing.T, srv *httptest.Server) *RingClient {
	t.Helper()

	c, err := NewFromToken(ClientConfig{BaseURL: srv.URL}, "test-token")
	if err != nil {
		t.Fatalf("NewFromToken: %v", err)
	}
	return c
}
