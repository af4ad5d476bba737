package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ring-cli/pkg/models"
)

func TestRecordingURL(t *testing.T) {
	mux := http.NewServeMux()
	serveDevices(mux)
	mux.HandleFunc("/clients_api/dings/10/recording", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("auth_token"); got != "test-token" {
			t.Errorf("auth_token = %q, want test-token", got)
		}
		w.Header().Set("Location", "https://cdn.example.com/rec/10.mp4")
		w.WriteHeader(http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)

	url, err := c.RecordingURL(models.Ding{ID: 10, RecordingIsReady: true})
	if err != nil {
		t.Fatalf("RecordingURL: %v", err)
	}
	if url != "https://cdn.example.com/rec/10.mp4" {
		t.Fatalf("url = %q, want the Location header value", url)
	}
}

// A 200 from the recording endpoint means the redirect did not happen; only
// 302 counts as success there.
func TestRecordingURLUnexpectedStatus(t *testing.T) {
	mux := http.NewServeMux()
	serveDevices(mux)
	mux.HandleFunc("/clients_api/dings/10/recording", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)

	_, err := c.RecordingURL(models.Ding{ID: 10, RecordingIsReady: true})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}

func TestRecordingURLNotReady(t *testing.T) {
	hits := 0

	mux := http.NewServeMux()
	serveDevices(mux)
	mux.HandleFunc("/clients_api/dings/10/recording", func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)

	_, err := c.RecordingURL(models.Ding{ID: 10, RecordingIsReady: false})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if hits != 0 {
		t.Fatalf("recording endpoint hit %d times for a not-ready ding, want 0", hits)
	}
}
