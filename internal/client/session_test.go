package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewFromTokenProbesDeviceListing(t *testing.T) {
	var query map[string][]string

	mux := http.NewServeMux()
	mux.HandleFunc(devicesPath, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(deviceFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewFromToken(ClientConfig{BaseURL: srv.URL}, "test-token")
	if err != nil {
		t.Fatalf("NewFromToken: %v", err)
	}

	if c.AuthToken() != "test-token" {
		t.Fatalf("AuthToken = %q, want %q", c.AuthToken(), "test-token")
	}
	if query == nil {
		t.Fatal("constructor returned without probing the device listing")
	}
	if got := query["api_version"]; len(got) != 1 || got[0] != APIVersion {
		t.Fatalf("probe api_version = %v, want [%s]", got, APIVersion)
	}
	if got := query["auth_token"]; len(got) != 1 || got[0] != "test-token" {
		t.Fatalf("probe auth_token = %v, want [test-token]", got)
	}
}

func TestNewFromTokenRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(devicesPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewFromToken(ClientConfig{BaseURL: srv.URL}, "expired-token")
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}

func TestNewFromCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(newSessionPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("session method = %s, want POST", r.Method)
		}

		user, pass, ok := r.BasicAuth()
		if !ok || user != "user@example.com" || pass != "secret" {
			t.Errorf("basic auth = %q/%q (ok=%v)", user, pass, ok)
		}

		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if got := r.PostFormValue("api_version"); got != APIVersion {
			t.Errorf("form api_version = %q, want %q", got, APIVersion)
		}
		if got := r.PostFormValue("device[os]"); got != "android" {
			t.Errorf("form device[os] = %q, want android", got)
		}
		if r.PostFormValue("device[hardware_id]") == "" {
			t.Error("form device[hardware_id] is empty")
		}

		w.Write([]byte(`{"profile": {"authentication_token": "issued-token"}}`))
	})
	serveDevices(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewFromCredentials(ClientConfig{BaseURL: srv.URL}, "user@example.com", "secret")
	if err != nil {
		t.Fatalf("NewFromCredentials: %v", err)
	}
	if c.AuthToken() != "issued-token" {
		t.Fatalf("AuthToken = %q, want %q", c.AuthToken(), "issued-token")
	}
}

func TestNewFromCredentialsBadPassword(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(newSessionPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewFromCredentials(ClientConfig{BaseURL: srv.URL}, "user@example.com", "wrong")
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}

func TestNewFromCredentialsMissingToken(t *testing.T) {
	probes := 0

	mux := http.NewServeMux()
	mux.HandleFunc(newSessionPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"profile": {}}`))
	})
	mux.HandleFunc(devicesPath, func(w http.ResponseWriter, r *http.Request) {
		probes++
		w.Write([]byte(deviceFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewFromCredentials(ClientConfig{BaseURL: srv.URL}, "user@example.com", "secret")
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
	if probes != 0 {
		t.Fatalf("probe ran %d times after a tokenless session response, want 0", probes)
	}
}

// A token that parses out of the session response can still be dead server
// side; construction must fail rather than hand out an unusable client.
func TestNewFromCredentialsProbeRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(newSessionPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"profile": {"authentication_token": "dead-token"}}`))
	})
	mux.HandleFunc(devicesPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewFromCredentials(ClientConfig{BaseURL: srv.URL}, "user@example.com", "secret")
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}
