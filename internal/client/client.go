package client

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	// APIVersion is the protocol version the Ring API expects on every call.
	APIVersion = "9"

	// DefaultBaseURL is the production Ring API origin.
	DefaultBaseURL = "https://api.ring.com"
)

const (
	newSessionPath    = "/clients_api/session"
	devicesPath       = "/clients_api/ring_devices"
	activeDingsPath   = "/clients_api/dings/active"
	dingHistoryPath   = "/clients_api/doorbots/history"
	dingRecordingPath = "/clients_api/dings/%d/recording"
)

// The API rejects or degrades for unrecognized clients, so requests are
// presented as coming from the Ring Android app.
const userAgent = "Dalvik/1.6.0 (Linux; U; Android 4.4.4; Build/KTU84Q)"

type ClientConfig struct {
	// BaseURL overrides the production API origin. Leave empty outside tests.
	BaseURL string
	Logger  *zerolog.Logger
}

// RingClient provides authenticated access to the Ring API. Construct one
// with NewFromToken or NewFromCredentials; both validate the session before
// returning, so a RingClient in hand is always usable.
type RingClient struct {
	http       *resty.Client
	noRedirect *resty.Client
	log        zerolog.Logger

	// authToken is written once during construction and never rewritten,
	// which keeps concurrent calls on one client safe without locking.
	authToken string
}

func newClient(cfg ClientConfig) *RingClient {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	c := &RingClient{
		http: resty.New(),
		noRedirect: resty.NewWithClient(&http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}),
		log: log,
	}

	for _, r := range []*resty.Client{c.http, c.noRedirect} {
		r.SetBaseURL(base)
		r.SetHeader("User-Agent", userAgent)
		r.SetHeader("Accept-Encoding", "gzip, deflate")
	}

	return c
}

// AuthToken returns the validated auth token. Persist it instead of the
// account credentials; a later process can reconnect with NewFromToken.
func (c *RingClient) AuthToken() string {
	return c.authToken
}

// authParams is carried on every authenticated call, as query parameters on
// GET and as form fields on POST.
func (c *RingClient) authParams() map[string]string {
	return map[string]string{
		"api_version": APIVersion,
		"auth_token":  c.authToken,
	}
}

// get issues a GET with params encoded as the query string. Any non-2xx
// status is a transport failure; operations that expect a redirect use the
// noRedirect client directly instead.
func (c *RingClient) get(path string, params map[string]string) (*resty.Response, error) {
	c.log.Debug().Str("path", path).Msg("GET")

	resp, err := c.http.R().SetQueryParams(params).Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: api returned %s", ErrTransport, resp.Status())
	}
	return resp, nil
}

// postForm issues a form-encoded POST. When credentials are supplied the
// call carries HTTP Basic auth and redirect following is switched off for
// that call. Status classification is left to the caller; the session
// endpoint treats failures as authentication errors rather than transport
// ones.
func (c *RingClient) postForm(path string, fields map[string]string, username, password string) (*resty.Response, error) {
	httpc := c.http
	if username != "" {
		httpc = c.noRedirect
	}

	c.log.Debug().Str("path", path).Bool("basic_auth", username != "").Msg("POST")

	req := httpc.R().SetFormData(fields)
	if username != "" {
		req.SetBasicAuth(username, password)
	}

	resp, err := req.Post(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}
