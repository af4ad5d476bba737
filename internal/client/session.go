package client

import (
	"encoding/json"
	"fmt"

	"ring-cli/internal/auth"
)

// sessionResponse captures the auth token returned by POST /clients_api/session.
type sessionResponse struct {
	Profile struct {
		AuthenticationToken string `json:"authentication_token"`
	} `json:"profile"`
}

// NewFromToken creates an authenticated client from a previously issued auth
// token. The token is validated with a device-listing probe before the
// client is returned; an expired or rejected token fails with
// ErrAuthentication, at which point the caller should fall back to
// NewFromCredentials.
func NewFromToken(cfg ClientConfig, token string) (*RingClient, error) {
	c := newClient(cfg)
	c.authToken = token

	if err := c.probe(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewFromCredentials creates an authenticated client from a Ring account
// username and password. The credentials are exchanged for an auth token and
// never held beyond this call; persist AuthToken() and use NewFromToken for
// future sessions.
func NewFromCredentials(cfg ClientConfig, username, password string) (*RingClient, error) {
	c := newClient(cfg)

	resp, err := c.postForm(newSessionPath, auth.SessionFormData(APIVersion), username, password)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: session creation returned %s", ErrAuthentication, resp.Status())
	}

	var body sessionResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: session response: %v", ErrDecode, err)
	}
	if body.Profile.AuthenticationToken == "" {
		return nil, fmt.Errorf("%w: session response did not include an auth token", ErrAuthentication)
	}

	c.authToken = body.Profile.AuthenticationToken

	// The token can be syntactically present yet already rejected server
	// side; validate it exactly as the token path does.
	if err := c.probe(); err != nil {
		return nil, err
	}
	return c, nil
}

// probe confirms the current token is accepted by listing devices. Every
// constructor runs it, so no unvalidated client ever escapes.
func (c *RingClient) probe() error {
	resp, err := c.http.R().SetQueryParams(c.authParams()).Get(devicesPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: probe returned %s", ErrAuthentication, resp.Status())
	}
	return nil
}
