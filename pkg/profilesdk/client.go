package profilesdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kotoed/denizen/pkg/expect"
	"github.com/kotoed/denizen/pkg/idx"
)

// Client talks to the denizen service over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func denizenPath(id string, suffix string) (string, error) {
	if err := expect.Expect(idx.Valid(id), "profilesdk: malformed denizen id "+strconv.Quote(id)); err != nil {
		return "", err
	}
	return "/v1/denizens/" + url.PathEscape(id) + suffix, nil
}

// CreateDenizen registers a new denizen and returns its id.
func (c *Client) CreateDenizen(ctx context.Context, req CreateDenizenRequest) (*CreateDenizenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/denizens", req)
	if err != nil {
		return nil, err
	}

	var out CreateDenizenResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDenizen fetches the account record.
func (c *Client) GetDenizen(ctx context.Context, id string) (*DenizenResponse, error) {
	path, err := denizenPath(id, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out DenizenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReadProfile fetches the editable profile of a denizen.
func (c *Client) ReadProfile(ctx context.Context, id string) (*ProfileInfo, error) {
	path, err := denizenPath(id, "/profile")
	if err != nil {
		return nil, err
	}

	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out ProfileInfo
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies the non-nil fields of req.
func (c *Client) UpdateProfile(ctx context.Context, id string, req ProfileUpdateRequest) error {
	path, err := denizenPath(id, "/profile")
	if err != nil {
		return err
	}

	resp, err := c.doJSON(ctx, http.MethodPut, path, req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ChangePassword replaces the password. A wrong old password yields an error
// matching ErrIncorrectOldPassword.
func (c *Client) ChangePassword(ctx context.Context, id string, req PasswordChangeRequest) error {
	path, err := denizenPath(id, "/password")
	if err != nil {
		return err
	}

	resp, err := c.doJSON(ctx, http.MethodPut, path, req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Health calls the readiness probe.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
