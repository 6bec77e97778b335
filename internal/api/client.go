// Package api is the HTTP gateway to the marketplace backend. A Client
// is an explicit, injectable instance: constructed once with a base
// URL and a token store, then handed to each state manager.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"stuma/internal/domain"
	"stuma/internal/token"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  token.Store
}

// NewClient builds a gateway for the backend at baseURL. httpc may be
// nil, in which case http.DefaultClient is used.
func NewClient(baseURL string, httpc *http.Client, tokens token.Store) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpc: httpc, tokens: tokens}
}

// bearer returns the Authorization header value, or ErrNoToken without
// touching the network when no credential is saved.
func (c *Client) bearer() (string, error) {
	tok, ok := c.tokens.Token()
	if !ok {
		return "", ErrNoToken
	}
	return "Bearer " + tok, nil
}

// do runs one round trip. A non-2xx status becomes a *StatusError with
// the server's message when the body carries one. out may be nil.
func (c *Client) do(ctx context.Context, method, path, auth string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		var ack domain.Ack
		if json.NewDecoder(resp.Body).Decode(&ack) == nil {
			se.Message = ack.Message
		}
		return se
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

type itemsEnvelope struct {
	Message string        `json:"message"`
	Data    []domain.Item `json:"data"`
}

// Items fetches the full catalog. Requires auth. A success response
// whose data field is null or missing is its own failure (ErrNullItems),
// distinct from a valid empty list.
func (c *Client) Items(ctx context.Context) ([]domain.Item, error) {
	auth, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var env itemsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/items", auth, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, ErrNullItems
	}
	return env.Data, nil
}

// SellItem creates a new listing. Requires auth.
func (c *Client) SellItem(ctx context.Context, req domain.SellRequest) error {
	auth, err := c.bearer()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/items", auth, req, nil)
}

// Login authenticates and saves the returned token into the store.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	var out domain.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &out); err != nil {
		return domain.LoginResponse{}, err
	}
	if out.Token == "" {
		return domain.LoginResponse{}, ErrNullBody
	}
	if err := c.tokens.Save(out.Token); err != nil {
		return domain.LoginResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.Ack, error) {
	var out domain.Ack
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return domain.Ack{}, err
	}
	return out, nil
}

// Profile reads the logged-in user's profile. A success response with an
// empty body is ErrNullBody.
func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	auth, err := c.bearer()
	if err != nil {
		return domain.Profile{}, err
	}
	var out domain.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", auth, nil, &out); err != nil {
		return domain.Profile{}, err
	}
	if out == (domain.Profile{}) {
		return domain.Profile{}, ErrNullBody
	}
	return out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (domain.Ack, error) {
	auth, err := c.bearer()
	if err != nil {
		return domain.Ack{}, err
	}
	var out domain.Ack
	if err := c.do(ctx, http.MethodPut, "/api/profile", auth, req, &out); err != nil {
		return domain.Ack{}, err
	}
	return out, nil
}

func (c *Client) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (domain.Ack, error) {
	auth, err := c.bearer()
	if err != nil {
		return domain.Ack{}, err
	}
	var out domain.Ack
	if err := c.do(ctx, http.MethodPost, "/api/profile/change-password", auth, req, &out); err != nil {
		return domain.Ack{}, err
	}
	return out, nil
}
