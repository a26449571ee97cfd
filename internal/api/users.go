package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Profile is the signed-in user's account record.
type Profile struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// Login obtains a bearer token and stores it in the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	var out struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"username": username, "password": password}
	if err := c.postJSON(ctx, "/login", payload, &out); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if out.Token == "" {
		return fmt.Errorf("login failed: server returned no token")
	}

	if err := c.session.Set(out.Token, username); err != nil {
		return fmt.Errorf("login succeeded but session could not be stored: %w", err)
	}
	return nil
}

// Signup creates an account. It does not sign the user in.
func (c *Client) Signup(ctx context.Context, username, password, firstName, lastName string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	payload := map[string]string{
		"username":  username,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	}
	if err := c.postJSON(ctx, "/user/signup", payload, nil); err != nil {
		return fmt.Errorf("sign up failed: %w", err)
	}
	return nil
}

// Logout tears the session down. Purely client-side; the server keeps no
// session state beyond the token.
func (c *Client) Logout() error {
	c.cache.DeleteAll()
	return c.session.Clear()
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user/me", nil)
	if err != nil {
		return Profile{}, err
	}
	var profile Profile
	if err := c.doJSON(req, &profile); err != nil {
		return Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile updates the user's phone number and returns the new profile.
func (c *Client) UpdateProfile(ctx context.Context, phoneNumber string) (Profile, error) {
	payload := fmt.Sprintf(`{"phoneNumber":%q}`, phoneNumber)
	req, err := c.newRequest(ctx, http.MethodPut, "/user/me", strings.NewReader(payload))
	if err != nil {
		return Profile{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var profile Profile
	if err := c.doJSON(req, &profile); err != nil {
		return Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}
