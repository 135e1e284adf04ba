// Package client is a Go client for the Rent Platform API. It injects the
// bearer token from a TokenStore on every request, unwraps error responses
// into APIError values carrying the server's detail message, and treats
// empty success bodies as empty results.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rentplatform/rentplatform-api/models"
)

// APIError is the single error kind produced by failed requests. Detail is
// the server's detail field when present, else the HTTP status text.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

type Client struct {
	http   *resty.Client
	tokens TokenStore

	// Admin groups the administrator endpoints.
	Admin *AdminService
}

// New builds a client against the given base URL. A nil store defaults to
// an in-memory one.
func New(baseURL string, store TokenStore) *Client {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
		tokens: store,
	}
	c.Admin = &AdminService{c: c}
	return c
}

// Tokens exposes the underlying store, mainly for session checks.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	if token, err := c.tokens.Get(); err == nil && token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}

	if resp.IsError() {
		detail := http.StatusText(resp.StatusCode())
		var errBody struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(resp.Body(), &errBody) == nil && errBody.Detail != "" {
			detail = errBody.Detail
		}
		// A rejected token means the session is gone, drop it.
		if resp.StatusCode() == http.StatusUnauthorized {
			c.tokens.Clear()
		}
		return &APIError{StatusCode: resp.StatusCode(), Detail: detail}
	}

	if result != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register starts a registration; a verification code is emailed.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/users/register",
		models.RegisterData{Email: email, Password: password}, nil)
}

// Verify confirms a registration with the emailed code.
func (c *Client) Verify(ctx context.Context, email, code string) error {
	return c.do(ctx, http.MethodPost, "/users/verify",
		models.VerifyData{Email: email, Code: code}, nil)
}

// ResendVerification requests a fresh verification code.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/resend-verification",
		models.ResendVerificationData{Email: email}, nil)
}

// Login authenticates and persists the returned token. The session is
// established from the returned user record, no extra round trip.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/users/login",
		models.LoginData{Email: email, Password: password}, &auth)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.Set(auth.AccessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return &auth, nil
}

// Logout drops the persisted token.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Me returns the authenticated user, used to hydrate a session from a
// persisted token on startup.
func (c *Client) Me(ctx context.Context) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword requests a reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/forgot-password",
		models.ForgotPasswordData{Email: email}, nil)
}

// ResetPassword sets a new password with the emailed reset code.
func (c *Client) ResetPassword(ctx context.Context, email, resetCode, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/users/reset-password",
		models.ResetPasswordData{Email: email, ResetCode: resetCode, NewPassword: newPassword}, nil)
}

// ChangePassword updates the password and ends the local session, the old
// token must not outlive the old password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	err := c.do(ctx, http.MethodPost, "/users/change-password",
		models.ChangePasswordData{OldPassword: oldPassword, NewPassword: newPassword}, nil)
	if err != nil {
		return err
	}
	return c.tokens.Clear()
}

// RedeemCode redeems a promotion code and returns the new balance.
func (c *Client) RedeemCode(ctx context.Context, code string) (float64, error) {
	var result struct {
		Balance float64 `json:"balance"`
	}
	err := c.do(ctx, http.MethodPost, "/users/redeem-code",
		models.RedeemCodeData{Code: code}, &result)
	if err != nil {
		return 0, err
	}
	return result.Balance, nil
}

// ListProducts fetches the public catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.ProductPublicResponse, error) {
	var products []models.ProductPublicResponse
	if err := c.do(ctx, http.MethodGet, "/products/list", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CalcOTP derives the current one-time password for a stored secret.
func (c *Client) CalcOTP(ctx context.Context, secret string) (string, error) {
	var result struct {
		Otp string `json:"otp"`
	}
	path := "/products/calc-otp?secret=" + url.QueryEscape(secret)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return "", err
	}
	return result.Otp, nil
}

// Buy rents a product against the account balance.
func (c *Client) Buy(ctx context.Context, productID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/buy/%d", productID), nil, nil)
}

// Renew extends a rental at the product's current price.
func (c *Client) Renew(ctx context.Context, orderID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/renew/%d", orderID), nil, nil)
}

// History returns the caller's orders, credentials included.
func (c *Client) History(ctx context.Context) ([]models.OrderResponse, error) {
	var orders []models.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/orders/history", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Announcements returns the active announcement feed.
func (c *Client) Announcements(ctx context.Context) ([]models.AnnouncementResponse, error) {
	var announcements []models.AnnouncementResponse
	if err := c.do(ctx, http.MethodGet, "/announcements", nil, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}
