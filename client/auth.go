package client

import (
	"context"
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// LoginPayload carries the sign-in form fields.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
	)
}

// RegisterPayload carries the sign-up form fields.
type RegisterPayload struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
	)
}

// tokenEnvelope tolerates the token response shapes the backend has used
// across revisions: {token}, {accessToken}, and {data:{accessToken}}.
type tokenEnvelope struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	Data        *struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	} `json:"data"`
}

func (e tokenEnvelope) token() string {
	switch {
	case e.Token != "":
		return e.Token
	case e.AccessToken != "":
		return e.AccessToken
	case e.Data != nil && e.Data.Token != "":
		return e.Data.Token
	case e.Data != nil && e.Data.AccessToken != "":
		return e.Data.AccessToken
	}
	return ""
}

// credentialOpts marks a request as a credential exchange: a 401 is a form
// error for the caller, never a session teardown.
func credentialOpts() []RequestOption {
	return []RequestOption{withoutUnauthorizedHook()}
}

// Login authenticates against POST /api/auth/login, stores the returned
// bearer token wholesale, and returns it. A 401 here simply means bad
// credentials and leaves any existing session untouched.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload := LoginPayload{Username: username, Password: password}
	if err := payload.Validate(); err != nil {
		return "", err
	}

	body, err := c.do(ctx, "POST", "/api/auth/login", payload, credentialOpts())
	if err != nil {
		return "", err
	}

	token := extractToken(body)
	if token == "" {
		return "", errors.New("login response carried no token", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	if err := c.store.Set(token); err != nil {
		return "", err
	}
	return token, nil
}

// Register creates an account via POST /api/auth/register and stores the
// returned token, signing the new user straight in when the backend issues
// one.
func (c *Client) Register(ctx context.Context, name, username, password string) (string, error) {
	payload := RegisterPayload{Name: name, Username: username, Password: password}
	if err := payload.Validate(); err != nil {
		return "", err
	}

	body, err := c.do(ctx, "POST", "/api/auth/register", payload, credentialOpts())
	if err != nil {
		return "", err
	}

	token := extractToken(body)
	if token == "" {
		return "", errors.New("register response carried no token", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	if err := c.store.Set(token); err != nil {
		return "", err
	}
	return token, nil
}

// Logout performs the bearer-authenticated POST /api/auth/logout with an
// empty body. Strictly best effort; the Controller clears local state no
// matter what this returns.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, "POST", "/api/auth/logout", struct{}{}, nil)
	return err
}

// ResetPasswordSendOTP starts the password-reset flow for email.
func (c *Client) ResetPasswordSendOTP(ctx context.Context, email string) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return err
	}
	payload := map[string]string{"email": email}
	_, err := c.do(ctx, "POST", "/api/auth/reset-password/send-otp", payload, credentialOpts())
	return err
}

// ResetPasswordVerifyOTP confirms the one-time code sent to email.
func (c *Client) ResetPasswordVerifyOTP(ctx context.Context, email, otp string) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return err
	}
	if err := validation.Validate(otp, validation.Required, is.Digit); err != nil {
		return err
	}
	payload := map[string]string{"email": email, "otp": otp}
	_, err := c.do(ctx, "POST", "/api/auth/reset-password/verify-otp", payload, credentialOpts())
	return err
}

// extractToken pulls the token out of whatever shape the backend responded
// with, including a bare token string as the whole body.
func extractToken(body []byte) string {
	var envelope tokenEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if token := envelope.token(); token != "" {
			return token
		}
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err == nil && bare != "" {
		return bare
	}

	// Some revisions returned the raw token with no JSON framing at all.
	raw := strings.TrimSpace(string(body))
	if raw != "" && strings.Count(raw, ".") == 2 && !strings.ContainsAny(raw, "{}\" \n") {
		return raw
	}
	return ""
}
