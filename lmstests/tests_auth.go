package lmstests

import (
	"fmt"
	"net/http"

	"github.com/ethicomply/lms-contract-tests/client"
	"github.com/ethicomply/lms-contract-tests/lmsapi"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoUserRegistration registers a new, uniquely named user and keeps the returned token.
func DoUserRegistration(t *T) {
	cfg := t.Config().User
	reg := lmsapi.NewRegistration(cfg.Name, cfg.EmailDomain, cfg.Password, cfg.Organization)
	t.Debug("Registering %s", reg.Email)

	resp := t.Send(client.Request{Method: http.MethodPost, Path: "/auth/register", Body: reg})
	body := t.RequireJSON("Registration", resp)
	token := stringProp(body, "token")
	user := body.GetByKey("user")
	t.RequireShape(truthy(body.GetByKey("success")) && token != "" && truthy(user), body,
		"Invalid response format")

	t.env.client.SetToken(token)
	t.env.fixtures.registration = reg
	t.env.fixtures.user = userFromJSON(user, reg)
	t.Succeed("User registered successfully: %s", reg.Email)
}

// DoUserLogin logs in as the registered user and replaces the token with the new one.
func DoUserLogin(t *T) {
	reg := t.env.fixtures.registration
	login := lmsapi.Login{Email: reg.Email, Password: reg.Password}

	resp := t.Send(client.Request{Method: http.MethodPost, Path: "/auth/login", Body: login})
	body := t.RequireJSON("Login", resp)
	token := stringProp(body, "token")
	t.RequireShape(truthy(body.GetByKey("success")) && token != "", body, "Invalid login response format")

	t.env.client.SetToken(token)
	if user := body.GetByKey("user"); truthy(user) {
		t.env.fixtures.user = userFromJSON(user, reg)
	}
	t.Succeed("Login successful for %s", login.Email)
}

// DoGetCurrentUser checks that the token identifies the user who registered.
func DoGetCurrentUser(t *T) {
	resp := t.Send(client.Request{Method: http.MethodGet, Path: "/auth/me"})
	body := t.RequireJSON("Get current user", resp)
	email := stringProp(body, "email")
	t.RequireShape(truthy(body.GetByKey("userId")) && email != "", body, "Invalid user profile format")

	registered := t.env.fixtures.registration.Email
	t.RequireShape(email == registered, body,
		"Profile email %q does not match registered email %q", email, registered)
	t.Succeed("User profile retrieved: %s", email)
}

// DoRejectUnauthenticatedRequest checks that a protected endpoint refuses a request that has
// no token. The run's own token is not affected.
func DoRejectUnauthenticatedRequest(t *T) {
	resp := t.SendWith(t.Client().WithoutToken(), client.Request{Method: http.MethodGet, Path: "/auth/me"})
	if resp.IsSuccess() {
		t.Fatal(&client.ContractError{
			Message: fmt.Sprintf("Request without token was accepted with status %d", resp.StatusCode),
			Body:    ldvalue.String(string(resp.Body)),
		})
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatal(&client.ProtocolError{
			Operation:  "Unauthenticated request",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("expected status %d but got %d", http.StatusUnauthorized, resp.StatusCode),
		})
	}
	t.Succeed("Request without token rejected with status %d", resp.StatusCode)
}

func userFromJSON(v ldvalue.Value, reg lmsapi.Registration) lmsapi.User {
	u := lmsapi.User{
		UserID:       stringProp(v, "userId"),
		Name:         stringProp(v, "name"),
		Email:        stringProp(v, "email"),
		Organization: stringProp(v, "organization"),
		Role:         stringProp(v, "role"),
	}
	if u.Email == "" {
		u.Email = reg.Email
	}
	if u.Name == "" {
		u.Name = reg.Name
	}
	return u
}
