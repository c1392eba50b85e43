package cms

import (
	"context"
	"encoding/json"
	"net/http"
)

// Credentials are the sign-in form values.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the sign-up form values for a new staff account.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthAPI talks to the session endpoints. The server answers a successful
// sign-in with a session cookie which the client's jar keeps forwarding.
type AuthAPI struct {
	client *Client
}

func (c *Client) Auth() AuthAPI { return AuthAPI{c} }

func (a AuthAPI) SignIn(ctx context.Context, creds Credentials) (User, error) {
	return a.postUser(ctx, "signin", "auth/signin", creds, "Login failed")
}

func (a AuthAPI) SignUp(ctx context.Context, reg Registration) (User, error) {
	return a.postUser(ctx, "signup", "auth/signup", reg, "Registration failed")
}

// Me asks the server who the session cookie belongs to. Any failure, from
// transport trouble to an expired session, reads as "not signed in": the
// session check must always resolve so the caller can finish initializing.
func (a AuthAPI) Me(ctx context.Context) (User, bool) {
	resp, err := a.client.do(ctx, apiOp{"auth", "me"}, http.MethodGet, a.client.urlFor("auth/me"), "", nil)
	if err != nil {
		return User{}, false
	}
	defer resp.Body.Close()

	user, err := decodeRecord[User](resp, "user", "Not signed in")
	if err != nil {
		return User{}, false
	}
	return user, true
}

func (a AuthAPI) SignOut(ctx context.Context) error {
	resp, err := a.client.do(ctx, apiOp{"auth", "logout"}, http.MethodPost, a.client.urlFor("auth/logout"), "application/json", []byte("{}"))
	if err != nil {
		return transportError("Logout failed", err)
	}
	defer resp.Body.Close()

	_, err = decodeEnvelope(resp, "", "Logout failed")
	return err
}

func (a AuthAPI) postUser(ctx context.Context, op, apiPath string, form any, fallback string) (User, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return User{}, err
	}

	resp, err := a.client.do(ctx, apiOp{"auth", op}, http.MethodPost, a.client.urlFor(apiPath), "application/json", body)
	if err != nil {
		return User{}, transportError(fallback, err)
	}
	defer resp.Body.Close()

	return decodeRecord[User](resp, "user", fallback)
}
