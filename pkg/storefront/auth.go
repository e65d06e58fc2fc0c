package storefront

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// User is the client-side view of the signed-in account.
type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Verified  bool   `json:"verified"`
}

// ErrPasswordMismatch is returned by SignUp before any request is made when
// the password and its confirmation differ.
var ErrPasswordMismatch = errors.New("passwords do not match")

// AuthStore is a two-state machine: anonymous or authenticated. It hydrates
// from durable storage on construction and persists every transition.
// Subscribers are notified on each transition so dependent stores can fetch
// or clear without polling.
type AuthStore struct {
	mu          sync.RWMutex
	storage     *Storage
	user        *User
	token       string
	subscribers []func(authenticated bool)
}

// NewAuthStore hydrates from storage. A missing or corrupt user/token pair
// leaves the store anonymous; partial state is purged.
func NewAuthStore(storage *Storage) *AuthStore {
	a := &AuthStore{storage: storage}

	var u User
	var token string
	haveUser, _ := storage.Get(StorageKeyUser, &u)
	haveToken, _ := storage.Get(StorageKeyToken, &token)
	if haveUser && haveToken && token != "" {
		a.user = &u
		a.token = token
	} else if haveUser || haveToken {
		_ = storage.Delete(StorageKeyUser)
		_ = storage.Delete(StorageKeyToken)
	}
	return a
}

func (a *AuthStore) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user != nil
}

func (a *AuthStore) CurrentUser() (User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return User{}, false
	}
	return *a.user, true
}

// Token implements TokenSource.
func (a *AuthStore) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// OnChange registers a subscriber invoked after every auth transition with
// the new state.
func (a *AuthStore) OnChange(fn func(authenticated bool)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// Login persists the user and token and flips the store to authenticated.
func (a *AuthStore) Login(u User, token string) error {
	if err := a.storage.Set(StorageKeyUser, u); err != nil {
		return err
	}
	if err := a.storage.Set(StorageKeyToken, token); err != nil {
		return err
	}

	a.mu.Lock()
	a.user = &u
	a.token = token
	subs := append([]func(bool){}, a.subscribers...)
	a.mu.Unlock()

	for _, fn := range subs {
		fn(true)
	}
	return nil
}

// Logout clears storage and state. Subscribers clear their own local state
// without issuing network calls.
func (a *AuthStore) Logout() error {
	if err := a.storage.Delete(StorageKeyUser); err != nil {
		return err
	}
	if err := a.storage.Delete(StorageKeyToken); err != nil {
		return err
	}
	_ = a.storage.Delete(StorageKeyCartItems)

	a.mu.Lock()
	a.user = nil
	a.token = ""
	subs := append([]func(bool){}, a.subscribers...)
	a.mu.Unlock()

	for _, fn := range subs {
		fn(false)
	}
	return nil
}

type authResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SignInParams are the credentials posted to the sign-in endpoint.
type SignInParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpParams carry the registration form. ConfirmPassword never leaves the
// client; it is checked before the request is built.
type SignUpParams struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
}

// SignIn authenticates against the API and records the session.
func (a *AuthStore) SignIn(ctx context.Context, client *Client, params SignInParams) (User, error) {
	return a.authenticate(ctx, client, EndpointSignIn, params)
}

// SignUp registers a new account. A password/confirmation mismatch fails
// before any request is issued.
func (a *AuthStore) SignUp(ctx context.Context, client *Client, params SignUpParams) (User, error) {
	if params.Password != params.ConfirmPassword {
		return User{}, ErrPasswordMismatch
	}
	return a.authenticate(ctx, client, EndpointSignUp, params)
}

func (a *AuthStore) authenticate(ctx context.Context, client *Client, path string, body any) (User, error) {
	payload, err := client.Call(ctx, path, &CallOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return User{}, err
	}
	var resp authResponse
	if err := unmarshal(payload, &resp); err != nil {
		return User{}, err
	}
	if err := a.Login(resp.User, resp.Token); err != nil {
		return User{}, err
	}
	return resp.User, nil
}
