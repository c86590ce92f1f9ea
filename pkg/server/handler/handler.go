/*
Copyright 2026 the Petstore QA Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:revive
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/petstore-qa/petstore-api/pkg/openapi"
	servererrors "github.com/petstore-qa/petstore-api/pkg/server/errors"
	"github.com/petstore-qa/petstore-api/pkg/server/handler/user"
	"github.com/petstore-qa/petstore-api/pkg/server/util"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// ErrInvalidOptions is raised when the handler is misconfigured.
var ErrInvalidOptions = errors.New("invalid options")

const (
	// SessionCookie carries the session ID between login and mutating calls.
	SessionCookie = "session"

	// ExpiresAfterLayout is how the X-Expires-After header is formatted, always in UTC.
	ExpiresAfterLayout = "Mon Jan 02 15:04:05 GMT 2006"

	// LoggedOutMessage is the body returned on logout.
	LoggedOutMessage = "User logged out"
)

type Handler struct {
	// store holds users and sessions.
	store *user.Store

	// options allows behaviour to be defined on the CLI.
	options *Options

	// now is the clock, overridable for testing.
	now func() time.Time
}

// Option modifies a handler on construction.
type Option func(*Handler)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

func New(store *user.Store, options *Options, opts ...Option) (*Handler, error) {
	if options.RateLimit <= 0 {
		return nil, fmt.Errorf("%w: rate limit must be positive", ErrInvalidOptions)
	}

	if options.SessionLifetime <= 0 {
		return nil, fmt.Errorf("%w: session lifetime must be positive", ErrInvalidOptions)
	}

	h := &Handler{
		store:   store,
		options: options,
		now:     time.Now,
	}

	for _, o := range opts {
		o(h)
	}

	return h, nil
}

// Routes mounts the user API on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Get("/login", h.GetUserLogin)
		r.Get("/logout", h.GetUserLogout)
		r.Get("/{username}", h.withUsername(h.GetUserUsername))

		r.Group(func(r chi.Router) {
			r.Use(h.RequireSession)

			r.Post("/", h.PostUser)
			r.Post("/createWithList", h.PostUserCreateWithList)
			r.Put("/{username}", h.withUsername(h.PutUserUsername))
			r.Delete("/{username}", h.withUsername(h.DeleteUserUsername))
		})
	})
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

// withUsername extracts and validates the username path parameter.
func (h *Handler) withUsername(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var username openapi.Username

		if err := username.UnmarshalText([]byte(chi.URLParam(r, "username"))); err != nil {
			servererrors.HandleError(w, r, servererrors.HTTPBadRequest("invalid username supplied").WithError(err))
			return
		}

		next(w, r, username.Value)
	}
}

// RequireSession rejects requests that do not carry a live session cookie.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			servererrors.HandleError(w, r, servererrors.HTTPUnauthorized("login required").WithError(err))
			return
		}

		session, err := h.store.Session(cookie.Value, h.now())
		if err != nil {
			servererrors.HandleError(w, r, servererrors.HTTPUnauthorized("login required").WithError(err))
			return
		}

		ctx := log.IntoContext(r.Context(), log.FromContext(r.Context()).WithValues("user", session.Username))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func readUser(r *http.Request) (*openapi.User, error) {
	request := &openapi.User{}

	if err := util.ReadJSONBody(r, request); err != nil {
		return nil, servererrors.HTTPBadRequest("invalid user supplied").WithError(err)
	}

	var username openapi.Username

	if err := username.UnmarshalText([]byte(request.Username)); err != nil {
		return nil, servererrors.HTTPBadRequest("invalid username supplied").WithError(err)
	}

	return request, nil
}

func handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		servererrors.HandleError(w, r, servererrors.HTTPNotFound("User not found").WithError(err))
	case errors.Is(err, user.ErrInvalidCredentials):
		servererrors.HandleError(w, r, servererrors.HTTPBadRequest("Invalid username/password supplied").WithError(err))
	default:
		servererrors.HandleError(w, r, err)
	}
}

func (h *Handler) GetUserLogin(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	credentials := openapi.Credentials{
		Username: query.Get("username"),
		Password: query.Get("password"),
	}

	now := h.now()

	session, err := h.store.Login(credentials, now, h.options.SessionLifetime)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}

	log.FromContext(r.Context()).Info("user logged in", "user", session.Username, "expires", session.Expires)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(session.Expires.Sub(now).Seconds()),
		HttpOnly: true,
	})

	w.Header().Set("X-Rate-Limit", strconv.Itoa(h.options.RateLimit))
	w.Header().Set("X-Expires-After", session.Expires.UTC().Format(ExpiresAfterLayout))

	h.setUncacheable(w)
	util.WriteTextResponse(w, r, http.StatusOK, "logged in user session:"+session.ID)
}

func (h *Handler) GetUserLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.store.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	h.setUncacheable(w)
	util.WriteTextResponse(w, r, http.StatusOK, LoggedOutMessage)
}

func (h *Handler) PostUser(w http.ResponseWriter, r *http.Request) {
	request, err := readUser(r)
	if err != nil {
		servererrors.HandleError(w, r, err)
		return
	}

	h.store.Put(*request)

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, request)
}

func (h *Handler) PostUserCreateWithList(w http.ResponseWriter, r *http.Request) {
	request := openapi.Users{}

	if err := util.ReadJSONBody(r, &request); err != nil {
		servererrors.HandleError(w, r, servererrors.HTTPBadRequest("invalid user list supplied").WithError(err))
		return
	}

	for i := range request {
		var username openapi.Username

		if err := username.UnmarshalText([]byte(request[i].Username)); err != nil {
			servererrors.HandleError(w, r, servererrors.HTTPBadRequest("invalid username supplied").WithError(err))
			return
		}
	}

	h.store.Put(request...)

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, request)
}

func (h *Handler) GetUserUsername(w http.ResponseWriter, r *http.Request, username string) {
	result, err := h.store.Get(username)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) PutUserUsername(w http.ResponseWriter, r *http.Request, username string) {
	request, err := readUser(r)
	if err != nil {
		servererrors.HandleError(w, r, err)
		return
	}

	if err := h.store.Update(username, *request); err != nil {
		handleStoreError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, request)
}

func (h *Handler) DeleteUserUsername(w http.ResponseWriter, r *http.Request, username string) {
	if err := h.store.Delete(username); err != nil {
		handleStoreError(w, r, err)
		return
	}

	response := &openapi.ApiResponse{
		Code:    http.StatusOK,
		Type:    "unknown",
		Message: username,
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, response)
}
