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

package openapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	servererrors "github.com/petstore-qa/petstore-api/pkg/server/errors"
)

// Validator checks requests against the OpenAPI schema before they reach
// any handler.
type Validator struct {
	router routers.Router
}

// NewValidator returns a request validator for the given document.
func NewValidator(doc *openapi3.T) (*Validator, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return &Validator{
		router: router,
	}, nil
}

// findRoute looks up the operation, tolerating a trailing slash as the real
// service does.
func (v *Validator) findRoute(r *http.Request) (*routers.Route, map[string]string, error) {
	lookup := r.Clone(r.Context())

	if lookup.URL.Path != "/" {
		lookup.URL.Path = strings.TrimSuffix(lookup.URL.Path, "/")
	}

	return v.router.FindRoute(lookup)
}

func isMethodNotAllowed(err error) bool {
	var routeErr *routers.RouteError

	if errors.As(err, &routeErr) {
		return routeErr.Reason == routers.ErrMethodNotAllowed.Error()
	}

	return false
}

// Middleware performs request validation.
func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, params, err := v.findRoute(r)
		if err != nil {
			if isMethodNotAllowed(err) {
				servererrors.HandleError(w, r, servererrors.HTTPMethodNotAllowed())
				return
			}

			servererrors.HandleError(w, r, servererrors.HTTPNotFound("resource not found").WithError(err))

			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}

		// NOTE: validation consumes the body and replaces it on r.
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			servererrors.HandleError(w, r, servererrors.HTTPBadRequest("request invalid").WithError(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}
