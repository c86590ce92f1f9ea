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

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/petstore-qa/petstore-api/pkg/openapi"
)

// ErrResponseValidation is raised when a response doesn't conform to the
// OpenAPI document.
var ErrResponseValidation = errors.New("response failed schema validation")

// ResponseValidator checks responses against the published API contract.
type ResponseValidator struct {
	router   routers.Router
	basePath string
}

// NewResponseValidator creates a validator for an API rooted at baseURL,
// any path component of the base URL is stripped before route lookup.
func NewResponseValidator(baseURL string) (*ResponseValidator, error) {
	doc, err := openapi.GetSwagger()
	if err != nil {
		return nil, err
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating openapi router: %w", err)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return &ResponseValidator{
		router:   router,
		basePath: strings.TrimSuffix(u.Path, "/"),
	}, nil
}

// Validate checks the status, headers and body of a response.
func (v *ResponseValidator) Validate(ctx context.Context, req *http.Request, resp *http.Response, body []byte) error {
	// Route on the escaped path so an escaped "/" in a path parameter stays
	// inside its segment.
	lookup := req.Clone(ctx)
	lookup.URL.Path = strings.TrimSuffix(strings.TrimPrefix(req.URL.EscapedPath(), v.basePath), "/")
	lookup.URL.RawPath = ""

	if lookup.URL.Path == "" {
		lookup.URL.Path = "/"
	}

	route, params, err := v.router.FindRoute(lookup)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrResponseValidation, req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    lookup,
			PathParams: params,
			Route:      route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}

	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrResponseValidation, req.Method, req.URL.Path, err)
	}

	return nil
}
