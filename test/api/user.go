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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/petstore-qa/petstore-api/pkg/openapi"
)

// loginQuery builds the login query string with form style parameters.
func loginQuery(credentials openapi.Credentials) (url.Values, error) {
	params := []struct {
		name  string
		value string
	}{
		{name: "username", value: credentials.Username},
		{name: "password", value: credentials.Password},
	}

	values := url.Values{}

	for _, param := range params {
		queryFrag, err := runtime.StyleParamWithLocation("form", true, param.name, runtime.ParamLocationQuery, param.value)
		if err != nil {
			return nil, fmt.Errorf("styling %s parameter: %w", param.name, err)
		}

		parsed, err := url.ParseQuery(queryFrag)
		if err != nil {
			return nil, fmt.Errorf("parsing %s parameter: %w", param.name, err)
		}

		for k, v := range parsed {
			for _, v2 := range v {
				values.Add(k, v2)
			}
		}
	}

	return values, nil
}

// Login logs in through the session.  Any HTTP status is returned as an
// exchange, only transport failures are errors.
func (s *Session) Login(ctx context.Context, credentials openapi.Credentials) (*Exchange, error) {
	query, err := loginQuery(credentials)
	if err != nil {
		return nil, err
	}

	path := s.endpoints.Login() + "?" + query.Encode()

	//nolint:bodyclose // response body is closed in doRequest
	exchange, err := s.doRequest(ctx, http.MethodGet, path, nil, 0)
	if err != nil {
		return exchange, fmt.Errorf("logging in as %s: %w", credentials.Username, err)
	}

	return exchange, nil
}

// Logout ends the session's login.
func (s *Session) Logout(ctx context.Context) (*Exchange, error) {
	//nolint:bodyclose // response body is closed in doRequest
	exchange, err := s.doRequest(ctx, http.MethodGet, s.endpoints.Logout(), nil, 0)
	if err != nil {
		return exchange, fmt.Errorf("logging out: %w", err)
	}

	return exchange, nil
}

// CreateUser creates a single user.
func (s *Session) CreateUser(ctx context.Context, user openapi.User) (*Exchange, error) {
	body, err := json.MarshalIndent(user, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling user body: %w", err)
	}

	//nolint:bodyclose // response body is closed in doRequest
	exchange, err := s.doRequest(ctx, http.MethodPost, s.endpoints.CreateUser(), body, 0)
	if err != nil {
		return exchange, fmt.Errorf("creating user: %w", err)
	}

	return exchange, nil
}

// CreateUsersWithList creates a batch of users in one call.
func (s *Session) CreateUsersWithList(ctx context.Context, users openapi.Users) (*Exchange, error) {
	body, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling user list body: %w", err)
	}

	//nolint:bodyclose // response body is closed in doRequest
	exchange, err := s.doRequest(ctx, http.MethodPost, s.endpoints.CreateUsersWithList(), body, 0)
	if err != nil {
		return exchange, fmt.Errorf("creating users with list: %w", err)
	}

	return exchange, nil
}

// GetUser reads a user by name.
func (s *Session) GetUser(ctx context.Context, username string) (*Exchange, error) {
	//nolint:bodyclose // response body is closed in doRequest
	exchange, err := s.doRequest(ctx, http.MethodGet, s.endpoints.GetUser(username), nil, 0)
	if err != nil {
		return exchange, fmt.Errorf("getting user: %w", err)
	}

	return exchange, nil
}

// UpdateUser replaces the named user.
func (s *Session) UpdateUser(ctx context.Context, username string, user openapi.User) (*Exchange, error) {
	body, err := json.MarshalIndent(user, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling user body: %w", err)
	}

	//nolint:bodyclose // response body is closed in doRequest
	exchange, err := s.doRequest(ctx, http.MethodPut, s.endpoints.UpdateUser(username), body, 0)
	if err != nil {
		return exchange, fmt.Errorf("updating user: %w", err)
	}

	return exchange, nil
}

// DeleteUser removes the named user.
func (s *Session) DeleteUser(ctx context.Context, username string) (*Exchange, error) {
	//nolint:bodyclose // response body is closed in doRequest
	exchange, err := s.doRequest(ctx, http.MethodDelete, s.endpoints.DeleteUser(username), nil, 0)
	if err != nil {
		return exchange, fmt.Errorf("deleting user: %w", err)
	}

	return exchange, nil
}
