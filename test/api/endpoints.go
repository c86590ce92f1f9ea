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
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Session endpoints, the trailing slash is what the service documents.
func (e *Endpoints) Login() string {
	return "/user/login/"
}

func (e *Endpoints) Logout() string {
	return "/user/logout/"
}

// User management endpoints.
func (e *Endpoints) CreateUser() string {
	return "/user"
}

func (e *Endpoints) CreateUsersWithList() string {
	return "/user/createWithList"
}

func (e *Endpoints) GetUser(username string) string {
	return fmt.Sprintf("/user/%s", url.PathEscape(username))
}

func (e *Endpoints) UpdateUser(username string) string {
	return fmt.Sprintf("/user/%s", url.PathEscape(username))
}

func (e *Endpoints) DeleteUser(username string) string {
	return fmt.Sprintf("/user/%s", url.PathEscape(username))
}
