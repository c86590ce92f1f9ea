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
	"strings"

	"github.com/google/uuid"

	"github.com/petstore-qa/petstore-api/pkg/openapi"

	"k8s.io/utils/ptr"
)

func generateRandomName(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	return fmt.Sprintf("%s-%s", prefix, id[:12])
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// UserPayloadBuilder builds user payloads for testing.
type UserPayloadBuilder struct {
	payload *openapi.User
}

// NewUserPayload creates a user payload with a unique username, based on
// the given fixture.
func NewUserPayload(base openapi.User) *UserPayloadBuilder {
	payload := base.DeepCopy()
	payload.Username = generateRandomName(base.Username)

	return &UserPayloadBuilder{
		payload: payload,
	}
}

// WithUsername sets the username.
func (b *UserPayloadBuilder) WithUsername(username string) *UserPayloadBuilder {
	b.payload.Username = username
	return b
}

// WithPassword sets the password.
func (b *UserPayloadBuilder) WithPassword(password string) *UserPayloadBuilder {
	b.payload.Password = password
	return b
}

// WithFirstName sets the first name (pass empty string to omit).
func (b *UserPayloadBuilder) WithFirstName(name string) *UserPayloadBuilder {
	b.payload.FirstName = optional(name)
	return b
}

// WithLastName sets the last name (pass empty string to omit).
func (b *UserPayloadBuilder) WithLastName(name string) *UserPayloadBuilder {
	b.payload.LastName = optional(name)
	return b
}

// WithEmail sets the email address (pass empty string to omit).
func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.payload.Email = optional(email)
	return b
}

// WithUserStatus sets the user status.
func (b *UserPayloadBuilder) WithUserStatus(status int32) *UserPayloadBuilder {
	b.payload.UserStatus = ptr.To(status)
	return b
}

// Build returns the completed user payload.
func (b *UserPayloadBuilder) Build() openapi.User {
	return *b.payload.DeepCopy()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return ptr.To(s)
}
