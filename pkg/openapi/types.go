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
	"k8s.io/utils/ptr"
)

// User is a pet-store user as it appears on the wire.
type User struct {
	Id         *int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Username   string  `json:"username" yaml:"username"`
	FirstName  *string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Email      *string `json:"email,omitempty" yaml:"email,omitempty"`
	Password   string  `json:"password,omitempty" yaml:"password,omitempty"`
	Phone      *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	UserStatus *int32  `json:"userStatus,omitempty" yaml:"userStatus,omitempty"`
}

// Users is an ordered list of users.
type Users []User

// ApiResponse is the generic status document returned for errors and deletions.
type ApiResponse struct {
	Code    int32  `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Credentials are what is needed to log in.
type Credentials struct {
	Username string
	Password string
}

// Credentials returns the login credentials of the user.
func (u User) Credentials() Credentials {
	return Credentials{
		Username: u.Username,
		Password: u.Password,
	}
}

// DeepCopy returns a copy of the user that shares no memory with the original.
func (u *User) DeepCopy() *User {
	out := *u

	if u.Id != nil {
		out.Id = ptr.To(*u.Id)
	}

	if u.FirstName != nil {
		out.FirstName = ptr.To(*u.FirstName)
	}

	if u.LastName != nil {
		out.LastName = ptr.To(*u.LastName)
	}

	if u.Email != nil {
		out.Email = ptr.To(*u.Email)
	}

	if u.Phone != nil {
		out.Phone = ptr.To(*u.Phone)
	}

	if u.UserStatus != nil {
		out.UserStatus = ptr.To(*u.UserStatus)
	}

	return &out
}
