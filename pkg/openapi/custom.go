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
	"regexp"
)

var ErrInvalidUsername = errors.New("invalid username: must be 1-64 characters from the set [A-Za-z0-9._@-]")

var usernameValidationRegex = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,64}$`)

type Username struct {
	Value string
}

func (n *Username) UnmarshalText(text []byte) error {
	if !usernameValidationRegex.Match(text) {
		return ErrInvalidUsername
	}

	*n = Username{
		Value: string(text),
	}

	return nil
}
