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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/onsi/ginkgo/v2"
)

// ErrNoSessionID is raised when a login response carries no session ID.
var ErrNoSessionID = errors.New("no session id in response")

var sessionIDRegex = regexp.MustCompile(`(?i)session:\s*(\d+)`)

// Exchange is a single request and the response it provoked.  The bodies
// are captured in full since the underlying readers are consumed.
type Exchange struct {
	Request     *http.Request
	RequestBody []byte
	Response    *http.Response
	Body        []byte
	Duration    time.Duration
	TraceParent string

	// validation is the result of checking the response against the API
	// document, nil when it conforms or validation is disabled.
	validation error
}

// StatusCode returns the HTTP status of the response.
func (e *Exchange) StatusCode() int {
	return e.Response.StatusCode
}

// Header returns the first value of a response header.
func (e *Exchange) Header(key string) string {
	return e.Response.Header.Get(key)
}

// ValidationError reports whether the response conformed to the API
// document.  It is always nil when response validation is disabled.
func (e *Exchange) ValidationError() error {
	return e.validation
}

// Text returns the response body as a string.
func (e *Exchange) Text() string {
	return string(e.Body)
}

// DecodeJSON unmarshals the response body.
func (e *Exchange) DecodeJSON(v any) error {
	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("unmarshaling response body: %w", err)
	}

	return nil
}

// SessionID extracts the session ID handed out by a successful login, the
// digits following the "session:" marker in the body.
func (e *Exchange) SessionID() (string, error) {
	match := sessionIDRegex.FindSubmatch(e.Body)
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrNoSessionID, string(e.Body))
	}

	return string(match[1]), nil
}

// String renders the request and response for humans.
func (e *Exchange) String() string {
	return FormatRequest(e.Request, e.RequestBody) + FormatResponse(e.Response, e.Body)
}

// Print writes the exchange to the Ginkgo writer, which is only shown for
// failed or verbose runs.
func (e *Exchange) Print() {
	ginkgo.GinkgoWriter.Print(e.String())
}
