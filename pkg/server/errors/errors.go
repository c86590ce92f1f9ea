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

package errors

import (
	"errors"
	"net/http"

	"github.com/petstore-qa/petstore-api/pkg/openapi"
	"github.com/petstore-qa/petstore-api/pkg/server/util"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Error is an error that maps onto an HTTP response.
type Error struct {
	// status is the HTTP status code.
	status int

	// description is what is reported to the client.
	description string

	// err is the underlying cause, logged but not returned to the client.
	err error
}

func newError(status int, description string) *Error {
	return &Error{
		status:      status,
		description: description,
	}
}

// WithError attaches a cause to the error.
func (e *Error) WithError(err error) *Error {
	e.err = err
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.description + ": " + e.err.Error()
	}

	return e.description
}

// Unwrap allows errors.Is and errors.As to see the cause.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode returns the HTTP status of the error.
func (e *Error) StatusCode() int {
	return e.status
}

func HTTPBadRequest(description string) *Error {
	return newError(http.StatusBadRequest, description)
}

func HTTPUnauthorized(description string) *Error {
	return newError(http.StatusUnauthorized, description)
}

func HTTPNotFound(description string) *Error {
	return newError(http.StatusNotFound, description)
}

func HTTPMethodNotAllowed() *Error {
	return newError(http.StatusMethodNotAllowed, "the requested method was not allowed")
}

func ServerError(description string) *Error {
	return newError(http.StatusInternalServerError, description)
}

// HandleError is the top level error handler that should be called from all
// handlers on error.  Anything that isn't an Error is treated as a server
// error and its detail hidden from the client.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := log.FromContext(r.Context())

	var httpError *Error

	if !errors.As(err, &httpError) {
		log.Error(err, "unhandled error")

		httpError = ServerError("unhandled error")
	}

	if httpError.status >= http.StatusInternalServerError {
		log.Error(httpError, "server error")
	} else {
		log.V(1).Info("client error", "status", httpError.status, "error", httpError.Error())
	}

	response := &openapi.ApiResponse{
		Code:    int32(httpError.status), //nolint:gosec // HTTP status codes fit
		Type:    "error",
		Message: httpError.description,
	}

	util.WriteJSONResponse(w, r, httpError.status, response)
}
