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

package util

import (
	"encoding/json"
	"fmt"
	"net/http"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// WriteJSONResponse is a generic wrapper around returning a JSON response.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, code int, response any) {
	log := log.FromContext(r.Context())

	body, err := json.Marshal(response)
	if err != nil {
		log.Error(err, "unable to marshal response body")

		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		log.Error(err, "unable to write response body")
	}
}

// WriteTextResponse returns a plain text response.
func WriteTextResponse(w http.ResponseWriter, r *http.Request, code int, response string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(code)

	if _, err := w.Write([]byte(response)); err != nil {
		log.FromContext(r.Context()).Error(err, "unable to write response body")
	}
}

// ReadJSONBody reads and decodes a JSON request body.
func ReadJSONBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}

	return nil
}
