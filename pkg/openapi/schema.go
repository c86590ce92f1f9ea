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
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed server.spec.yaml
var specification []byte

//nolint:gochecknoglobals
var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document describing the
// user endpoints.  The document is loaded once and shared, callers must not
// modify it.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(specification)
		if err != nil {
			swaggerErr = fmt.Errorf("loading openapi schema: %w", err)
			return
		}

		if err := doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("validating openapi schema: %w", err)
			return
		}

		swagger = doc
	})

	return swagger, swaggerErr
}

// Specification returns the raw embedded OpenAPI document.
func Specification() []byte {
	return specification
}
