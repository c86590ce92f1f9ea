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

// Package api provides integration test utilities for the pet-store user API.
//
// # Separate Client Implementation
//
// This package intentionally maintains a hand written HTTP client (Session)
// rather than a generated one.  Any legitimate change to the API contract
// must have a compensating change here, which makes API evolution explicit
// and reviewable.
//
// The client is tailored for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Every call returns the raw Exchange so tests assert on status,
//     headers and bodies directly
//   - Optional validation of every response against the embedded OpenAPI
//     document
//   - Request/response pretty printing to the Ginkgo writer
//
// # Sessions
//
// A Session owns a cookie jar, and therefore the login state held by the
// server.  Each test opens its own with OpenSession, which closes it when
// the test ends whether it passed or not.
//
// # Isolation
//
// The API under test persists users between calls.  Tests create users with
// unique names via NewUserPayload and delete them with DeferCleanup, so no
// test depends on another having run.
package api
