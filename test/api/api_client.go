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

//nolint:err113,revive // dynamic errors and naming conventions acceptable in test code
package api

//go:generate mockgen -source=api_client.go -destination=mock/doer.go -package=mock

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"golang.org/x/net/publicsuffix"

	"github.com/petstore-qa/petstore-api/pkg/constants"
)

// Doer sends HTTP requests, *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session is a client context scoped to a single test.  It owns the cookie
// jar, and therefore any login state, so must be closed when the test ends.
type Session struct {
	baseURL    string
	client     Doer
	httpClient *http.Client
	config     *TestConfig
	endpoints  *Endpoints
	validator  *ResponseValidator
}

// NewSession creates a session with a fresh cookie jar.
func NewSession(config *TestConfig) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	httpClient := &http.Client{
		Jar:     jar,
		Timeout: config.RequestTimeout,
	}

	session, err := newSession(config, httpClient)
	if err != nil {
		return nil, err
	}

	session.httpClient = httpClient

	return session, nil
}

// NewSessionWithDoer creates a session over an arbitrary transport.
func NewSessionWithDoer(config *TestConfig, doer Doer) (*Session, error) {
	return newSession(config, doer)
}

// common constructor logic.
func newSession(config *TestConfig, doer Doer) (*Session, error) {
	session := &Session{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		client:    doer,
		config:    config,
		endpoints: NewEndpoints(),
	}

	if config.ValidateResponses {
		validator, err := NewResponseValidator(config.BaseURL)
		if err != nil {
			return nil, err
		}

		session.validator = validator
	}

	return session, nil
}

// Close releases the session, discarding cookies and idle connections.
// It is safe to call more than once.
func (s *Session) Close() {
	if s.httpClient == nil {
		return
	}

	s.httpClient.CloseIdleConnections()
	s.httpClient.Jar = nil
}

// logError logs a generic error with trace context.
func (s *Session) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	s.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (s *Session) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	s.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (s *Session) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s traceparent=%s\n", method, path, expectedStatus, actualStatus, body, traceParent)
	s.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (s *Session) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// A new trace ID per request means a failure can be found in the server logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doRequest sends a request and reads the whole response.  A zero
// expectedStatus accepts any status, otherwise a mismatch is returned as an
// error along with the exchange.
//
//nolint:cyclop // test code complexity is acceptable
func (s *Session) doRequest(ctx context.Context, method, path string, body []byte, expectedStatus int) (*Exchange, error) {
	fullURL := s.baseURL + path

	var reader io.Reader

	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("User-Agent", constants.VersionString())
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		s.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	exchange := &Exchange{
		Request:     req,
		RequestBody: body,
		Response:    resp,
		Body:        respBody,
		Duration:    duration,
		TraceParent: traceParent,
	}

	if s.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if s.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	if s.config.PrintExchanges || s.config.DebugLogging {
		exchange.Print()
	}

	// A nonconforming response is recorded, not returned, callers assert
	// on it with ExpectValidResponse.
	if s.validator != nil {
		if err := s.validator.Validate(ctx, req, resp, respBody); err != nil {
			s.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "validating response")
			exchange.validation = fmt.Errorf("%w (trace ID: %s)", err, extractTraceID(traceParent))
		}
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		s.logUnexpectedStatus(method, path, expectedStatus, resp.StatusCode, string(respBody), traceParent)
		return exchange, fmt.Errorf("unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", expectedStatus, resp.StatusCode, string(respBody), extractTraceID(traceParent))
	}

	return exchange, nil
}
