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
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	requestBanner  = "===========Request===========>"
	responseBanner = "<===========Response==========="
)

func formatHeaders(header http.Header) string {
	keys := slices.Sorted(maps.Keys(header))

	lines := make([]string, 0, len(keys))

	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", key, strings.Join(header[key], ", ")))
	}

	return strings.Join(lines, "\n")
}

// requestHeaders returns the headers as sent.  The client adds jar cookies
// to the request itself, the transport adds Content-Length without touching
// the header map so it is filled in here.
func requestHeaders(req *http.Request) http.Header {
	header := req.Header.Clone()
	if header == nil {
		header = http.Header{}
	}

	if req.ContentLength > 0 && header.Get("Content-Length") == "" {
		header.Set("Content-Length", strconv.FormatInt(req.ContentLength, 10))
	}

	return header
}

// FormatRequest renders a request as a banner, the request line, headers in
// key order and the body, each separated by a blank line.  It should be
// called after the request is sent, so cookies from the jar are included.
// Hop by hop headers the transport adds, such as Host, are not shown.
func FormatRequest(req *http.Request, body []byte) string {
	return fmt.Sprintf("\n%s\n%s %s\n\n%s\n\n%s\n", requestBanner, req.Method, req.URL.String(), formatHeaders(requestHeaders(req)), string(body))
}

// FormatResponse renders a response as a banner, the status code, headers in
// key order and the body text.
func FormatResponse(resp *http.Response, body []byte) string {
	return fmt.Sprintf("\n%s\nStatus code:%d\n\n%s\n\n%s\n", responseBanner, resp.StatusCode, formatHeaders(resp.Header), string(body))
}
