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


//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petstore-qa/petstore-api/pkg/openapi"
	"github.com/petstore-qa/petstore-api/test/api"
)

// paddedUsername returns a unique username of exactly length characters.
func paddedUsername(length int) string {
	id := api.GenerateTestID()

	return id + strings.Repeat("x", length-len(id))
}

var _ = Describe("Boundary Value Testing", func() {
	BeforeEach(twinOnly)

	Context("When submitting usernames at the length limits", func() {
		It("should accept the maximum length", func() {
			session := api.OpenSession(config)
			api.LoginAsDefault(ctx, session, config)

			user := api.NewUserPayload(api.User1()).WithUsername(paddedUsername(64)).Build()
			api.ScheduleUserCleanup(ctx, config, user)

			exchange, err := session.CreateUser(ctx, user)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusOK)
			api.ExpectJSONBody(exchange, user)
		})

		It("should reject one over the maximum length", func() {
			session := api.OpenSession(config)
			api.LoginAsDefault(ctx, session, config)

			user := api.NewUserPayload(api.User1()).WithUsername(paddedUsername(65)).Build()

			exchange, err := session.CreateUser(ctx, user)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusBadRequest)
		})

		It("should reject an empty username", func() {
			session := api.OpenSession(config)
			api.LoginAsDefault(ctx, session, config)

			user := api.NewUserPayload(api.User1()).WithUsername("").Build()

			exchange, err := session.CreateUser(ctx, user)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusBadRequest)
		})
	})

	Context("When submitting malformed usernames", func() {
		It("should reject whitespace in a created username", func() {
			session := api.OpenSession(config)
			api.LoginAsDefault(ctx, session, config)

			user := api.NewUserPayload(api.User1()).WithUsername("bad name").Build()

			exchange, err := session.CreateUser(ctx, user)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusBadRequest)
		})

		It("should reject a malformed username in the path", func() {
			session := api.OpenSession(config)

			exchange, err := session.GetUser(ctx, "bad name")
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusBadRequest)
		})

		It("should reject a list containing one malformed username", func() {
			session := api.OpenSession(config)
			api.LoginAsDefault(ctx, session, config)

			good := api.NewUserPayload(api.User2()).Build()
			bad := api.NewUserPayload(api.User3()).WithUsername("bad/name").Build()

			exchange, err := session.CreateUsersWithList(ctx, openapi.Users{good, bad})
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusBadRequest)

			exchange, err = session.GetUser(ctx, good.Username)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusNotFound)
		})
	})
})
