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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petstore-qa/petstore-api/pkg/openapi"
	"github.com/petstore-qa/petstore-api/test/api"
)

var _ = Describe("Security and Authentication", func() {
	BeforeEach(twinOnly)

	Context("When mutating users without a session", func() {
		Describe("Given an existing user", func() {
			var username string

			BeforeEach(func() {
				user := api.NewUserPayload(api.User1()).Build()
				api.CreateUserWithCleanup(ctx, config, user)

				username = user.Username
			})

			It("should reject updates", func() {
				session := api.OpenSession(config)

				exchange, err := session.UpdateUser(ctx, username, api.User1Updated())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusUnauthorized)
			})

			It("should reject deletion", func() {
				session := api.OpenSession(config)

				exchange, err := session.DeleteUser(ctx, username)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusUnauthorized)

				exchange, err = session.GetUser(ctx, username)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)
			})

			It("should reject batch creation", func() {
				session := api.OpenSession(config)

				exchange, err := session.CreateUsersWithList(ctx, openapi.Users{api.NewUserPayload(api.User3()).Build()})
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusUnauthorized)
			})
		})
	})

	Context("When sessions are isolated", func() {
		Describe("Given one session logged in and another not", func() {
			It("should only authorize the logged in session", func() {
				authorized := api.OpenSession(config)
				api.LoginAsDefault(ctx, authorized, config)

				anonymous := api.OpenSession(config)

				user := api.NewUserPayload(api.User2()).Build()
				api.ScheduleUserCleanup(ctx, config, user)

				exchange, err := anonymous.CreateUser(ctx, user)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusUnauthorized)

				exchange, err = authorized.CreateUser(ctx, user)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)
			})
		})
	})

	Context("When submitting hostile input", func() {
		Describe("Given path traversal in a username", func() {
			It("should not resolve outside the user collection", func() {
				session := api.OpenSession(config)

				exchange, err := session.GetUser(ctx, "../user/login")
				Expect(err).NotTo(HaveOccurred())
				Expect(exchange.StatusCode()).To(BeElementOf(http.StatusBadRequest, http.StatusNotFound))
				api.ExpectValidResponse(exchange)
			})
		})
	})
})
