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

var _ = Describe("User Management", func() {
	Context("When creating a user", func() {
		Describe("Given a logged in session", func() {
			It("should echo the user and allow them to log in", func() {
				session := api.OpenSession(config)
				api.LoginAsDefault(ctx, session, config)

				user := api.NewUserPayload(api.User1()).Build()
				api.ScheduleUserCleanup(ctx, config, user)

				exchange, err := session.CreateUser(ctx, user)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)
				api.ExpectValidResponse(exchange)
				api.ExpectJSONBody(exchange, user)

				exchange, err = session.Logout(ctx)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)

				exchange, err = session.Login(ctx, user.Credentials())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)
			})

			It("should accept a user with only the required fields", func() {
				session := api.OpenSession(config)
				api.LoginAsDefault(ctx, session, config)

				user := openapi.User{
					Username: api.GenerateTestID(),
					Password: "secret",
				}
				api.ScheduleUserCleanup(ctx, config, user)

				exchange, err := session.CreateUser(ctx, user)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)

				var created openapi.User

				Expect(exchange.DecodeJSON(&created)).To(Succeed())
				Expect(created.Username).To(Equal(user.Username))
			})
		})

		Describe("Given a session that never logged in", func() {
			It("should reject the creation", func() {
				twinOnly()

				session := api.OpenSession(config)

				user := api.NewUserPayload(api.User2()).Build()

				exchange, err := session.CreateUser(ctx, user)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusUnauthorized)

				exchange, err = session.GetUser(ctx, user.Username)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusNotFound)
			})
		})
	})

	Context("When creating users with a list", func() {
		Describe("Given a logged in session", func() {
			It("should echo the list and make every user usable", func() {
				session := api.OpenSession(config)
				api.LoginAsDefault(ctx, session, config)

				users := openapi.Users{
					api.NewUserPayload(api.User1()).Build(),
					api.NewUserPayload(api.User2()).Build(),
					api.NewUserPayload(api.User3()).Build(),
				}
				api.ScheduleUserCleanup(ctx, config, users...)

				exchange, err := session.CreateUsersWithList(ctx, users)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)
				api.ExpectJSONBody(exchange, users)

				api.VerifyUsersRetrievable(ctx, session, config, users)

				for i := range users {
					login := api.OpenSession(config)

					exchange, err := login.Login(ctx, users[i].Credentials())
					Expect(err).NotTo(HaveOccurred())
					api.ExpectStatus(exchange, http.StatusOK)
				}
			})
		})
	})

	Context("When reading a user", func() {
		Describe("Given the user exists", func() {
			It("should return the user as created", func() {
				user := api.NewUserPayload(api.User2()).Build()
				api.CreateUserWithCleanup(ctx, config, user)

				session := api.OpenSession(config)

				exchange, err := session.GetUser(ctx, user.Username)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)
				api.ExpectJSONBody(exchange, user)
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return not found", func() {
				session := api.OpenSession(config)

				exchange, err := session.GetUser(ctx, api.GenerateTestID())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusNotFound)
				api.ExpectValidResponse(exchange)
			})
		})
	})

	Context("When updating a user", func() {
		Describe("Given the user exists", func() {
			It("should echo and persist the update", func() {
				user := api.NewUserPayload(api.User1()).Build()
				api.CreateUserWithCleanup(ctx, config, user)

				updated := api.User1Updated()
				updated.Username = user.Username

				session := api.OpenSession(config)
				api.LoginAsDefault(ctx, session, config)

				exchange, err := session.UpdateUser(ctx, user.Username, updated)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)
				api.ExpectJSONBody(exchange, updated)

				exchange, err = session.GetUser(ctx, user.Username)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)
				api.ExpectJSONBody(exchange, updated)
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return not found", func() {
				twinOnly()

				session := api.OpenSession(config)
				api.LoginAsDefault(ctx, session, config)

				user := api.NewUserPayload(api.User1Updated()).Build()

				exchange, err := session.UpdateUser(ctx, user.Username, user)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusNotFound)
			})
		})
	})

	Context("When deleting a user", func() {
		Describe("Given the user exists", func() {
			It("should remove the user", func() {
				user := api.NewUserPayload(api.User3()).Build()
				api.CreateUserWithCleanup(ctx, config, user)

				session := api.OpenSession(config)
				api.LoginAsDefault(ctx, session, config)

				exchange, err := session.DeleteUser(ctx, user.Username)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusOK)

				exchange, err = session.GetUser(ctx, user.Username)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusNotFound)
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return not found", func() {
				session := api.OpenSession(config)
				api.LoginAsDefault(ctx, session, config)

				exchange, err := session.DeleteUser(ctx, api.GenerateTestID())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(exchange, http.StatusNotFound)
			})
		})
	})
})
