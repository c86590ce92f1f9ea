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

// The lifecycle uses the fixed fixtures, so each step depends on the one
// before it.  Users are removed before and after the container runs.
var _ = Describe("User Lifecycle", Ordered, func() {
	fixtures := openapi.Users{
		api.User1(),
		api.User2(),
		api.User3(),
	}

	removeFixtures := func() {
		for _, username := range api.Usernames(fixtures) {
			api.DeleteUserQuietly(ctx, config, username)
		}
	}

	BeforeAll(removeFixtures)
	AfterAll(removeFixtures)

	It("should create a user who can then log in", func() {
		session := api.OpenSession(config)
		api.LoginAsDefault(ctx, session, config)

		exchange, err := session.CreateUser(ctx, api.User1())
		Expect(err).NotTo(HaveOccurred())
		api.ExpectStatus(exchange, http.StatusOK)
		api.ExpectJSONBody(exchange, api.User1())

		exchange, err = session.Logout(ctx)
		Expect(err).NotTo(HaveOccurred())
		api.ExpectStatus(exchange, http.StatusOK)

		exchange, err = session.Login(ctx, api.User1().Credentials())
		Expect(err).NotTo(HaveOccurred())
		api.ExpectStatus(exchange, http.StatusOK)
	})

	It("should create users with a list", func() {
		session := api.OpenSession(config)
		api.LoginAsDefault(ctx, session, config)

		users := openapi.Users{api.User2(), api.User3()}

		exchange, err := session.CreateUsersWithList(ctx, users)
		Expect(err).NotTo(HaveOccurred())
		api.ExpectStatus(exchange, http.StatusOK)
		api.ExpectJSONBody(exchange, users)

		api.VerifyUsersRetrievable(ctx, session, config, users)
	})

	It("should get the created user", func() {
		session := api.OpenSession(config)

		exchange, err := session.GetUser(ctx, api.User1().Username)
		Expect(err).NotTo(HaveOccurred())
		api.ExpectStatus(exchange, http.StatusOK)
		api.ExpectJSONBody(exchange, api.User1())
	})

	It("should update the created user", func() {
		session := api.OpenSession(config)
		api.LoginAsDefault(ctx, session, config)

		exchange, err := session.UpdateUser(ctx, api.User1().Username, api.User1Updated())
		Expect(err).NotTo(HaveOccurred())
		api.ExpectStatus(exchange, http.StatusOK)
		api.ExpectJSONBody(exchange, api.User1Updated())

		exchange, err = session.GetUser(ctx, api.User1Updated().Username)
		Expect(err).NotTo(HaveOccurred())
		api.ExpectStatus(exchange, http.StatusOK)
		api.ExpectJSONBody(exchange, api.User1Updated())
	})

	It("should delete every created user", func() {
		session := api.OpenSession(config)
		api.LoginAsDefault(ctx, session, config)

		for _, username := range api.Usernames(fixtures) {
			exchange, err := session.DeleteUser(ctx, username)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusOK)

			exchange, err = session.GetUser(ctx, username)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(exchange, http.StatusNotFound)
		}
	})
})
