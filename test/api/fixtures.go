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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/petstore-qa/petstore-api/pkg/openapi"

	"k8s.io/utils/ptr"
)

const (
	// ExpiresAfterLayout is the format of the X-Expires-After login header, in UTC.
	ExpiresAfterLayout = "Mon Jan 02 15:04:05 GMT 2006"

	// RateLimit is the advertised X-Rate-Limit on login.
	RateLimit = "5000"

	// SessionLifetime is how long after login a session expires.
	SessionLifetime = time.Hour

	// LoggedOutMessage appears in the body of a logout response.
	LoggedOutMessage = "User logged out"
)

// DefaultUser is the pre-existing account used to authorize mutations.
func DefaultUser() openapi.User {
	return openapi.User{
		Id:         ptr.To[int64](1),
		Username:   "theUser",
		FirstName:  ptr.To("John"),
		LastName:   ptr.To("James"),
		Email:      ptr.To("john@email.com"),
		Password:   "12345",
		Phone:      ptr.To("12345"),
		UserStatus: ptr.To[int32](1),
	}
}

func User1() openapi.User {
	return openapi.User{
		Id:         ptr.To[int64](1001),
		Username:   "qa_user_one",
		FirstName:  ptr.To("Alice"),
		LastName:   ptr.To("Anderson"),
		Email:      ptr.To("alice.anderson@example.com"),
		Password:   "alice-pass-1",
		Phone:      ptr.To("+1-202-555-0101"),
		UserStatus: ptr.To[int32](1),
	}
}

func User2() openapi.User {
	return openapi.User{
		Id:         ptr.To[int64](1002),
		Username:   "qa_user_two",
		FirstName:  ptr.To("Bob"),
		LastName:   ptr.To("Brown"),
		Email:      ptr.To("bob.brown@example.com"),
		Password:   "bob-pass-2",
		Phone:      ptr.To("+1-202-555-0102"),
		UserStatus: ptr.To[int32](1),
	}
}

func User3() openapi.User {
	return openapi.User{
		Id:         ptr.To[int64](1003),
		Username:   "qa_user_three",
		FirstName:  ptr.To("Carol"),
		LastName:   ptr.To("Clark"),
		Email:      ptr.To("carol.clark@example.com"),
		Password:   "carol-pass-3",
		Phone:      ptr.To("+1-202-555-0103"),
		UserStatus: ptr.To[int32](0),
	}
}

// User1Updated is User1 with a changed name and contact details.
func User1Updated() openapi.User {
	user := User1()
	user.FirstName = ptr.To("Alicia")
	user.LastName = ptr.To("Anderson-Smith")
	user.Email = ptr.To("alicia.smith@example.com")

	return user
}

// DefaultCredentials returns the configured default login, falling back to
// DefaultUser.
func (c *TestConfig) DefaultCredentials() openapi.Credentials {
	if c.DefaultUsername != "" {
		return openapi.Credentials{
			Username: c.DefaultUsername,
			Password: c.DefaultPassword,
		}
	}

	return DefaultUser().Credentials()
}

// OpenSession creates a session that is closed when the current node ends.
func OpenSession(config *TestConfig) *Session {
	session, err := NewSession(config)
	Expect(err).NotTo(HaveOccurred())

	DeferCleanup(session.Close)

	return session
}

// ExpectStatus asserts on the response status, printing the exchange on mismatch.
func ExpectStatus(exchange *Exchange, status int) {
	Expect(exchange).NotTo(BeNil())
	Expect(exchange.StatusCode()).To(Equal(status), "unexpected status for exchange:%s", exchange)
}

// ExpectValidResponse asserts the response conformed to the API document,
// it passes trivially when response validation is disabled.
func ExpectValidResponse(exchange *Exchange) {
	Expect(exchange).NotTo(BeNil())
	Expect(exchange.ValidationError()).NotTo(HaveOccurred(), "nonconforming exchange:%s", exchange)
}

// ExpectJSONBody asserts the response body is structurally equal to expected.
func ExpectJSONBody(exchange *Exchange, expected any) {
	data, err := json.Marshal(expected)
	Expect(err).NotTo(HaveOccurred())
	Expect(exchange.Body).To(MatchJSON(data))
}

// ExpectExpiresAfter asserts the X-Expires-After value is one session
// lifetime after some instant between earliest and latest.  The header has
// second precision.
func ExpectExpiresAfter(value string, earliest, latest time.Time) {
	expires, err := time.Parse(ExpiresAfterLayout, value)
	Expect(err).NotTo(HaveOccurred(), "X-Expires-After %q not in layout %q", value, ExpiresAfterLayout)

	lower := earliest.UTC().Add(SessionLifetime).Truncate(time.Second)
	upper := latest.UTC().Add(SessionLifetime)

	Expect(expires).To(BeTemporally(">=", lower))
	Expect(expires).To(BeTemporally("<=", upper))
	Expect(value).To(Equal(expires.Format(ExpiresAfterLayout)))
}

// LoginAsDefault logs the session in with the default credentials.
func LoginAsDefault(ctx context.Context, session *Session, config *TestConfig) {
	exchange, err := session.Login(ctx, config.DefaultCredentials())
	Expect(err).NotTo(HaveOccurred())
	ExpectStatus(exchange, http.StatusOK)
}

// DeleteUserQuietly removes a user from its own session, for use in cleanup
// where the test's session may already be logged out.  Failures are logged.
func DeleteUserQuietly(ctx context.Context, config *TestConfig, username string) {
	session, err := NewSession(config)
	if err != nil {
		GinkgoWriter.Printf("Warning: Failed to open cleanup session: %v\n", err)
		return
	}

	defer session.Close()

	if _, err := session.Login(ctx, config.DefaultCredentials()); err != nil {
		GinkgoWriter.Printf("Warning: Failed to log in for cleanup: %v\n", err)
		return
	}

	exchange, err := session.DeleteUser(ctx, username)

	switch {
	case err != nil:
		GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", username, err)
	case exchange.StatusCode() != http.StatusOK && exchange.StatusCode() != http.StatusNotFound:
		GinkgoWriter.Printf("Warning: Failed to delete user %s: status %d\n", username, exchange.StatusCode())
	default:
		GinkgoWriter.Printf("Successfully deleted user: %s\n", username)
	}
}

// CreateUserWithCleanup creates users out of band with the default account,
// and schedules their deletion whether the test passes or fails.
func CreateUserWithCleanup(ctx context.Context, config *TestConfig, users ...openapi.User) {
	session, err := NewSession(config)
	Expect(err).NotTo(HaveOccurred())

	defer session.Close()

	LoginAsDefault(ctx, session, config)

	for i := range users {
		username := users[i].Username

		exchange, err := session.CreateUser(ctx, users[i])
		Expect(err).NotTo(HaveOccurred())
		ExpectStatus(exchange, http.StatusOK)

		GinkgoWriter.Printf("Created user: %s\n", username)

		DeferCleanup(func() {
			DeleteUserQuietly(ctx, config, username)
		})
	}
}

// ScheduleUserCleanup deletes users when the current node ends, for users a
// test creates itself.
func ScheduleUserCleanup(ctx context.Context, config *TestConfig, users ...openapi.User) {
	for i := range users {
		username := users[i].Username

		DeferCleanup(func() {
			DeleteUserQuietly(ctx, config, username)
		})
	}
}

// MissingUsernames returns the expected usernames absent from found, sorted.
func MissingUsernames(expected, found []string) []string {
	var missing []string

	for username := range set.New[string](expected...).Difference(set.New[string](found...)).All() {
		missing = append(missing, username)
	}

	slices.Sort(missing)

	return missing
}

// VerifyUsersRetrievable checks every user can be read back unchanged.  The
// remote service may take a moment to make new users visible, so reads are
// retried until none are missing.
func VerifyUsersRetrievable(ctx context.Context, session *Session, config *TestConfig, users openapi.Users) {
	exchanges := map[string]*Exchange{}

	Eventually(func() []string {
		var found []string

		for i := range users {
			exchange, err := session.GetUser(ctx, users[i].Username)
			if err != nil || exchange.StatusCode() != http.StatusOK {
				continue
			}

			var user openapi.User

			if err := exchange.DecodeJSON(&user); err != nil {
				continue
			}

			found = append(found, user.Username)
			exchanges[user.Username] = exchange
		}

		return MissingUsernames(Usernames(users), found)
	}).WithTimeout(config.TestTimeout).WithPolling(time.Second).Should(BeEmpty())

	for i := range users {
		ExpectJSONBody(exchanges[users[i].Username], users[i])
	}
}

// Usernames extracts the names of users.
func Usernames(users openapi.Users) []string {
	names := make([]string, len(users))

	for i := range users {
		names[i] = users[i].Username
	}

	return names
}
