package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/communityhub/internal/models"
)

func TestGetProfile(t *testing.T) {
	users := newFakeUserStore()
	users.add(models.User{
		Username:     "alice",
		FName:        "Alice",
		LName:        "Smith",
		Email:        "a@x.com",
		PhoneNumber:  "+1000",
		PasswordHash: "$2a$10$notarealhash",
		Verified:     true,
	})
	app := newTestApp(users, &fakeMailer{}, &fakePostStore{}, newFakeHistoryStore())

	resp, envelope := doRequest(t, app, "GET", "/user/get-user-profile", tokenFor(t, "alice"), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	profile := dataAsMap(t, envelope.Data)
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, "Alice", profile["fName"])
	assert.Equal(t, "a@x.com", profile["email"])

	// The password hash must never reach the client.
	for key := range profile {
		assert.NotContains(t, key, "assword")
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	users := newFakeUserStore()
	app := newTestApp(users, &fakeMailer{}, &fakePostStore{}, newFakeHistoryStore())

	// Token is valid but the record behind it is gone.
	resp, _ := doRequest(t, app, "GET", "/user/get-user-profile", tokenFor(t, "ghost"), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetProfileUnauthenticated(t *testing.T) {
	users := newFakeUserStore()
	app := newTestApp(users, &fakeMailer{}, &fakePostStore{}, newFakeHistoryStore())

	resp, _ := doRequest(t, app, "GET", "/user/get-user-profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestListUnverified(t *testing.T) {
	users := newFakeUserStore()
	addAdmin(users)
	otp := "123456"
	users.add(models.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash", VerificationToken: &otp})
	users.add(models.User{Username: "bob", Email: "b@x.com", PasswordHash: "hash", Verified: true})
	app := newTestApp(users, &fakeMailer{}, &fakePostStore{}, newFakeHistoryStore())

	resp, envelope := doRequest(t, app, "GET", "/user/unverified-users", tokenFor(t, "admin"), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	list, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)

	entry := list[0].(map[string]interface{})
	assert.Equal(t, "alice", entry["username"])
	for key := range entry {
		assert.NotContains(t, key, "assword")
	}
}

func TestListUnverifiedRequiresAdmin(t *testing.T) {
	users := newFakeUserStore()
	users.add(models.User{Username: "member", Email: "m@x.com", Verified: true})
	app := newTestApp(users, &fakeMailer{}, &fakePostStore{}, newFakeHistoryStore())

	resp, _ := doRequest(t, app, "GET", "/user/unverified-users", tokenFor(t, "member"), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
