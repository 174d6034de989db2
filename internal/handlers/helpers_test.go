package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/example/communityhub/internal/config"
	"github.com/example/communityhub/internal/mail"
	"github.com/example/communityhub/internal/middleware"
	"github.com/example/communityhub/internal/store"
	"github.com/example/communityhub/internal/utils"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{JWTSecret: testSecret}
}

// newTestApp wires the full route surface over fakes, mirroring routes.Register.
func newTestApp(users store.UserStore, mailer mail.Mailer, posts store.PostStore, history store.HistoryStore) *fiber.App {
	cfg := testConfig()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	authHandler := NewAuthHandler(users, mailer, cfg)
	userHandler := NewUserHandler(users)
	feedHandler := NewFeedHandler(posts)
	historyHandler := NewHistoryHandler(history)

	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verifyUsers", middleware.Auth(cfg), middleware.RequireAdmin(users), authHandler.VerifyUsers)

	user := app.Group("/user", middleware.Auth(cfg))
	user.Get("/get-user-profile", userHandler.GetProfile)
	user.Get("/unverified-users", middleware.RequireAdmin(users), userHandler.ListUnverified)

	feed := app.Group("/feed", middleware.Auth(cfg))
	feed.Post("/posts", feedHandler.CreatePost)
	feed.Get("/posts", feedHandler.ListPosts)
	feed.Put("/posts/:postId", feedHandler.UpdatePost)
	feed.Delete("/posts/:postId", feedHandler.DeletePost)
	feed.Post("/posts/:postId/like", feedHandler.LikePost)
	feed.Post("/posts/:postId/comment", feedHandler.CommentPost)

	hist := app.Group("/history")
	hist.Post("/set-data", historyHandler.SetPage)
	hist.Get("/:slug", historyHandler.GetPage)

	return app
}

func tokenFor(t *testing.T, username string) string {
	t.Helper()
	token, err := utils.GenerateToken(testSecret, username)
	require.NoError(t, err)
	return token
}

// doRequest sends a JSON request through the app and decodes the envelope.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, utils.Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope utils.Envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))

	return resp, envelope
}

// dataAsMap re-decodes the envelope data field into a map.
func dataAsMap(t *testing.T, data interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
