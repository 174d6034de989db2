package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/communityhub/internal/config"
	"github.com/example/communityhub/internal/handlers"
	"github.com/example/communityhub/internal/mail"
	"github.com/example/communityhub/internal/middleware"
	"github.com/example/communityhub/internal/store"
	"github.com/example/communityhub/internal/utils"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, mailer mail.Mailer) {
	users := store.NewUsers(db)
	posts := store.NewPosts(db)
	history := store.NewHistory(db)

	authHandler := handlers.NewAuthHandler(users, mailer, cfg)
	userHandler := handlers.NewUserHandler(users)
	feedHandler := handlers.NewFeedHandler(posts)
	historyHandler := handlers.NewHistoryHandler(history)

	app.Get("/health", func(c *fiber.Ctx) error {
		return utils.Success(c, fiber.StatusOK, "OK", fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

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
}
