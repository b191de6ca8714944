package routes

import (
	"postsvc/handlers"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, h *handlers.Handler) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)

	post := app.Group("/post")

	// Static routes must come before the :post_id param routes.
	post.Get("/users", h.GetPostsByUserList)
	post.Get("/s3url", h.GetUploadURL)
	post.Get("/generate_id", h.GeneratePostID)

	post.Post("/", h.CreatePost)
	post.Get("/:post_id", h.GetPostByPostID)
	post.Delete("/:post_id", h.DeletePostByPostID)
	post.Get("/:user_id/user", h.GetPostsByUserID)
}
