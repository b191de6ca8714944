// Package handlers maps the HTTP surface onto the posts repository and the
// object store. Handlers are pure translation: repository errors are logged
// and flattened into the legacy empty/zero responses, so clients only ever
// see a 5xx when upload-URL issuance fails.
package handlers

import (
	"log/slog"
	"strings"

	"postsvc/models"
	"postsvc/repository"
	"postsvc/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HTTPDefaultWindowHours applies when the aggregation endpoint is called
// without a window parameter. Distinct from the repository default on purpose.
const HTTPDefaultWindowHours = 72

// Handler holds the collaborators the HTTP surface translates to.
type Handler struct {
	posts repository.PostRepository
	store storage.ObjectStore
}

func New(posts repository.PostRepository, store storage.ObjectStore) *Handler {
	return &Handler{posts: posts, store: store}
}

// Root serves the liveness banner.
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"Info": "Social Media Post MicroService",
	})
}

// Health reports instance health.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"msg": "Instance is healthy!",
	})
}

// GetPostByPostID fetches a single post by id. Misses and store failures both
// come back as empty data.
func (h *Handler) GetPostByPostID(c *fiber.Ctx) error {
	postID := c.Params("post_id")

	posts, err := h.posts.GetByPostID(c.UserContext(), postID)
	if err != nil {
		slog.Error("failed to retrieve post record", "post_id", postID, "error", err)
	}

	return c.JSON(fiber.Map{"data": emptyIfNil(posts)})
}

// GetPostsByUserID fetches all of a user's posts, newest first.
func (h *Handler) GetPostsByUserID(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	posts, err := h.posts.GetByUserID(c.UserContext(), userID)
	if err != nil {
		slog.Error("failed to retrieve post records", "user_id", userID, "error", err)
	}

	return c.JSON(fiber.Map{"data": emptyIfNil(posts)})
}

// GetPostsByUserList aggregates the recent posts of a comma-separated list of
// users. An absent user_list yields an empty object, not an error.
func (h *Handler) GetPostsByUserList(c *fiber.Ctx) error {
	if !c.Context().QueryArgs().Has("user_list") {
		return c.JSON(fiber.Map{})
	}

	userIDs := strings.Split(c.Query("user_list"), ",")
	window := c.QueryInt("window", HTTPDefaultWindowHours)

	posts, err := h.posts.GetByUserListWithinWindow(c.UserContext(), userIDs, window)
	if err != nil {
		slog.Error("failed to aggregate user posts", "user_count", len(userIDs), "error", err)
	}

	return c.JSON(fiber.Map{"data": emptyIfNil(posts)})
}

// CreatePost stores a new post. The server stamps time_stamp; any value in
// the body is ignored.
func (h *Handler) CreatePost(c *fiber.Ctx) error {
	post := new(models.Post)
	if err := c.BodyParser(post); err != nil {
		slog.Warn("rejected unparseable post body", "error", err)
		return c.JSON(fiber.Map{"msg": "Failed to upload data."})
	}

	n, err := h.posts.Create(c.UserContext(), post)
	if err != nil {
		slog.Error("failed to upload post record", "post_id", post.PostID, "error", err)
	}

	if n > 0 {
		return c.JSON(fiber.Map{"msg": "successfully uploaded data."})
	}
	return c.JSON(fiber.Map{"msg": "Failed to upload data."})
}

// DeletePostByPostID deletes a post and cascades to its stored photo.
func (h *Handler) DeletePostByPostID(c *fiber.Ctx) error {
	postID := c.Params("post_id")

	n, err := h.posts.DeleteByPostID(c.UserContext(), postID)
	if err != nil {
		slog.Error("failed to delete post record", "post_id", postID, "error", err)
	}

	if n > 0 {
		return c.JSON(fiber.Map{"msg": "successfully deleted post!"})
	}
	return c.JSON(fiber.Map{"msg": "failed to delete post."})
}

// GetUploadURL issues a pre-signed PUT URL for a photo upload. This is the
// one path where a collaborator failure surfaces as a 5xx.
func (h *Handler) GetUploadURL(c *fiber.Ctx) error {
	objectName := c.Query("object_name")

	url, err := h.store.PresignUploadURL(c.UserContext(), objectName, storage.DefaultPresignTTL)
	if err != nil {
		slog.Error("failed to issue upload url", "object_name", objectName, "error", err)
		return c.Status(fiber.StatusBadGateway).SendString("Failed to get a s3 put url.")
	}

	return c.JSON(fiber.Map{"s3Url": url})
}

// GeneratePostID hands out a fresh post identifier.
func (h *Handler) GeneratePostID(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"id": uuid.NewString()})
}

func emptyIfNil(posts []models.Post) []models.Post {
	if posts == nil {
		return []models.Post{}
	}
	return posts
}
