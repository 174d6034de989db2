package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/example/communityhub/internal/middleware"
	"github.com/example/communityhub/internal/models"
	"github.com/example/communityhub/internal/store"
	"github.com/example/communityhub/internal/utils"
)

// FeedHandler serves the newsfeed endpoints. Every route runs behind the auth
// middleware; mutations of existing posts are owner-only.
type FeedHandler struct {
	posts store.PostStore
}

// NewFeedHandler constructs a FeedHandler.
func NewFeedHandler(posts store.PostStore) *FeedHandler {
	return &FeedHandler{posts: posts}
}

type createPostRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

// CreatePost publishes a new post owned by the authenticated user.
func (h *FeedHandler) CreatePost(c *fiber.Ctx) error {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "access denied, no token provided")
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	post := models.Post{
		Username: username,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Likes:    pq.StringArray{},
		Comments: []models.Comment{},
	}

	if err := h.posts.Create(&post); err != nil {
		return err
	}

	return utils.Success(c, fiber.StatusCreated, "Post created", post)
}

// ListPosts returns the full feed, newest first.
func (h *FeedHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.posts.List()
	if err != nil {
		return err
	}

	return utils.Success(c, fiber.StatusOK, "Posts retrieved", posts)
}

type updatePostRequest struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

// UpdatePost applies a partial update to a post the caller owns.
func (h *FeedHandler) UpdatePost(c *fiber.Ctx) error {
	post, err := h.ownedPost(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	fields := map[string]interface{}{}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}

	if len(fields) > 0 {
		if err := h.posts.Update(post.ID, fields); err != nil {
			return err
		}
	}

	return utils.Success(c, fiber.StatusOK, "Post updated", nil)
}

// DeletePost removes a post the caller owns.
func (h *FeedHandler) DeletePost(c *fiber.Ctx) error {
	post, err := h.ownedPost(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(post.ID); err != nil {
		return err
	}

	return utils.Success(c, fiber.StatusOK, "Post deleted", nil)
}

// LikePost records the caller's like on a post. Liking twice is a no-op.
func (h *FeedHandler) LikePost(c *fiber.Ctx) error {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "access denied, no token provided")
	}

	post, err := h.lookupPost(c)
	if err != nil {
		return err
	}

	if err := h.posts.AddLike(post.ID, username); err != nil {
		return err
	}

	return utils.Success(c, fiber.StatusOK, "Post liked", nil)
}

type commentRequest struct {
	Text string `json:"text"`
}

// CommentPost appends a comment to a post.
func (h *FeedHandler) CommentPost(c *fiber.Ctx) error {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "access denied, no token provided")
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	post, err := h.lookupPost(c)
	if err != nil {
		return err
	}

	comment := models.Comment{
		PostID:   post.ID,
		Username: username,
		Text:     req.Text,
	}
	if err := h.posts.AddComment(&comment); err != nil {
		return err
	}

	return utils.Success(c, fiber.StatusOK, "Comment added", nil)
}

func (h *FeedHandler) lookupPost(c *fiber.Ctx) (*models.Post, error) {
	id, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	post, err := h.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	return post, nil
}

func (h *FeedHandler) ownedPost(c *fiber.Ctx) (*models.Post, error) {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "access denied, no token provided")
	}

	post, err := h.lookupPost(c)
	if err != nil {
		return nil, err
	}
	if post.Username != username {
		log := middleware.Logger(c)
		log.Warn().
			Str("username", username).
			Str("owner", post.Username).
			Msg("post mutation denied")
		return nil, fiber.NewError(fiber.StatusForbidden, "not authorized to modify this post")
	}

	return post, nil
}
