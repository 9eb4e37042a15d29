package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/social-network/internal/core/ports"
)

type PostHandler struct {
	postService ports.PostService
	feedService ports.FeedService
}

func NewPostHandler(postService ports.PostService, feedService ports.FeedService) *PostHandler {
	return &PostHandler{postService: postService, feedService: feedService}
}

// Create publishes a post with an optional image.
//
// @Summary      Create post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        content  formData  string  true   "Post text (1-500 characters)"
// @Param        image    formData  file    false  "Image (jpeg, png, gif, webp; max 5MB)"
// @Success      201  {object}  postEnvelope
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.CreatePostInput{AuthorID: userID, Content: req.Content}
	if isMultipart(c) {
		upload, closer, err := formUpload(c, "image")
		if err != nil {
			return err
		}
		defer closer.Close()
		in.Image = upload
	}

	post, err := h.postService.CreatePost(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, postEnvelope{Success: true, Post: toPostResponse(post)})
}

// Feed returns the caller's feed, newest first.
//
// @Summary      Feed
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (default 20, max 100)"
// @Success      200  {object}  feedResponse
// @Failure      401  {object}  messageResponse
// @Router       /posts/feed [get]
func (h *PostHandler) Feed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	// Malformed values fall back to the defaults.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.feedService.GetFeed(c.Request().Context(), ports.FeedInput{UserID: userID, Page: page, Limit: limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedResponse{
		Success: true,
		Posts:   toPostResponses(res.Posts),
		Pagination: paginationResponse{
			Page:  res.Page,
			Limit: res.Limit,
			Total: res.Total,
			Pages: res.Pages,
		},
	})
}

// UserPosts lists every post by a user.
//
// @Summary      Posts by user
// @Tags         posts
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  postsEnvelope
// @Failure      404  {object}  messageResponse
// @Router       /posts/user/{username} [get]
func (h *PostHandler) UserPosts(c echo.Context) error {
	posts, err := h.feedService.GetUserPosts(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postsEnvelope{Success: true, Posts: toPostResponses(posts)})
}

// Get returns a single post.
//
// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postEnvelope
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postEnvelope{Success: true, Post: toPostResponse(post)})
}

// Like toggles the caller's like on a post.
//
// @Summary      Like / unlike
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  likeResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id}/like [put]
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	res, err := h.postService.ToggleLike(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{Success: true, Post: toPostResponse(res.Post), Liked: res.Liked})
}

// Comment adds a comment to a post.
//
// @Summary      Comment
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      200  {object}  postEnvelope
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id}/comment [post]
func (h *PostHandler) Comment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.AddComment(c.Request().Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postEnvelope{Success: true, Post: toPostResponse(post)})
}

// Delete removes a post owned by the caller.
//
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Post deleted successfully"})
}
