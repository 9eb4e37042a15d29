package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/social-network/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	feedService ports.FeedService
}

func NewUserHandler(userService ports.UserService, feedService ports.FeedService) *UserHandler {
	return &UserHandler{userService: userService, feedService: feedService}
}

// UpdateProfile edits the caller's profile. Accepts multipart (with an
// optional profilePicture file) or JSON.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        fullName        formData  string  false  "Full name"
// @Param        bio             formData  string  false  "Bio (max 160 characters)"
// @Param        profilePicture  formData  file    false  "Profile picture (max 2MB)"
// @Success      200  {object}  userEnvelope
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	in := ports.UpdateProfileInput{UserID: userID}

	if isMultipart(c) {
		params, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if v, ok := params["fullName"]; ok && len(v) > 0 {
			in.FullName = &v[0]
		}
		if v, ok := params["bio"]; ok && len(v) > 0 {
			in.Bio = &v[0]
		}

		upload, closer, err := formUpload(c, "profilePicture")
		if err != nil {
			return err
		}
		defer closer.Close()
		in.Picture = upload
	} else {
		var req updateProfileRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		in.FullName, in.Bio = req.FullName, req.Bio
	}

	view, err := h.userService.UpdateProfile(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{Success: true, User: toUserResponse(view, true)})
}

// ToggleFollow follows or unfollows a user.
//
// @Summary      Follow / unfollow
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  followResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{username}/follow [put]
func (h *UserHandler) ToggleFollow(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	res, err := h.userService.ToggleFollow(c.Request().Context(), userID, c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, followResponse{
		Success:   true,
		User:      toUserResponse(res.Target, false),
		Following: res.Following,
	})
}

// GetProfile returns a public profile.
//
// @Summary      Get profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  userEnvelope
// @Failure      404  {object}  messageResponse
// @Router       /users/{username} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	view, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{Success: true, User: toUserResponse(view, false)})
}

// Followers lists who follows a user.
//
// @Summary      List followers
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  followersEnvelope
// @Failure      404  {object}  messageResponse
// @Router       /users/{username}/followers [get]
func (h *UserHandler) Followers(c echo.Context) error {
	users, err := h.userService.Followers(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, followersEnvelope{Success: true, Followers: toSummaries(users)})
}

// Following lists who a user follows.
//
// @Summary      List following
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  followingEnvelope
// @Failure      404  {object}  messageResponse
// @Router       /users/{username}/following [get]
func (h *UserHandler) Following(c echo.Context) error {
	users, err := h.userService.Following(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, followingEnvelope{Success: true, Following: toSummaries(users)})
}

// Search finds users by username or full name.
//
// @Summary      Search users
// @Tags         users
// @Produce      json
// @Param        q  query     string  false  "Search text"
// @Success      200  {object}  usersEnvelope
// @Router       /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	users, err := h.feedService.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersEnvelope{Success: true, Users: toSummaries(users)})
}
