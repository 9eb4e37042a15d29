package handler

import "time"

// Response shapes use "_id" and camelCase keys; the bundled web client reads
// them as-is.

type userSummaryResponse struct {
	ID             string `json:"_id"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio,omitempty"`
}

type userResponse struct {
	ID             string                `json:"_id"`
	Username       string                `json:"username"`
	Email          string                `json:"email,omitempty"`
	FullName       string                `json:"fullName"`
	Bio            string                `json:"bio"`
	ProfilePicture string                `json:"profilePicture"`
	Followers      []userSummaryResponse `json:"followers"`
	Following      []userSummaryResponse `json:"following"`
	FollowersCount int                   `json:"followersCount"`
	FollowingCount int                   `json:"followingCount"`
	CreatedAt      time.Time             `json:"createdAt"`
}

type commentResponse struct {
	ID        string              `json:"_id"`
	User      userSummaryResponse `json:"user"`
	Text      string              `json:"text"`
	CreatedAt time.Time           `json:"createdAt"`
}

type postResponse struct {
	ID        string              `json:"_id"`
	Author    userSummaryResponse `json:"author"`
	Content   string              `json:"content"`
	Image     string              `json:"image"`
	Likes     []string            `json:"likes"`
	Comments  []commentResponse   `json:"comments"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type paginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// --- Requests ---

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createPostRequest struct {
	Content string `json:"content" form:"content"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

type updateProfileRequest struct {
	FullName *string `json:"fullName"`
	Bio      *string `json:"bio"`
}

// --- Envelopes ---

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type userEnvelope struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

type followResponse struct {
	Success   bool         `json:"success"`
	User      userResponse `json:"user"`
	Following bool         `json:"following"`
}

type usersEnvelope struct {
	Success bool                  `json:"success"`
	Users   []userSummaryResponse `json:"users"`
}

type followersEnvelope struct {
	Success   bool                  `json:"success"`
	Followers []userSummaryResponse `json:"followers"`
}

type followingEnvelope struct {
	Success   bool                  `json:"success"`
	Following []userSummaryResponse `json:"following"`
}

type postEnvelope struct {
	Success bool         `json:"success"`
	Post    postResponse `json:"post"`
}

type likeResponse struct {
	Success bool         `json:"success"`
	Post    postResponse `json:"post"`
	Liked   bool         `json:"liked"`
}

type postsEnvelope struct {
	Success bool           `json:"success"`
	Posts   []postResponse `json:"posts"`
}

type feedResponse struct {
	Success    bool               `json:"success"`
	Posts      []postResponse     `json:"posts"`
	Pagination paginationResponse `json:"pagination"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
