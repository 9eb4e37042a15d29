package handler

import (
	"github.com/Sirpyerre/social-network/internal/core/domain"
	"github.com/Sirpyerre/social-network/internal/core/ports"
)

// toUserResponse renders a profile. Email is only included when self is true.
func toUserResponse(v *ports.ProfileView, self bool) userResponse {
	u := v.User
	resp := userResponse{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Followers:      toSummaries(v.Followers),
		Following:      toSummaries(v.Following),
		FollowersCount: u.FollowersCount(),
		FollowingCount: u.FollowingCount(),
		CreatedAt:      u.CreatedAt,
	}
	if self {
		resp.Email = u.Email
	}
	return resp
}

func toSummary(s domain.UserSummary) userSummaryResponse {
	return userSummaryResponse{
		ID:             s.ID,
		Username:       s.Username,
		FullName:       s.FullName,
		ProfilePicture: s.ProfilePicture,
		Bio:            s.Bio,
	}
}

func toSummaries(in []domain.UserSummary) []userSummaryResponse {
	out := make([]userSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, toSummary(s))
	}
	return out
}

func toPostResponse(p *ports.PostView) postResponse {
	comments := make([]commentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentResponse{
			ID:        c.ID,
			User:      toSummary(c.User),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	return postResponse{
		ID:        p.ID,
		Author:    toSummary(p.Author),
		Content:   p.Content,
		Image:     p.Image,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostResponses(in []ports.PostView) []postResponse {
	out := make([]postResponse, 0, len(in))
	for i := range in {
		out = append(out, toPostResponse(&in[i]))
	}
	return out
}
