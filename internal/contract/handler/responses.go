package handler

import (
	"encoding/hex"

	projectModels "chocolate/internal/projects/models"
	reviewModels "chocolate/internal/reviews/models"
	id "chocolate/pkg/domain"
)

// hexBytes renders binary fields as lowercase hex.
type hexBytes []byte

func (b hexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

type IDResponse struct {
	ID uint32 `json:"id"`
}

type ProjectResponse struct {
	ID          uint32       `json:"id"`
	Owner       id.AccountID `json:"owner"`
	Name        hexBytes     `json:"name"`
	Meta        hexBytes     `json:"meta"`
	ReviewCount uint32       `json:"review_count"`
	RatingSum   uint32       `json:"rating_sum"`
}

type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type ReviewResponse struct {
	ID        uint32       `json:"id"`
	ProjectID uint32       `json:"project_id"`
	Owner     id.AccountID `json:"owner"`
	Rating    uint32       `json:"rating"`
	Body      hexBytes     `json:"body"`
}

type ReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

type AccountsResponse struct {
	Accounts []id.AccountID `json:"accounts"`
}

type ChallengeResponse struct {
	Message hexBytes `json:"message"`
}

type PendingResponse struct {
	Index   uint32   `json:"index"`
	Message hexBytes `json:"message"`
}

type VerifiedResponse struct {
	Verified bool `json:"verified"`
}

func FromProject(projectID id.ProjectID, p projectModels.Project) ProjectResponse {
	return ProjectResponse{
		ID:          uint32(projectID),
		Owner:       p.Owner,
		Name:        p.Name,
		Meta:        p.Meta,
		ReviewCount: p.ReviewCount,
		RatingSum:   p.RatingSum,
	}
}

func FromProjectEntries(entries []projectModels.ProjectEntry) ProjectsResponse {
	out := ProjectsResponse{Projects: make([]ProjectResponse, 0, len(entries))}
	for _, e := range entries {
		out.Projects = append(out.Projects, FromProject(e.ID, e.Project))
	}
	return out
}

func FromReview(r reviewModels.Review) ReviewResponse {
	return ReviewResponse{
		ID:        uint32(r.ID),
		ProjectID: uint32(r.ProjectID),
		Owner:     r.Owner,
		Rating:    r.Rating,
		Body:      r.Body,
	}
}

func FromReviews(reviews []reviewModels.Review) ReviewsResponse {
	out := ReviewsResponse{Reviews: make([]ReviewResponse, 0, len(reviews))}
	for _, r := range reviews {
		out.Reviews = append(out.Reviews, FromReview(r))
	}
	return out
}

func nonNil(accounts []id.AccountID) []id.AccountID {
	if accounts == nil {
		return []id.AccountID{}
	}
	return accounts
}
