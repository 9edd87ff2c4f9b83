package models

import (
	"errors"

	id "chocolate/pkg/domain"
)

// ErrProjectNotFound is returned when no project has the requested id.
var ErrProjectNotFound = errors.New("project not found")

// Project is a registered project and its review aggregates.
//
// Invariants:
//   - ReviewCount equals the number of distinct accounts that reviewed it
//   - RatingSum equals the sum of their ratings
//   - Owner, Name and Meta never change after creation
type Project struct {
	ReviewCount uint32       `json:"review_count"`
	RatingSum   uint32       `json:"rating_sum"`
	Owner       id.AccountID `json:"owner"`
	Name        []byte       `json:"name"`
	Meta        []byte       `json:"meta"`
}

// ProjectEntry pairs a project with its id for listings.
type ProjectEntry struct {
	ID      id.ProjectID `json:"id"`
	Project Project      `json:"project"`
}

// NewProject returns a project with zeroed aggregates. Nil name and meta are
// stored as empty.
func NewProject(owner id.AccountID, name, meta []byte) Project {
	if name == nil {
		name = []byte{}
	}
	if meta == nil {
		meta = []byte{}
	}
	return Project{Owner: owner, Name: name, Meta: meta}
}
