package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the delivery stage of a client project.
type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectInReview   ProjectStatus = "review"
	ProjectCompleted  ProjectStatus = "completed"
)

// validStages defines the allowed stage transitions.
var validStages = map[ProjectStatus][]ProjectStatus{
	ProjectDraft:      {ProjectInProgress},
	ProjectInProgress: {ProjectInReview, ProjectCompleted},
	ProjectInReview:   {ProjectInProgress, ProjectCompleted},
}

var ErrProjectNotFound = errors.New("project not found")
var ErrInvalidStage = errors.New("invalid project stage transition")

// CanAdvanceTo reports whether a transition from the current stage to next is valid.
func (s ProjectStatus) CanAdvanceTo(next ProjectStatus) bool {
	for _, allowed := range validStages[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Project is a customer engagement tracked through the portal.
type Project struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
