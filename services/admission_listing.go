package services

import (
	"context"
	"time"

	"admissions-intake-api/models"
	"admissions-intake-api/utils"
)

// AdmissionListing is one row of the admin view.
type AdmissionListing struct {
	ID            uint      `json:"id"`
	ApplicationID string    `json:"application_id"`
	StudentName   string    `json:"student_name"`
	Department    string    `json:"department"`
	PhotoURL      *string   `json:"photo_url"`
	TranscriptURL *string   `json:"transcript_url"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdmissionLister reads stored admissions for the admin view.
type AdmissionLister interface {
	ListAdmissions(ctx context.Context) ([]models.Admission, error)
}

// ListAdmissionViews performs a single read, newest first, and projects
// every row for display.
func ListAdmissionViews(ctx context.Context, lister AdmissionLister) ([]AdmissionListing, error) {
	admissions, err := lister.ListAdmissions(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]AdmissionListing, 0, len(admissions))
	for _, a := range admissions {
		views = append(views, AdmissionListing{
			ID:            a.ID,
			ApplicationID: a.ApplicationID,
			StudentName:   a.FullName(),
			Department:    a.Department,
			PhotoURL:      a.PhotoURL,
			TranscriptURL: a.TranscriptURL,
			Status:        utils.StatusLabel(a.Status),
			CreatedAt:     a.CreatedAt,
		})
	}
	return views, nil
}
