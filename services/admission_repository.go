package services

import (
	"context"

	"admissions-intake-api/models"

	"gorm.io/gorm"
)

// AdmissionStore is the remote record store used by submission and the
// admin listing.
type AdmissionStore interface {
	InsertAdmission(ctx context.Context, admission *models.Admission) error
	ListAdmissions(ctx context.Context) ([]models.Admission, error)
}

type AdmissionRepository struct {
	db *gorm.DB
}

func NewAdmissionRepository(db *gorm.DB) *AdmissionRepository {
	return &AdmissionRepository{db: db}
}

// InsertAdmission writes exactly one row. Backend errors are returned
// unwrapped so their message reaches the applicant verbatim.
func (r *AdmissionRepository) InsertAdmission(ctx context.Context, admission *models.Admission) error {
	return r.db.WithContext(ctx).Create(admission).Error
}

// ListAdmissions returns every row, newest first.
func (r *AdmissionRepository) ListAdmissions(ctx context.Context) ([]models.Admission, error) {
	var admissions []models.Admission
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&admissions).Error; err != nil {
		return nil, err
	}
	return admissions, nil
}
