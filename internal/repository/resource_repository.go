package repository

import (
	"context"
	"fmt"

	"github.com/andresuchdata/reslink/internal/domain"
	"github.com/jmoiron/sqlx"
)

// ResourceRepository appends rows to the resources table.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository returns a repository using db.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Insert appends a resources row. No conflict clause:
// linking the same path twice yields two rows.
func (r *ResourceRepository) Insert(ctx context.Context, res *domain.ResourceMetadata) error {
	query := `
		INSERT INTO resources (
			course_id, uploader_firebase_uid, storage_path, mime_type,
			size_bytes, file_type, approval_status
		) VALUES (
			:course_id, :uploader_firebase_uid, :storage_path, :mime_type,
			:size_bytes, :file_type, :approval_status
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, res); err != nil {
		return fmt.Errorf("failed to insert resource %s: %w", res.StoragePath, err)
	}
	return nil
}
