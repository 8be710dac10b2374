package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/reslink/internal/domain"
	"github.com/jmoiron/sqlx"
)

// CourseRepository reads the courses table.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository returns a repository using db.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindCourseID looks up the course with code inside scope. A missing row is
// reported as found=false, not as an error.
func (r *CourseRepository) FindCourseID(ctx context.Context, courseCode string, scope domain.CourseScope) (int64, bool, error) {
	query := `
		SELECT id, course_code, department, level, semester
		FROM courses
		WHERE course_code = $1
		  AND department = $2
		  AND level = $3
		  AND semester = $4
		LIMIT 1
	`
	var course domain.Course
	err := r.db.GetContext(ctx, &course, query, courseCode, scope.Department, scope.Level, scope.Semester)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query course %s: %w", courseCode, err)
	}
	return course.ID, true, nil
}
