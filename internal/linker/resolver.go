package linker

import (
	"context"
	"fmt"

	"github.com/andresuchdata/reslink/internal/domain"
)

// CourseFinder is satisfied by repository.CourseRepository and cache.CourseCache.
type CourseFinder interface {
	FindCourseID(ctx context.Context, courseCode string, scope domain.CourseScope) (int64, bool, error)
}

// CourseResolver answers course lookups inside the fixed scope of a run.
type CourseResolver struct {
	finder CourseFinder
	scope  domain.CourseScope
}

// NewCourseResolver rejects a scope missing any of its three parts.
func NewCourseResolver(finder CourseFinder, scope domain.CourseScope) (*CourseResolver, error) {
	if scope.Department == "" || scope.Level <= 0 || scope.Semester == "" {
		return nil, fmt.Errorf("course scope is incomplete: %+v", scope)
	}
	return &CourseResolver{finder: finder, scope: scope}, nil
}

// CourseID returns the id of courseCode, or found=false when no course
// matches. Errors are backend failures only.
func (r *CourseResolver) CourseID(ctx context.Context, courseCode string) (int64, bool, error) {
	id, found, err := r.finder.FindCourseID(ctx, courseCode, r.scope)
	if err != nil {
		return 0, false, fmt.Errorf("resolve course %s: %w", courseCode, err)
	}
	return id, found, nil
}

// Scope is the triple every lookup is filtered by.
func (r *CourseResolver) Scope() domain.CourseScope {
	return r.scope
}
