package linker

import (
	"context"
	"errors"
	"testing"

	"github.com/andresuchdata/reslink/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scopedFinder struct {
	rows []domain.Course
	err  error
}

func (f *scopedFinder) FindCourseID(ctx context.Context, code string, scope domain.CourseScope) (int64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	for _, c := range f.rows {
		if c.CourseCode == code && c.Department == scope.Department && c.Level == scope.Level && c.Semester == scope.Semester {
			return c.ID, true, nil
		}
	}
	return 0, false, nil
}

func TestCourseResolver(t *testing.T) {
	finder := &scopedFinder{rows: []domain.Course{
		{ID: 42, CourseCode: "CSC401", Department: "Software Engineering", Level: 400, Semester: "First"},
		{ID: 77, CourseCode: "CSC402", Department: "Software Engineering", Level: 400, Semester: "Second"},
	}}
	r, err := NewCourseResolver(finder, testScope)
	require.NoError(t, err)
	assert.Equal(t, testScope, r.Scope())

	id, found, err := r.CourseID(context.Background(), "CSC401")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(42), id)

	// exists, but in another semester
	id, found, err = r.CourseID(context.Background(), "CSC402")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, id)
}

func TestCourseResolverBackendError(t *testing.T) {
	boom := errors.New("timeout")
	r, err := NewCourseResolver(&scopedFinder{err: boom}, testScope)
	require.NoError(t, err)

	_, found, err := r.CourseID(context.Background(), "CSC401")
	assert.False(t, found)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "resolve course CSC401")
}

func TestNewCourseResolverRequiresScope(t *testing.T) {
	_, err := NewCourseResolver(&scopedFinder{}, domain.CourseScope{Department: "SE", Semester: "First"})
	assert.Error(t, err)
}
