package linker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andresuchdata/reslink/internal/domain"
)

// MinPathSegments is root/department/level/semester/course/type/file.
const MinPathSegments = 7

// PathInfo is the meaning read out of an object path.
type PathInfo struct {
	Path           string
	Department     string
	Level          string
	Semester       string
	CourseCode     string
	FileTypeFolder string
	FileName       string
}

// ParsePath splits p on "/" and picks the fields by position. Paths with
// fewer than MinPathSegments segments are a skip, not a failure.
func ParsePath(p string) (PathInfo, error) {
	parts := strings.Split(p, "/")
	if len(parts) < MinPathSegments {
		return PathInfo{}, domain.NewSkipError(p, domain.ErrInvalidPath,
			fmt.Sprintf("expected at least %d segments, got %d", MinPathSegments, len(parts)))
	}

	return PathInfo{
		Path:           p,
		Department:     strings.TrimSpace(parts[1]),
		Level:          strings.TrimSpace(parts[2]),
		Semester:       strings.TrimSpace(parts[3]),
		CourseCode:     strings.TrimSpace(parts[4]),
		FileTypeFolder: strings.ToLower(strings.TrimSpace(parts[5])),
		FileName:       parts[len(parts)-1],
	}, nil
}

// CheckScope rejects paths whose department, level or semester folders do
// not name the configured scope.
func (pi PathInfo) CheckScope(scope domain.CourseScope) error {
	if !strings.EqualFold(pi.Department, scope.Department) {
		return domain.NewSkipError(pi.Path, domain.ErrScopeMismatch,
			fmt.Sprintf("department %q, want %q", pi.Department, scope.Department))
	}
	if pi.Level != strconv.Itoa(scope.Level) {
		return domain.NewSkipError(pi.Path, domain.ErrScopeMismatch,
			fmt.Sprintf("level %q, want %d", pi.Level, scope.Level))
	}
	if !strings.EqualFold(pi.Semester, scope.Semester) {
		return domain.NewSkipError(pi.Path, domain.ErrScopeMismatch,
			fmt.Sprintf("semester %q, want %q", pi.Semester, scope.Semester))
	}
	return nil
}
