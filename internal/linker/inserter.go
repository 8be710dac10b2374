package linker

import (
	"context"
	"fmt"

	"github.com/andresuchdata/reslink/internal/domain"
	"github.com/rs/zerolog/log"
)

// Resolver looks a course code up inside the run's scope.
type Resolver interface {
	CourseID(ctx context.Context, courseCode string) (int64, bool, error)
}

// ResourceWriter persists one metadata row.
type ResourceWriter interface {
	Insert(ctx context.Context, res *domain.ResourceMetadata) error
}

// InserterOptions fixes what every record of a run carries.
type InserterOptions struct {
	UploaderID   string
	Scope        domain.CourseScope
	EnforceScope bool
	DryRun       bool
	Policy       domain.FileTypePolicy
}

// Inserter turns listed paths into resources rows.
type Inserter struct {
	resolver Resolver
	writer   ResourceWriter
	opts     InserterOptions
}

// NewInserter validates opts. A zero Policy means domain.DefaultFileTypePolicy.
func NewInserter(resolver Resolver, writer ResourceWriter, opts InserterOptions) (*Inserter, error) {
	if opts.UploaderID == "" {
		return nil, fmt.Errorf("uploader id must be provided")
	}
	if opts.EnforceScope && (opts.Scope.Department == "" || opts.Scope.Level <= 0 || opts.Scope.Semester == "") {
		return nil, fmt.Errorf("scope check needs a complete scope: %+v", opts.Scope)
	}
	if opts.Policy.Folders == nil {
		opts.Policy = domain.DefaultFileTypePolicy
	}
	return &Inserter{resolver: resolver, writer: writer, opts: opts}, nil
}

// InsertMetadata links files in order. Skips are logged and counted; the
// first backend error stops the loop and is returned with the partial summary.
func (in *Inserter) InsertMetadata(ctx context.Context, files []string) (domain.RunSummary, error) {
	summary := domain.RunSummary{Found: len(files)}

	for _, filePath := range files {
		res, info, err := in.buildRecord(ctx, filePath)
		if err != nil {
			if domain.IsSkip(err) {
				log.Warn().Err(err).Str("file", filePath).Msg("Skipping")
				summary.Skipped++
				continue
			}
			return summary, err
		}

		if in.opts.DryRun {
			log.Info().
				Str("file", info.FileName).
				Str("course_code", info.CourseCode).
				Str("file_type", string(res.FileType)).
				Int64("course_id", res.CourseID).
				Msg("Would link")
			summary.Inserted++
			continue
		}

		log.Info().
			Str("file", info.FileName).
			Str("course_code", info.CourseCode).
			Str("file_type", string(res.FileType)).
			Msg("Linking")
		if err := in.writer.Insert(ctx, res); err != nil {
			return summary, err
		}
		summary.Inserted++
	}

	return summary, nil
}

func (in *Inserter) buildRecord(ctx context.Context, filePath string) (*domain.ResourceMetadata, PathInfo, error) {
	info, err := ParsePath(filePath)
	if err != nil {
		return nil, PathInfo{}, err
	}

	fileType, known := in.opts.Policy.Resolve(info.FileTypeFolder)
	if !known {
		log.Debug().Str("folder", info.FileTypeFolder).Str("file_type", string(fileType)).Msg("Unmapped file type folder, using fallback")
	}

	if in.opts.EnforceScope {
		if err := info.CheckScope(in.opts.Scope); err != nil {
			return nil, info, err
		}
	}

	courseID, found, err := in.resolver.CourseID(ctx, info.CourseCode)
	if err != nil {
		return nil, info, err
	}
	if !found {
		return nil, info, domain.NewSkipError(filePath, domain.ErrCourseNotFound,
			fmt.Sprintf("course %s not found in courses table", info.CourseCode))
	}

	return &domain.ResourceMetadata{
		CourseID:       courseID,
		UploaderID:     in.opts.UploaderID,
		StoragePath:    filePath,
		MimeType:       domain.MimeTypePDF,
		SizeBytes:      0,
		FileType:       fileType,
		ApprovalStatus: domain.ApprovalApproved,
	}, info, nil
}
