package linker

import (
	"context"
	"fmt"

	"github.com/andresuchdata/reslink/internal/domain"
	"github.com/rs/zerolog/log"
)

// FileLister is satisfied by scan.Lister.
type FileLister interface {
	ListFiles(ctx context.Context, prefix string) ([]string, error)
}

// Runner wires listing and inserting into one pass over the bucket.
type Runner struct {
	lister     FileLister
	inserter   *Inserter
	rootPrefix string
}

// NewRunner links everything below rootPrefix.
func NewRunner(lister FileLister, inserter *Inserter, rootPrefix string) *Runner {
	return &Runner{lister: lister, inserter: inserter, rootPrefix: rootPrefix}
}

// Run lists rootPrefix and links every file found. The success banner is
// only logged when nothing failed.
func (r *Runner) Run(ctx context.Context) (domain.RunSummary, error) {
	files, err := r.lister.ListFiles(ctx, r.rootPrefix)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("listing %s: %w", r.rootPrefix, err)
	}
	log.Info().Int("count", len(files)).Msgf("Found %d PDF files", len(files))

	summary, err := r.inserter.InsertMetadata(ctx, files)
	if err != nil {
		return summary, fmt.Errorf("inserting metadata: %w", err)
	}

	log.Info().
		Int("found", summary.Found).
		Int("inserted", summary.Inserted).
		Int("skipped", summary.Skipped).
		Msg("Run summary")
	if r.inserter.opts.DryRun {
		log.Info().Msg("Dry run finished, nothing inserted")
		return summary, nil
	}
	log.Info().Msg("All metadata inserted successfully!")
	return summary, nil
}
