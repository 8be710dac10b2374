package main

import (
	"context"
	"errors"

	"github.com/andresuchdata/reslink/internal/cache"
	"github.com/andresuchdata/reslink/internal/config"
	"github.com/andresuchdata/reslink/internal/domain"
	"github.com/andresuchdata/reslink/internal/linker"
	"github.com/andresuchdata/reslink/internal/repository"
	"github.com/andresuchdata/reslink/internal/repository/postgres"
	"github.com/andresuchdata/reslink/internal/scan"
	"github.com/andresuchdata/reslink/internal/storage"
	"github.com/jmoiron/sqlx"
)

type dependencies struct {
	db          *sqlx.DB
	courseCache *cache.CourseCache
	runner      *linker.Runner
}

func (d *dependencies) Close() error {
	var errs []error
	if d.courseCache != nil {
		errs = append(errs, d.courseCache.Close())
	}
	if d.db != nil {
		errs = append(errs, d.db.Close())
	}
	return errors.Join(errs...)
}

func newLister(ctx context.Context, cfg *config.Config) (*scan.Lister, error) {
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	return scan.NewLister(store, cfg.Link.MaxDepth), nil
}

func wire(ctx context.Context, cfg *config.Config, dryRun bool) (*dependencies, error) {
	lister, err := newLister(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	deps := &dependencies{db: db}

	var finder linker.CourseFinder = repository.NewCourseRepository(db)
	if cfg.Cache.Enabled {
		courseCache, err := cache.NewCourseCache(ctx, cfg.Cache, finder)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.courseCache = courseCache
		finder = courseCache
	}

	scope := domain.CourseScope{
		Department: cfg.Link.Department,
		Level:      cfg.Link.Level,
		Semester:   cfg.Link.Semester,
	}
	resolver, err := linker.NewCourseResolver(finder, scope)
	if err != nil {
		deps.Close()
		return nil, err
	}

	inserter, err := linker.NewInserter(resolver, repository.NewResourceRepository(db), linker.InserterOptions{
		UploaderID:   cfg.Link.UploaderUID,
		Scope:        scope,
		EnforceScope: cfg.Link.EnforceScope,
		DryRun:       dryRun,
		Policy:       domain.DefaultFileTypePolicy,
	})
	if err != nil {
		deps.Close()
		return nil, err
	}

	deps.runner = linker.NewRunner(lister, inserter, cfg.Link.RootPrefix)
	return deps, nil
}
