package exportlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/presence/internal/export"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=exportlog
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

type ListFilter struct {
	Username *string
	Limit    int
}

var ErrEmptyExport = errors.New("export has no rows")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores the metadata of a produced export file.
func (s *Service) Record(ctx context.Context, file *export.File, username string) (*Entry, error) {
	if file == nil || file.Rows == 0 {
		return nil, ErrEmptyExport
	}

	e := &Entry{
		Filename: file.Name,
		Format:   string(file.Format),
		Layout:   file.Layout.String(),
		Scope:    string(file.Scope),
		Rows:     file.Rows,
		Username: username,
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("recording export: %w", err)
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

// List returns the most recent entries first. The limit is clamped to
// [1, MaxLimit] and defaults to DefaultLimit.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultLimit
	case filter.Limit > MaxLimit:
		filter.Limit = MaxLimit
	}

	entries, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}

	return entries, nil
}
