package taskops

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ticktools/tickdone/internal/colors"
	"github.com/ticktools/tickdone/internal/logging"
	"github.com/ticktools/tickdone/internal/ticktick"
)

// Projects returns all projects from the cached snapshot.
func (s *Service) Projects(ctx context.Context) []ticktick.Project {
	return s.client.Projects()
}

// Project returns a project by id, or ErrNotFound.
func (s *Service) Project(ctx context.Context, id string) (*ticktick.Project, error) {
	p := s.client.ProjectByID(id)
	if p == nil {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// CreateProject creates a project. The color may be a #RRGGBB hex value
// or a common color name; unrecognized colors fall back to the provider
// default. A project with the same name already existing is returned
// as-is rather than duplicated, and a create that the provider rejects
// because of the color is retried once without it.
func (s *Service) CreateProject(ctx context.Context, name, color string) (*ticktick.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	for _, p := range s.client.Projects() {
		if p.Name == name {
			s.logger.Info("project already exists, returning existing",
				slog.String(logging.KeyProjectID, p.ID), slog.String("name", name))
			return &p, nil
		}
	}

	hex := colors.Normalize(color)
	if hex == "" {
		return s.client.CreateProject(ctx, name, "")
	}

	project, err := s.client.CreateProject(ctx, name, hex)
	if err != nil {
		s.logger.Warn("project create with color failed, retrying without color",
			slog.String("name", name), logging.Err(err))
		return s.client.CreateProject(ctx, name, "")
	}
	return project, nil
}

// DeleteProject deletes a project by id. Failures propagate; project
// deletion has no fallback chain.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.client.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted project", slog.String(logging.KeyProjectID, id))
	return nil
}
