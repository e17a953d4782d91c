package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyKeane94/toad/internal/entities"
)

// SaveTemplate snapshots a project's headers as a personal template.
func (u *Usecase) SaveTemplate(ctx context.Context, userID string, projectID int64, name string) (*entities.PersonalTemplate, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.projectAccess(ctx, userID, projectID, true); err != nil {
		return nil, err
	}
	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	limit := user.Tier.Limits().MaxTemplates
	if limit == 0 {
		return nil, fmt.Errorf("%w: tier %s has no personal templates", entities.ErrTierLimit, user.Tier)
	}

	grid, err := u.repo.GetGrid(ctx, projectID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = grid.Project.Title
	}

	return u.repo.CreateTemplate(ctx, entities.PersonalTemplate{
		OwnerID: userID,
		Name:    name,
		Rows:    entities.Titles(grid.Rows),
		Columns: entities.Titles(grid.Columns),
	}, limit)
}

// ListTemplates returns the user's templates.
func (u *Usecase) ListTemplates(ctx context.Context, userID string) ([]entities.PersonalTemplate, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", entities.ErrInvalidArgument)
	}
	return u.repo.ListTemplates(ctx, userID)
}

// DeleteTemplate removes one of the user's templates.
func (u *Usecase) DeleteTemplate(ctx context.Context, userID string, templateID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.ownedTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	return u.repo.DeleteTemplate(ctx, templateID)
}

// InstantiateTemplate creates a project from a template.
func (u *Usecase) InstantiateTemplate(ctx context.Context, userID string, templateID int64, title string) (*entities.Grid, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	tpl, err := u.ownedTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = tpl.Name
	}

	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.repo.CreateProject(ctx, entities.Project{OwnerID: userID, Title: title}, tpl.Rows, tpl.Columns,
		user.Tier.Limits().MaxProjects)
}

// CloneProject copies a project; structure mode copies headers, full mode also copies tasks.
func (u *Usecase) CloneProject(ctx context.Context, userID string, projectID int64, mode entities.CloneMode, title string) (*entities.Grid, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if mode == "" {
		mode = entities.CloneStructure
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown clone mode %q", entities.ErrInvalidArgument, mode)
	}
	project, err := u.projectAccess(ctx, userID, projectID, true)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = project.Title + " (copy)"
	}

	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.repo.CloneProject(ctx, projectID, userID, title, mode, user.Tier.Limits().MaxProjects)
}

func (u *Usecase) ownedTemplate(ctx context.Context, userID string, templateID int64) (*entities.PersonalTemplate, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", entities.ErrInvalidArgument)
	}
	tpl, err := u.repo.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tpl.OwnerID != userID {
		return nil, entities.ErrForbidden
	}
	return tpl, nil
}
