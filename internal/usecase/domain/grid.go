package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RoyKeane94/toad/internal/entities"
)

// CreateProject creates a grid for userID, using the default layout when no headers are given.
func (u *Usecase) CreateProject(ctx context.Context, userID, title string, rows, columns []string) (*entities.Grid, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}
	rows, err := headerTitles(rows, entities.DefaultRows)
	if err != nil {
		return nil, err
	}
	columns, err = headerTitles(columns, entities.DefaultColumns)
	if err != nil {
		return nil, err
	}

	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.repo.CreateProject(ctx, entities.Project{OwnerID: userID, Title: title}, rows, columns,
		user.Tier.Limits().MaxProjects)
}

// ListProjects returns projects the user owns or sees through their group.
func (u *Usecase) ListProjects(ctx context.Context, userID string, includeArchived bool) ([]entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", entities.ErrInvalidArgument)
	}
	var groupID *int64
	group, err := u.repo.GroupForUser(ctx, userID)
	switch {
	case err == nil:
		groupID = &group.ID
	case !errors.Is(err, entities.ErrGroupNotFound):
		return nil, err
	}
	return u.repo.ListProjects(ctx, userID, groupID, includeArchived)
}

// Grid returns a project with its headers and tasks.
func (u *Usecase) Grid(ctx context.Context, userID string, projectID int64) (*entities.Grid, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.projectAccess(ctx, userID, projectID, false); err != nil {
		return nil, err
	}
	return u.repo.GetGrid(ctx, projectID)
}

// RenameProject changes a project title.
func (u *Usecase) RenameProject(ctx context.Context, userID string, projectID int64, title string) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}
	if _, err := u.projectAccess(ctx, userID, projectID, false); err != nil {
		return nil, err
	}
	return u.repo.RenameProject(ctx, projectID, title)
}

// ArchiveProject archives or restores a project. Restoring counts against the tier limit.
func (u *Usecase) ArchiveProject(ctx context.Context, userID string, projectID int64, archived bool) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.projectAccess(ctx, userID, projectID, true); err != nil {
		return nil, err
	}
	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.repo.SetArchived(ctx, projectID, archived, user.Tier.Limits().MaxProjects)
}

// DeleteProject removes a project.
func (u *Usecase) DeleteProject(ctx context.Context, userID string, projectID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.projectAccess(ctx, userID, projectID, true); err != nil {
		return err
	}
	return u.repo.DeleteProject(ctx, projectID)
}

// ShareProject shares a project with the owner's group.
func (u *Usecase) ShareProject(ctx context.Context, userID string, projectID int64) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.projectAccess(ctx, userID, projectID, true); err != nil {
		return nil, err
	}
	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Tier.Limits().TeamSharing {
		return nil, fmt.Errorf("%w: tier %s cannot share projects", entities.ErrTierLimit, user.Tier)
	}
	group, err := u.repo.GroupForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.repo.SetProjectGroup(ctx, projectID, &group.ID)
}

// UnshareProject makes a project private again.
func (u *Usecase) UnshareProject(ctx context.Context, userID string, projectID int64) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.projectAccess(ctx, userID, projectID, true); err != nil {
		return nil, err
	}
	return u.repo.SetProjectGroup(ctx, projectID, nil)
}

// AddHeader appends a row or column.
func (u *Usecase) AddHeader(ctx context.Context, userID string, projectID int64, kind entities.HeaderKind, title string) (*entities.Header, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	title = strings.TrimSpace(title)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown header kind %q", entities.ErrInvalidArgument, kind)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}
	if _, err := u.projectAccess(ctx, userID, projectID, false); err != nil {
		return nil, err
	}
	return u.repo.AddHeader(ctx, projectID, kind, title)
}

// RenameHeader changes a header title.
func (u *Usecase) RenameHeader(ctx context.Context, userID string, headerID int64, title string) (*entities.Header, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}
	if _, err := u.headerAccess(ctx, userID, headerID); err != nil {
		return nil, err
	}
	return u.repo.RenameHeader(ctx, headerID, title)
}

// MoveHeader moves a header to index among headers of its kind.
func (u *Usecase) MoveHeader(ctx context.Context, userID string, headerID int64, index int) ([]entities.Header, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.headerAccess(ctx, userID, headerID); err != nil {
		return nil, err
	}
	return u.repo.MoveHeader(ctx, headerID, index)
}

// DeleteHeader removes a header and its tasks.
func (u *Usecase) DeleteHeader(ctx context.Context, userID string, headerID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.headerAccess(ctx, userID, headerID); err != nil {
		return err
	}
	return u.repo.DeleteHeader(ctx, headerID)
}

// AddTask appends a task to a cell.
func (u *Usecase) AddTask(ctx context.Context, userID string, task entities.Task) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	task.Text = strings.TrimSpace(task.Text)
	if task.Text == "" {
		return nil, fmt.Errorf("%w: text is required", entities.ErrInvalidArgument)
	}
	if task.RowID == 0 || task.ColumnID == 0 {
		return nil, fmt.Errorf("%w: row and column are required", entities.ErrInvalidArgument)
	}
	if _, err := u.projectAccess(ctx, userID, task.ProjectID, false); err != nil {
		return nil, err
	}
	return u.repo.AddTask(ctx, task)
}

// UpdateTask edits a task's text and/or done flag.
func (u *Usecase) UpdateTask(ctx context.Context, userID string, taskID int64, text *string, done *bool) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if text == nil && done == nil {
		return nil, fmt.Errorf("%w: nothing to update", entities.ErrInvalidArgument)
	}
	if text != nil {
		trimmed := strings.TrimSpace(*text)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: text cannot be empty", entities.ErrInvalidArgument)
		}
		text = &trimmed
	}
	if _, err := u.taskAccess(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return u.repo.UpdateTask(ctx, taskID, text, done)
}

// MoveTask moves a task into a cell at index.
func (u *Usecase) MoveTask(ctx context.Context, userID string, taskID, rowID, columnID int64, index int) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if rowID == 0 || columnID == 0 {
		return nil, fmt.Errorf("%w: row and column are required", entities.ErrInvalidArgument)
	}
	if _, err := u.taskAccess(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return u.repo.MoveTask(ctx, taskID, rowID, columnID, index)
}

// DeleteTask removes a task.
func (u *Usecase) DeleteTask(ctx context.Context, userID string, taskID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.taskAccess(ctx, userID, taskID); err != nil {
		return err
	}
	return u.repo.DeleteTask(ctx, taskID)
}

// ClearCompleted removes done tasks of a project.
func (u *Usecase) ClearCompleted(ctx context.Context, userID string, projectID int64) (int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.projectAccess(ctx, userID, projectID, false); err != nil {
		return 0, err
	}
	return u.repo.ClearCompleted(ctx, projectID)
}

// projectAccess allows the owner, and members of the sharing group unless ownerOnly.
func (u *Usecase) projectAccess(ctx context.Context, userID string, projectID int64, ownerOnly bool) (*entities.Project, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", entities.ErrInvalidArgument)
	}
	project, err := u.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID == userID {
		return project, nil
	}
	if ownerOnly || project.GroupID == nil {
		return nil, entities.ErrForbidden
	}

	group, err := u.repo.GroupForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrGroupNotFound) {
			return nil, entities.ErrForbidden
		}
		return nil, err
	}
	if group.ID != *project.GroupID {
		return nil, entities.ErrForbidden
	}
	return project, nil
}

func (u *Usecase) headerAccess(ctx context.Context, userID string, headerID int64) (*entities.Header, error) {
	header, err := u.repo.GetHeader(ctx, headerID)
	if err != nil {
		return nil, err
	}
	if _, err := u.projectAccess(ctx, userID, header.ProjectID, false); err != nil {
		return nil, err
	}
	return header, nil
}

func (u *Usecase) taskAccess(ctx context.Context, userID string, taskID int64) (*entities.Task, error) {
	task, err := u.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := u.projectAccess(ctx, userID, task.ProjectID, false); err != nil {
		return nil, err
	}
	return task, nil
}

func headerTitles(titles, defaults []string) ([]string, error) {
	if len(titles) == 0 {
		return append([]string(nil), defaults...), nil
	}
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, fmt.Errorf("%w: header titles cannot be empty", entities.ErrInvalidArgument)
		}
		out = append(out, t)
	}
	return out, nil
}
