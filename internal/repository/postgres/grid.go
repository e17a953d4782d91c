package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	projectColumns = `id, owner_id, title, group_id, archived, created_at, updated_at`

	lockOwnerQuery          = `SELECT id FROM users WHERE id=$1 FOR UPDATE`
	countActiveProjects     = `SELECT COUNT(*) FROM projects WHERE owner_id=$1 AND archived=false`
	insertProjectQuery      = `INSERT INTO projects(owner_id, title) VALUES ($1, $2) RETURNING ` + projectColumns
	selectProjectQuery      = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1`
	selectProjectForUpdate  = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1 FOR UPDATE`
	touchProjectQuery       = `UPDATE projects SET updated_at=NOW() WHERE id=$1`
	renameProjectQuery      = `UPDATE projects SET title=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + projectColumns
	setArchivedQuery        = `UPDATE projects SET archived=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + projectColumns
	setProjectGroupQuery    = `UPDATE projects SET group_id=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + projectColumns
	deleteProjectQuery      = `DELETE FROM projects WHERE id=$1`
	listProjectsQuery       = `
SELECT ` + projectColumns + `
FROM projects
WHERE (owner_id=$1 OR ($2::bigint IS NOT NULL AND group_id=$2))
  AND ($3 OR archived=false)
ORDER BY updated_at DESC, id DESC`

	headerColumns         = `id, project_id, kind, title, position`
	insertHeaderQuery     = `INSERT INTO headers(project_id, kind, title, position) VALUES ($1, $2, $3, $4) RETURNING ` + headerColumns
	selectHeaderQuery     = `SELECT ` + headerColumns + ` FROM headers WHERE id=$1`
	selectHeadersQuery    = `SELECT ` + headerColumns + ` FROM headers WHERE project_id=$1 ORDER BY kind DESC, position, id`
	selectKindHeaders     = `SELECT ` + headerColumns + ` FROM headers WHERE project_id=$1 AND kind=$2 ORDER BY position, id`
	countKindHeaders      = `SELECT COUNT(*) FROM headers WHERE project_id=$1 AND kind=$2`
	renameHeaderQuery     = `UPDATE headers SET title=$2 WHERE id=$1 RETURNING ` + headerColumns
	deleteHeaderQuery     = `DELETE FROM headers WHERE id=$1`
	writeHeaderPositions  = `UPDATE headers h SET position = v.pos - 1 FROM unnest($1::bigint[]) WITH ORDINALITY AS v(id, pos) WHERE h.id = v.id`
	compactHeadersQuery   = `
UPDATE headers h SET position = s.rn
FROM (
    SELECT id, ROW_NUMBER() OVER (PARTITION BY kind ORDER BY position, id) - 1 AS rn
    FROM headers WHERE project_id=$1
) s
WHERE h.id = s.id AND h.position <> s.rn`

	taskColumns        = `id, project_id, row_id, column_id, text, done, position, created_at`
	insertTaskQuery    = `INSERT INTO tasks(project_id, row_id, column_id, text, done, position) VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + taskColumns
	selectTaskQuery    = `SELECT ` + taskColumns + ` FROM tasks WHERE id=$1`
	selectTasksQuery   = `SELECT ` + taskColumns + ` FROM tasks WHERE project_id=$1 ORDER BY row_id, column_id, position, id`
	selectCellTaskIDs  = `SELECT id FROM tasks WHERE row_id=$1 AND column_id=$2 ORDER BY position, id`
	countCellTasks     = `SELECT COUNT(*) FROM tasks WHERE row_id=$1 AND column_id=$2`
	updateTaskQuery    = `UPDATE tasks SET text=COALESCE($2, text), done=COALESCE($3, done) WHERE id=$1 RETURNING ` + taskColumns
	setTaskCellQuery   = `UPDATE tasks SET row_id=$2, column_id=$3 WHERE id=$1`
	deleteTaskQuery    = `DELETE FROM tasks WHERE id=$1`
	deleteDoneQuery    = `DELETE FROM tasks WHERE project_id=$1 AND done=true`
	writeTaskPositions = `UPDATE tasks t SET position = v.pos - 1 FROM unnest($1::bigint[]) WITH ORDINALITY AS v(id, pos) WHERE t.id = v.id`
	compactTasksQuery  = `
UPDATE tasks t SET position = s.rn
FROM (
    SELECT id, ROW_NUMBER() OVER (PARTITION BY row_id, column_id ORDER BY position, id) - 1 AS rn
    FROM tasks WHERE project_id=$1
) s
WHERE t.id = s.id AND t.position <> s.rn`
)

func scanProject(row pgx.Row) (*entities.Project, error) {
	var pr entities.Project
	if err := row.Scan(&pr.ID, &pr.OwnerID, &pr.Title, &pr.GroupID, &pr.Archived, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, err
	}
	return &pr, nil
}

func scanHeader(row pgx.Row) (*entities.Header, error) {
	var h entities.Header
	if err := row.Scan(&h.ID, &h.ProjectID, &h.Kind, &h.Title, &h.Order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrHeaderNotFound
		}
		return nil, err
	}
	return &h, nil
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var t entities.Task
	if err := row.Scan(&t.ID, &t.ProjectID, &t.RowID, &t.ColumnID, &t.Text, &t.Done, &t.Order, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CreateProject inserts a project with its headers if the owner is under limit.
func (p *Postgres) CreateProject(ctx context.Context, pr entities.Project, rows, columns []string, limit int) (*entities.Grid, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	grid, err := p.createProjectTx(ctx, tx, pr.OwnerID, pr.Title, rows, columns, limit)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("project created", "project_id", grid.Project.ID, "owner_id", pr.OwnerID,
		"rows", len(grid.Rows), "columns", len(grid.Columns))
	return grid, nil
}

// GetProject fetches a project without its grid.
func (p *Postgres) GetProject(ctx context.Context, projectID int64) (*entities.Project, error) {
	pr, err := scanProject(p.db.QueryRow(ctx, selectProjectQuery, projectID))
	if err != nil && !errors.Is(err, entities.ErrProjectNotFound) {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return pr, err
}

// GetGrid fetches a project with ordered headers and tasks.
func (p *Postgres) GetGrid(ctx context.Context, projectID int64) (*entities.Grid, error) {
	return p.loadGrid(ctx, p.db, projectID)
}

// ListProjects returns projects owned by the user or shared with their group.
func (p *Postgres) ListProjects(ctx context.Context, userID string, groupID *int64, includeArchived bool) ([]entities.Project, error) {
	rows, err := p.db.Query(ctx, listProjectsQuery, userID, groupID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		pr, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// RenameProject updates the project title.
func (p *Postgres) RenameProject(ctx context.Context, projectID int64, title string) (*entities.Project, error) {
	pr, err := scanProject(p.db.QueryRow(ctx, renameProjectQuery, projectID, title))
	if err != nil && !errors.Is(err, entities.ErrProjectNotFound) {
		return nil, fmt.Errorf("rename project: %w", err)
	}
	return pr, err
}

// SetArchived archives or restores a project. Restoring counts against limit.
func (p *Postgres) SetArchived(ctx context.Context, projectID int64, archived bool, limit int) (*entities.Project, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pr, err := scanProject(tx.QueryRow(ctx, selectProjectForUpdate, projectID))
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lock project: %w", err)
	}
	if pr.Archived == archived {
		return pr, nil
	}

	if !archived {
		if _, err := tx.Exec(ctx, lockOwnerQuery, pr.OwnerID); err != nil {
			return nil, fmt.Errorf("lock owner: %w", err)
		}
		var active int
		if err := tx.QueryRow(ctx, countActiveProjects, pr.OwnerID).Scan(&active); err != nil {
			return nil, fmt.Errorf("count projects: %w", err)
		}
		if !entities.Allows(limit, active) {
			return nil, entities.ErrTierLimit
		}
	}

	updated, err := scanProject(tx.QueryRow(ctx, setArchivedQuery, projectID, archived))
	if err != nil {
		return nil, fmt.Errorf("set archived: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// SetProjectGroup shares a project with a group, or unshares it when groupID is nil.
func (p *Postgres) SetProjectGroup(ctx context.Context, projectID int64, groupID *int64) (*entities.Project, error) {
	pr, err := scanProject(p.db.QueryRow(ctx, setProjectGroupQuery, projectID, groupID))
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("set project group: %w", err)
	}
	p.log.Infow("project sharing changed", "project_id", projectID, "group_id", groupID)
	return pr, nil
}

// DeleteProject removes a project with its headers and tasks.
func (p *Postgres) DeleteProject(ctx context.Context, projectID int64) error {
	tag, err := p.db.Exec(ctx, deleteProjectQuery, projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrProjectNotFound
	}
	p.log.Infow("project deleted", "project_id", projectID)
	return nil
}

// CloneProject copies a project's headers, and tasks in full mode, into a new project.
func (p *Postgres) CloneProject(ctx context.Context, srcID int64, ownerID, title string, mode entities.CloneMode, limit int) (*entities.Grid, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	src, err := p.loadGrid(ctx, tx, srcID)
	if err != nil {
		return nil, err
	}

	grid, err := p.createProjectTx(ctx, tx, ownerID, title, entities.Titles(src.Rows), entities.Titles(src.Columns), limit)
	if err != nil {
		return nil, err
	}

	if mode == entities.CloneFull {
		headerMap := make(map[int64]int64, len(src.Rows)+len(src.Columns))
		for i, h := range src.Rows {
			headerMap[h.ID] = grid.Rows[i].ID
		}
		for i, h := range src.Columns {
			headerMap[h.ID] = grid.Columns[i].ID
		}
		for _, t := range src.Tasks {
			created, err := scanTask(tx.QueryRow(ctx, insertTaskQuery,
				grid.Project.ID, headerMap[t.RowID], headerMap[t.ColumnID], t.Text, t.Done, t.Order))
			if err != nil {
				return nil, fmt.Errorf("copy task: %w", err)
			}
			grid.Tasks = append(grid.Tasks, *created)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("project cloned", "src_id", srcID, "project_id", grid.Project.ID, "mode", mode, "tasks", len(grid.Tasks))
	return grid, nil
}

// AddHeader appends a row or column to a project.
func (p *Postgres) AddHeader(ctx context.Context, projectID int64, kind entities.HeaderKind, title string) (*entities.Header, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := p.lockProject(ctx, tx, projectID); err != nil {
		return nil, err
	}

	var count int
	if err := tx.QueryRow(ctx, countKindHeaders, projectID, kind).Scan(&count); err != nil {
		return nil, fmt.Errorf("count headers: %w", err)
	}
	h, err := scanHeader(tx.QueryRow(ctx, insertHeaderQuery, projectID, kind, title, count))
	if err != nil {
		return nil, fmt.Errorf("insert header: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// GetHeader fetches a header by id.
func (p *Postgres) GetHeader(ctx context.Context, headerID int64) (*entities.Header, error) {
	h, err := scanHeader(p.db.QueryRow(ctx, selectHeaderQuery, headerID))
	if err != nil && !errors.Is(err, entities.ErrHeaderNotFound) {
		return nil, fmt.Errorf("get header: %w", err)
	}
	return h, err
}

// RenameHeader updates a header title.
func (p *Postgres) RenameHeader(ctx context.Context, headerID int64, title string) (*entities.Header, error) {
	h, err := scanHeader(p.db.QueryRow(ctx, renameHeaderQuery, headerID, title))
	if err != nil && !errors.Is(err, entities.ErrHeaderNotFound) {
		return nil, fmt.Errorf("rename header: %w", err)
	}
	return h, err
}

// MoveHeader places a header at index among headers of its kind.
func (p *Postgres) MoveHeader(ctx context.Context, headerID int64, index int) ([]entities.Header, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	h, err := scanHeader(tx.QueryRow(ctx, selectHeaderQuery, headerID))
	if err != nil {
		if errors.Is(err, entities.ErrHeaderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get header: %w", err)
	}
	if err := p.lockProject(ctx, tx, h.ProjectID); err != nil {
		return nil, err
	}

	headers, err := p.kindHeaders(ctx, tx, h.ProjectID, h.Kind)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(headers))
	for _, x := range headers {
		ids = append(ids, x.ID)
	}
	if _, err := tx.Exec(ctx, writeHeaderPositions, entities.Reorder(ids, headerID, index)); err != nil {
		return nil, fmt.Errorf("write header positions: %w", err)
	}

	headers, err = p.kindHeaders(ctx, tx, h.ProjectID, h.Kind)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return headers, nil
}

// DeleteHeader removes a header with its tasks; a project keeps at least one of each kind.
func (p *Postgres) DeleteHeader(ctx context.Context, headerID int64) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	h, err := scanHeader(tx.QueryRow(ctx, selectHeaderQuery, headerID))
	if err != nil {
		if errors.Is(err, entities.ErrHeaderNotFound) {
			return err
		}
		return fmt.Errorf("get header: %w", err)
	}
	if err := p.lockProject(ctx, tx, h.ProjectID); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRow(ctx, countKindHeaders, h.ProjectID, h.Kind).Scan(&count); err != nil {
		return fmt.Errorf("count headers: %w", err)
	}
	if count <= 1 {
		return fmt.Errorf("%w: a project needs at least one %s", entities.ErrInvalidArgument, h.Kind)
	}

	if _, err := tx.Exec(ctx, deleteHeaderQuery, headerID); err != nil {
		return fmt.Errorf("delete header: %w", err)
	}
	if _, err := tx.Exec(ctx, compactHeadersQuery, h.ProjectID); err != nil {
		return fmt.Errorf("compact headers: %w", err)
	}
	return tx.Commit(ctx)
}

// AddTask appends a task to its cell.
func (p *Postgres) AddTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := p.lockProject(ctx, tx, t.ProjectID); err != nil {
		return nil, err
	}
	if err := p.checkCell(ctx, tx, t.ProjectID, t.RowID, t.ColumnID); err != nil {
		return nil, err
	}

	var count int
	if err := tx.QueryRow(ctx, countCellTasks, t.RowID, t.ColumnID).Scan(&count); err != nil {
		return nil, fmt.Errorf("count cell tasks: %w", err)
	}
	created, err := scanTask(tx.QueryRow(ctx, insertTaskQuery, t.ProjectID, t.RowID, t.ColumnID, t.Text, t.Done, count))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetTask fetches a task by id.
func (p *Postgres) GetTask(ctx context.Context, taskID int64) (*entities.Task, error) {
	t, err := scanTask(p.db.QueryRow(ctx, selectTaskQuery, taskID))
	if err != nil && !errors.Is(err, entities.ErrTaskNotFound) {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, err
}

// UpdateTask changes text and/or done flag; nil leaves the field as is.
func (p *Postgres) UpdateTask(ctx context.Context, taskID int64, text *string, done *bool) (*entities.Task, error) {
	t, err := scanTask(p.db.QueryRow(ctx, updateTaskQuery, taskID, text, done))
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	if _, err := p.db.Exec(ctx, touchProjectQuery, t.ProjectID); err != nil {
		p.log.Warnw("failed to touch project", "error", err, "project_id", t.ProjectID)
	}
	return t, nil
}

// MoveTask moves a task to index within the target cell, compacting the source cell.
func (p *Postgres) MoveTask(ctx context.Context, taskID, rowID, columnID int64, index int) (*entities.Task, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanTask(tx.QueryRow(ctx, selectTaskQuery, taskID))
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if err := p.lockProject(ctx, tx, t.ProjectID); err != nil {
		return nil, err
	}
	if err := p.checkCell(ctx, tx, t.ProjectID, rowID, columnID); err != nil {
		return nil, err
	}

	source, err := collectIDs(ctx, tx, selectCellTaskIDs, t.RowID, t.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("select source cell: %w", err)
	}
	source = entities.Without(source, taskID)

	target := source
	if rowID != t.RowID || columnID != t.ColumnID {
		if _, err := tx.Exec(ctx, writeTaskPositions, source); err != nil {
			return nil, fmt.Errorf("compact source cell: %w", err)
		}
		if target, err = collectIDs(ctx, tx, selectCellTaskIDs, rowID, columnID); err != nil {
			return nil, fmt.Errorf("select target cell: %w", err)
		}
		if _, err := tx.Exec(ctx, setTaskCellQuery, taskID, rowID, columnID); err != nil {
			return nil, fmt.Errorf("move task: %w", err)
		}
	}
	if _, err := tx.Exec(ctx, writeTaskPositions, entities.Insert(target, taskID, index)); err != nil {
		return nil, fmt.Errorf("write task positions: %w", err)
	}

	moved, err := scanTask(tx.QueryRow(ctx, selectTaskQuery, taskID))
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return moved, nil
}

// DeleteTask removes a task and compacts its cell.
func (p *Postgres) DeleteTask(ctx context.Context, taskID int64) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanTask(tx.QueryRow(ctx, selectTaskQuery, taskID))
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("get task: %w", err)
	}
	if err := p.lockProject(ctx, tx, t.ProjectID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deleteTaskQuery, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if _, err := tx.Exec(ctx, compactTasksQuery, t.ProjectID); err != nil {
		return fmt.Errorf("compact tasks: %w", err)
	}
	return tx.Commit(ctx)
}

// ClearCompleted deletes done tasks of a project and returns how many were removed.
func (p *Postgres) ClearCompleted(ctx context.Context, projectID int64) (int, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := p.lockProject(ctx, tx, projectID); err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, deleteDoneQuery, projectID)
	if err != nil {
		return 0, fmt.Errorf("delete done tasks: %w", err)
	}
	if _, err := tx.Exec(ctx, compactTasksQuery, projectID); err != nil {
		return 0, fmt.Errorf("compact tasks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (p *Postgres) createProjectTx(ctx context.Context, tx pgx.Tx, ownerID, title string, rows, columns []string, limit int) (*entities.Grid, error) {
	if _, err := tx.Exec(ctx, lockOwnerQuery, ownerID); err != nil {
		return nil, fmt.Errorf("lock owner: %w", err)
	}
	var active int
	if err := tx.QueryRow(ctx, countActiveProjects, ownerID).Scan(&active); err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	if !entities.Allows(limit, active) {
		return nil, entities.ErrTierLimit
	}

	pr, err := scanProject(tx.QueryRow(ctx, insertProjectQuery, ownerID, title))
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	grid := &entities.Grid{Project: *pr, Tasks: make([]entities.Task, 0)}
	for i, t := range rows {
		h, err := scanHeader(tx.QueryRow(ctx, insertHeaderQuery, pr.ID, entities.KindRow, t, i))
		if err != nil {
			return nil, fmt.Errorf("insert row: %w", err)
		}
		grid.Rows = append(grid.Rows, *h)
	}
	for i, t := range columns {
		h, err := scanHeader(tx.QueryRow(ctx, insertHeaderQuery, pr.ID, entities.KindColumn, t, i))
		if err != nil {
			return nil, fmt.Errorf("insert column: %w", err)
		}
		grid.Columns = append(grid.Columns, *h)
	}
	return grid, nil
}

func (p *Postgres) loadGrid(ctx context.Context, q querier, projectID int64) (*entities.Grid, error) {
	pr, err := scanProject(q.QueryRow(ctx, selectProjectQuery, projectID))
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	grid := &entities.Grid{
		Project: *pr,
		Rows:    make([]entities.Header, 0),
		Columns: make([]entities.Header, 0),
		Tasks:   make([]entities.Task, 0),
	}

	rows, err := q.Query(ctx, selectHeadersQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("get headers: %w", err)
	}
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan header: %w", err)
		}
		if h.Kind == entities.KindRow {
			grid.Rows = append(grid.Rows, *h)
		} else {
			grid.Columns = append(grid.Columns, *h)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate headers: %w", err)
	}

	taskRows, err := q.Query(ctx, selectTasksQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	defer taskRows.Close()
	for taskRows.Next() {
		t, err := scanTask(taskRows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		grid.Tasks = append(grid.Tasks, *t)
	}
	if err := taskRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return grid, nil
}

func (p *Postgres) kindHeaders(ctx context.Context, q querier, projectID int64, kind entities.HeaderKind) ([]entities.Header, error) {
	rows, err := q.Query(ctx, selectKindHeaders, projectID, kind)
	if err != nil {
		return nil, fmt.Errorf("get headers: %w", err)
	}
	defer rows.Close()

	headers := make([]entities.Header, 0)
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan header: %w", err)
		}
		headers = append(headers, *h)
	}
	return headers, rows.Err()
}

// lockProject serializes grid edits on a project and bumps its updated_at.
func (p *Postgres) lockProject(ctx context.Context, tx pgx.Tx, projectID int64) error {
	tag, err := tx.Exec(ctx, touchProjectQuery, projectID)
	if err != nil {
		return fmt.Errorf("lock project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrProjectNotFound
	}
	return nil
}

func (p *Postgres) checkCell(ctx context.Context, tx pgx.Tx, projectID, rowID, columnID int64) error {
	for _, ref := range []struct {
		id   int64
		kind entities.HeaderKind
	}{{rowID, entities.KindRow}, {columnID, entities.KindColumn}} {
		h, err := scanHeader(tx.QueryRow(ctx, selectHeaderQuery, ref.id))
		if err != nil {
			if errors.Is(err, entities.ErrHeaderNotFound) {
				return err
			}
			return fmt.Errorf("get header: %w", err)
		}
		if h.ProjectID != projectID || h.Kind != ref.kind {
			return fmt.Errorf("%w: %s %d is not part of project %d", entities.ErrHeaderNotFound, ref.kind, ref.id, projectID)
		}
	}
	return nil
}
