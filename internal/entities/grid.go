// Package entities contains core business entities.
package entities

import "time"

// HeaderKind distinguishes row headers from column headers.
type HeaderKind string

const (
	KindRow    HeaderKind = "row"
	KindColumn HeaderKind = "column"
)

// Valid reports whether k is a known header kind.
func (k HeaderKind) Valid() bool {
	return k == KindRow || k == KindColumn
}

var (
	// DefaultRows are created for a project without explicit rows.
	DefaultRows = []string{"Today", "This week", "Later"}
	// DefaultColumns are created for a project without explicit columns.
	DefaultColumns = []string{"To do", "Doing", "Done"}
)

// Project is a grid owned by a user and optionally shared with a group.
type Project struct {
	ID        int64
	OwnerID   string
	Title     string
	GroupID   *int64
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Header is a row or column of a grid.
type Header struct {
	ID        int64
	ProjectID int64
	Kind      HeaderKind
	Title     string
	Order     int
}

// Task is a cell item at the crossing of a row and a column.
type Task struct {
	ID        int64
	ProjectID int64
	RowID     int64
	ColumnID  int64
	Text      string
	Done      bool
	Order     int
	CreatedAt time.Time
}

// Grid is a project with its headers and tasks, all sorted by order.
type Grid struct {
	Project Project
	Rows    []Header
	Columns []Header
	Tasks   []Task
}

// Titles returns header titles in order.
func Titles(headers []Header) []string {
	res := make([]string, 0, len(headers))
	for _, h := range headers {
		res = append(res, h.Title)
	}
	return res
}

// Reorder moves id to index within ids and returns the new sequence.
// The index is clamped to the valid range; an unknown id leaves ids unchanged.
func Reorder(ids []int64, id int64, index int) []int64 {
	pos := -1
	for i, v := range ids {
		if v == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return append([]int64(nil), ids...)
	}
	rest := make([]int64, 0, len(ids)-1)
	rest = append(rest, ids[:pos]...)
	rest = append(rest, ids[pos+1:]...)
	return Insert(rest, id, index)
}

// Insert places id at index within ids, clamping the index.
func Insert(ids []int64, id int64, index int) []int64 {
	if index < 0 {
		index = 0
	}
	if index > len(ids) {
		index = len(ids)
	}
	res := make([]int64, 0, len(ids)+1)
	res = append(res, ids[:index]...)
	res = append(res, id)
	res = append(res, ids[index:]...)
	return res
}

// Without returns ids with id removed.
func Without(ids []int64, id int64) []int64 {
	res := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			res = append(res, v)
		}
	}
	return res
}

// CloneMode selects what a project clone copies.
type CloneMode string

const (
	// CloneStructure copies headers only.
	CloneStructure CloneMode = "structure"
	// CloneFull copies headers and tasks.
	CloneFull CloneMode = "full"
)

// Valid reports whether m is a known clone mode.
func (m CloneMode) Valid() bool {
	return m == CloneStructure || m == CloneFull
}

// PersonalTemplate is a saved grid layout.
type PersonalTemplate struct {
	ID        int64
	OwnerID   string
	Name      string
	Rows      []string
	Columns   []string
	CreatedAt time.Time
}
