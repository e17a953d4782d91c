package crmexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteLeads(t *testing.T) {
	contacted := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	leads := []entities.Lead{
		{ID: 1, Name: "Ann", Email: "ann@club.org", CompanyName: "Chess Club", Kind: entities.KindSociety,
			Status: entities.LeadContacted, FollowUps: 2, LastContactedAt: &contacted, CreatedAt: contacted},
		{ID: 2, Name: "Bob", Email: "bob@corp.com", Kind: entities.KindB2B, Status: entities.LeadNew, CreatedAt: contacted},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLeads(&buf, leads))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Headers, rows[0])
	require.Equal(t, "ann@club.org", rows[1][2])
	require.Equal(t, "Chess Club", rows[1][3])
	require.Equal(t, "contacted", rows[1][5])
	require.Equal(t, "2026-03-01 10:00:00", rows[1][7])
	require.Equal(t, "bob@corp.com", rows[2][2])
}

func TestWriteLeads_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLeads(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
