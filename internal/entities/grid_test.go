package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReorder(t *testing.T) {
	ids := []int64{1, 2, 3}

	require.Equal(t, []int64{3, 1, 2}, Reorder(ids, 3, 0))
	require.Equal(t, []int64{2, 3, 1}, Reorder(ids, 1, 10))
	require.Equal(t, []int64{2, 1, 3}, Reorder(ids, 2, -4))
	require.Equal(t, []int64{1, 2, 3}, Reorder(ids, 9, 0))
	require.Equal(t, []int64{1, 2, 3}, ids)
}

func TestInsertAndWithout(t *testing.T) {
	require.Equal(t, []int64{1, 9, 2}, Insert([]int64{1, 2}, 9, 1))
	require.Equal(t, []int64{1, 2, 9}, Insert([]int64{1, 2}, 9, 5))
	require.Equal(t, []int64{9}, Insert(nil, 9, 0))

	require.Equal(t, []int64{2, 3}, Without([]int64{1, 2, 1, 3}, 1))
	require.Empty(t, Without([]int64{4}, 4))
}

func TestTitles(t *testing.T) {
	headers := []Header{{Title: "Today"}, {Title: "Later"}}
	require.Equal(t, []string{"Today", "Later"}, Titles(headers))
	require.Empty(t, Titles(nil))
}

func TestKinds(t *testing.T) {
	require.True(t, KindRow.Valid())
	require.False(t, HeaderKind("cell").Valid())
	require.True(t, CloneFull.Valid())
	require.False(t, CloneMode("deep").Valid())
}
