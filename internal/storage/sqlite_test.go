package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSchema(db))
	return NewStore(db)
}

func TestSaveAndQueryUsage(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRender("ACME", "1d", "scene", 100))
	require.NoError(t, s.SaveRender("ACME", "1w", "scene", 110))
	require.NoError(t, s.SaveRender("ZETA", "1d", "preview", 120))
	require.NoError(t, s.SaveRender("ZETA", "1d", "preview", 10)) // before cutoff

	usage, err := s.UsageByKind(50)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"scene": 2, "preview": 1}, usage)

	top, err := s.TopSymbols(50, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME"}, top)
}

func TestUsageEmpty(t *testing.T) {
	s := openTestStore(t)
	usage, err := s.UsageByKind(0)
	require.NoError(t, err)
	assert.Empty(t, usage)
}
