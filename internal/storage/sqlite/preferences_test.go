package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SavePreference(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.SavePreference(ctx, 42, "greedy", "yes"))
	require.NoError(t, s.SavePreference(ctx, 42, "greedy", "no"))
	require.NoError(t, s.SavePreference(ctx, 7, "silent", "yes"))

	prefs, err := s.LoadPreferences(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[int64]map[string]string{
		42: {"greedy": "no"},
		7:  {"silent": "yes"},
	}, prefs)

	var count int
	require.NoError(t, s.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM preferences WHERE user_id = 42").Scan(&count))
	assert.Equal(t, 1, count)
}
