package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdojo/salesdojo/internal/models"
)

func setupSQLite(t *testing.T) *SQLiteCatalog {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	c, err := NewSQLiteCatalog(dbPath)
	require.NoError(t, err)
	require.NoError(t, c.Migrate(context.Background()))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteCatalog_MigrateSeedsBuiltins(t *testing.T) {
	c := setupSQLite(t)

	scenarios, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "cold-call-vp-eng", scenarios[0].ID)
}

func TestSQLiteCatalog_MigrateIsIdempotent(t *testing.T) {
	c := setupSQLite(t)
	require.NoError(t, c.Migrate(context.Background()))

	scenarios, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, scenarios, 3, "re-migrating must not duplicate seeds")
}

func TestSQLiteCatalog_GetRoundTrip(t *testing.T) {
	c := setupSQLite(t)

	sc, err := c.Get(context.Background(), "discovery-cfo")
	require.NoError(t, err)
	assert.Equal(t, "Michael Torres", sc.ProspectName)
	assert.Equal(t, "Chief Financial Officer", sc.ProspectRole)
	assert.Equal(t, models.MoodNeutral, sc.InitialMood)
	assert.Equal(t, models.DifficultyMedium, sc.Difficulty)
	assert.Equal(t, []string{
		"Time-consuming manual consolidation",
		"Lack of real-time visibility",
		"Version control issues",
		"Difficulty creating what-if scenarios",
	}, sc.PainPoints)
}

func TestSQLiteCatalog_GetMiss(t *testing.T) {
	c := setupSQLite(t)

	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteCatalog_PutNewAndReplace(t *testing.T) {
	c := setupSQLite(t)
	ctx := context.Background()

	custom := &models.Scenario{
		ID:           "renewal-cto",
		Title:        "Renewal Call with CTO",
		ProspectName: "Ana Ruiz",
		ProspectRole: "CTO",
		Company:      "Datakraft",
		PainPoints:   []string{"Flaky integrations"},
		InitialMood:  models.MoodDefensive,
		Difficulty:   models.DifficultyHard,
	}
	require.NoError(t, c.Put(ctx, custom))

	got, err := c.Get(ctx, "renewal-cto")
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", got.ProspectName)
	assert.Equal(t, models.MoodDefensive, got.InitialMood)

	custom.Title = "Renewal Call with CTO (v2)"
	require.NoError(t, c.Put(ctx, custom))

	got, err = c.Get(ctx, "renewal-cto")
	require.NoError(t, err)
	assert.Equal(t, "Renewal Call with CTO (v2)", got.Title)

	scenarios, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, scenarios, 4, "replace must not duplicate")
	assert.Equal(t, "renewal-cto", scenarios[3].ID, "imports list after seeds")
}
