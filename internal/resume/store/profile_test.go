package store_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	return db
}

func TestSeedPopulatesEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx, db))

	s := store.NewProfileStore(db)
	snapshot, err := s.Snapshot(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, snapshot.Projects)
	assert.NotEmpty(t, snapshot.Experiences)
	assert.NotEmpty(t, snapshot.Skills)
	assert.NotEmpty(t, snapshot.Education)
	assert.NotEmpty(t, snapshot.Certificates)
	assert.False(t, snapshot.IsEmpty())
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx, db))
	require.NoError(t, store.Seed(ctx, db))

	var count int64
	require.NoError(t, db.Model(&model.Project{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestSnapshotPreservesSerializedFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	project := &model.Project{
		Title:       "Test Project",
		Description: "A project used in tests.",
		TechStack:   []string{"Go", "Milvus"},
	}
	require.NoError(t, db.Create(project).Error)

	s := store.NewProfileStore(db)
	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Go", "Milvus"}, projects[0].TechStack)
}

func TestSnapshotOnEmptyDatabase(t *testing.T) {
	db := newTestDB(t)

	s := store.NewProfileStore(db)
	snapshot, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())
}

func TestMemoryVectorStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryVectorStore()

	records := []*store.VectorRecord{
		{ID: "project_1_0", Embedding: []float32{1, 0}, Type: "project", Title: "One", Content: "alpha"},
		{ID: "project_2_0", Embedding: []float32{0, 1}, Type: "project", Title: "Two", Content: "beta"},
	}
	require.NoError(t, s.Upsert(ctx, records))

	// Upserting the same ID must overwrite, not duplicate.
	require.NoError(t, s.Upsert(ctx, []*store.VectorRecord{
		{ID: "project_1_0", Embedding: []float32{1, 0}, Type: "project", Title: "One v2", Content: "alpha"},
	}))

	count, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	matches, err := s.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "project_1_0", matches[0].ID)
	assert.Equal(t, "One v2", matches[0].Title)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)

	require.NoError(t, s.Drop(ctx))
	count, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
