package ideas

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *IdeaService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Idea{}))
	return NewIdeaService(db)
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	idea, err := svc.Create(owner, &CreateIdeaRequest{Title: "solar kettle", Description: "boil with sunlight"})
	require.NoError(t, err)

	assert.Equal(t, DefaultCategory, idea.Category)
	assert.NotNil(t, idea.Tags)
	assert.Empty(t, idea.Tags)
}

func TestCreateMissingFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(uuid.New(), &CreateIdeaRequest{Title: "no description"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestListByCategory(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	_, err := svc.Create(owner, &CreateIdeaRequest{Title: "a", Description: "x", Category: "work"})
	require.NoError(t, err)
	_, err = svc.Create(owner, &CreateIdeaRequest{Title: "b", Description: "x", Category: "home"})
	require.NoError(t, err)
	_, err = svc.Create(owner, &CreateIdeaRequest{Title: "c", Description: "x", Category: "work"})
	require.NoError(t, err)

	all, err := svc.List(owner, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	work, err := svc.List(owner, "work")
	require.NoError(t, err)
	assert.Len(t, work, 2)
	for _, idea := range work {
		assert.Equal(t, "work", idea.Category)
	}
}

func TestSearch(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	_, err := svc.Create(owner, &CreateIdeaRequest{
		Title: "Paint the fence", Description: "weekend project", Tags: []string{"Blue", "outdoors"},
	})
	require.NoError(t, err)
	_, err = svc.Create(owner, &CreateIdeaRequest{
		Title: "Blueprint archive", Description: "scan old drawings",
	})
	require.NoError(t, err)
	_, err = svc.Create(owner, &CreateIdeaRequest{
		Title: "Compost bin", Description: "for the garden",
	})
	require.NoError(t, err)

	// Title substring, case-insensitive.
	got, err := svc.Search(owner, "PAINT")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paint the fence", got[0].Title)

	// Tag match is exact: "blue" hits the tag "Blue" and the title
	// substring "Blueprint", but the tag alone is not a substring rule.
	got, err = svc.Search(owner, "blue")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// "outdoor" is not an exact tag and appears nowhere else.
	got, err = svc.Search(owner, "outdoor")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Description substring.
	got, err = svc.Search(owner, "garden")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Compost bin", got[0].Title)

	_, err = svc.Search(owner, "")
	assert.ErrorIs(t, err, ErrMissingQuery)
}

func TestSearchOwnerScoped(t *testing.T) {
	svc := newTestService(t)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Create(alice, &CreateIdeaRequest{Title: "secret plan", Description: "x"})
	require.NoError(t, err)

	got, err := svc.Search(bob, "secret")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateTags(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	idea, err := svc.Create(owner, &CreateIdeaRequest{Title: "a", Description: "x", Tags: []string{"one"}})
	require.NoError(t, err)

	tags := []string{"two", "three"}
	updated, err := svc.Update(owner, idea.ID, &UpdateIdeaRequest{Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, []string(updated.Tags))
	assert.Equal(t, "a", updated.Title)
}

func TestDeleteTwice(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	idea, err := svc.Create(owner, &CreateIdeaRequest{Title: "gone", Description: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner, idea.ID))
	assert.ErrorIs(t, svc.Delete(owner, idea.ID), ErrNotFound)
}

func TestBulkImport(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	existing, err := svc.Create(owner, &CreateIdeaRequest{Title: "already here", Description: "x"})
	require.NoError(t, err)

	count, err := svc.BulkImport(owner, []ImportIdeaRequest{
		{ID: &existing.ID, Title: "collides", Description: "x"},
		{Title: "fresh", Description: "y", Tags: []string{"imported"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.BulkImport(owner, []ImportIdeaRequest{{Title: "no description"}})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.BulkImport(owner, nil)
	assert.ErrorIs(t, err, ErrEmptyImport)
}
