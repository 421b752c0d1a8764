package postgres_test

import (
	models "Mixtape/models/postgres"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.Participant{}))
	return db
}

// The artist columns are addressed by name in upsert assignment lists and in
// the dashboard's raw SQL, so the migrated schema must expose them as
// artist_1..artist_3.
func TestParticipantArtistColumnNames(t *testing.T) {
	db := newTestDB(t)

	p := models.Participant{
		Name:    "Alice",
		Email:   "alice@example.com",
		Artist1: "Radiohead",
		Artist2: "Björk",
		Artist3: "Portishead",
	}
	require.NoError(t, db.Create(&p).Error)

	var a1, a2, a3 string
	row := db.Raw("SELECT artist_1, artist_2, artist_3 FROM participants WHERE email = ?",
		"alice@example.com").Row()
	require.NoError(t, row.Scan(&a1, &a2, &a3))
	assert.Equal(t, "Radiohead", a1)
	assert.Equal(t, "Björk", a2)
	assert.Equal(t, "Portishead", a3)
}

func TestParticipantEmailStoredFolded(t *testing.T) {
	db := newTestDB(t)

	p := models.Participant{
		Name:    "Bob",
		Email:   " Bob@Example.COM ",
		Artist1: "Kraftwerk",
		Artist2: "Can",
		Artist3: "Neu!",
	}
	require.NoError(t, db.Create(&p).Error)
	assert.Equal(t, "bob@example.com", p.Email)
	assert.NotEmpty(t, p.ID, "id is minted on create")
}
