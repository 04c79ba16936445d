package upgrade

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/product-note-service/internal/dao"
	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/model"
	"github.com/haierkeys/product-note-service/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "db.sqlite3"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRun_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Execute(db, zap.NewNop(), "1.0.0", true))

	assert.True(t, db.Migrator().HasTable(&model.Product{}))
	assert.True(t, db.Migrator().HasColumn(&model.ProductNote{}, "product_version_id"))
	assert.False(t, IsLegacy(db))

	var versions []SchemaVersion
	require.NoError(t, db.Order("version").Find(&versions).Error)
	require.Len(t, versions, 2)
	assert.Equal(t, "0.2.0", versions[0].Version)
	assert.Equal(t, "0.2.1", versions[1].Version)

	// 再次执行不会重复记录
	require.NoError(t, Execute(db, zap.NewNop(), "1.0.0", true))
	var count int64
	require.NoError(t, db.Model(&SchemaVersion{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRun_SkipsMigrationsNewerThanApp(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Execute(db, zap.NewNop(), "0.2.0", true))

	var versions []SchemaVersion
	require.NoError(t, db.Find(&versions).Error)
	require.Len(t, versions, 1)
	assert.Equal(t, "0.2.0", versions[0].Version)
}

func TestVersionAwareNoteMigrate_UpgradesLegacyTable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.LegacyProductNote{}))
	require.True(t, IsLegacy(db))

	liveProduct := domain.NewID()
	require.NoError(t, db.Create(&model.Product{
		ID:        model.MustBinaryUUID(liveProduct),
		VersionID: model.MustBinaryUUID(domain.LiveVersionID),
		Name:      "Live",
		Active:    true,
		CreatedAt: timex.Now(),
	}).Error)

	kept := domain.NewID()
	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&model.LegacyProductNote{
		ID:        model.MustBinaryUUID(kept),
		ProductID: model.MustBinaryUUID(liveProduct),
		UserName:  "admin",
		Note:      "legacy note",
		Solved:    true,
		CreatedAt: timex.Time(created),
	}).Error)
	require.NoError(t, db.Create(&model.LegacyProductNote{
		ID:        model.MustBinaryUUID(domain.NewID()),
		ProductID: model.MustBinaryUUID(domain.NewID()),
		Note:      "orphan",
		CreatedAt: timex.Now(),
	}).Error)

	require.NoError(t, Execute(db, zap.NewNop(), "1.0.0", true))

	assert.False(t, IsLegacy(db))
	assert.False(t, db.Migrator().HasColumn(&model.ProductNote{}, "user_name"))
	assert.False(t, db.Migrator().HasTable(legacyProductNoteTable))
	assert.True(t, db.Migrator().HasIndex(&model.ProductNote{}, "idx_product_note_product"))

	repo := dao.NewProductNoteRepository(dao.New(db))
	notes, err := repo.Search(context.Background(), domain.NewCriteria())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, kept, notes[0].ID)
	assert.Equal(t, domain.LiveVersionID, notes[0].ProductVersionID)
	assert.Equal(t, "legacy note", notes[0].Note)
	assert.True(t, notes[0].Solved)
	assert.True(t, notes[0].CreatedAt.Equal(created))
}

func TestProductNoteIndexMigrate_CreatesMissingIndex(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, model.AutoMigrateAll(db))
	require.NoError(t, db.Migrator().DropIndex(&model.ProductNote{}, "idx_product_note_product"))

	m := &ProductNoteIndexMigrate{}
	require.NoError(t, m.Up(db, context.Background()))
	assert.True(t, db.Migrator().HasIndex(&model.ProductNote{}, "idx_product_note_product"))

	// 已存在时不报错
	require.NoError(t, m.Up(db, context.Background()))
}
