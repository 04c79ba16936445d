package upgrade

import (
	"context"
	"fmt"

	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/model"

	"gorm.io/gorm"
)

const legacyProductNoteTable = model.TableNameProductNote + "_legacy"

// VersionAwareNoteMigrate rebuilds the legacy note table (product_id only, user_name column)
// into the version-aware layout keyed on (product_id, product_version_id).
// Legacy rows are attached to the live product version; rows whose product has no
// live version cannot satisfy the foreign key and are dropped.
// VersionAwareNoteMigrate 将旧版备注表升级为带版本的结构
type VersionAwareNoteMigrate struct{}

func (m *VersionAwareNoteMigrate) Version() string {
	return "0.2.0"
}

func (m *VersionAwareNoteMigrate) Description() string {
	return "Rebuild academy_product_note with product_version_id and a composite product foreign key"
}

// IsLegacy reports whether the note table exists in the first generation layout
func IsLegacy(db *gorm.DB) bool {
	migrator := db.Migrator()
	return migrator.HasTable(model.TableNameProductNote) &&
		!migrator.HasColumn(&model.ProductNote{}, "product_version_id")
}

func (m *VersionAwareNoteMigrate) Up(db *gorm.DB, ctx context.Context) error {
	db = db.WithContext(ctx)
	if !IsLegacy(db) {
		return nil
	}

	migrator := db.Migrator()
	if err := migrator.RenameTable(model.TableNameProductNote, legacyProductNoteTable); err != nil {
		return fmt.Errorf("rename legacy table: %w", err)
	}

	if err := model.AutoMigrateAll(db); err != nil {
		return fmt.Errorf("create version aware table: %w", err)
	}

	live := model.MustBinaryUUID(domain.LiveVersionID)
	copySQL := fmt.Sprintf(
		"INSERT INTO %s (id, product_id, product_version_id, note, solved, created_at, updated_at) "+
			"SELECT n.id, n.product_id, ?, n.note, n.solved, n.created_at, n.updated_at FROM %s n "+
			"WHERE EXISTS (SELECT 1 FROM %s p WHERE p.id = n.product_id AND p.version_id = ?)",
		model.TableNameProductNote, legacyProductNoteTable, model.TableNameProduct,
	)
	if err := db.Exec(copySQL, live, live).Error; err != nil {
		return fmt.Errorf("copy legacy notes: %w", err)
	}

	if err := migrator.DropTable(legacyProductNoteTable); err != nil {
		return fmt.Errorf("drop legacy table: %w", err)
	}
	return nil
}
