package upgrade

import (
	"context"

	"github.com/haierkeys/product-note-service/internal/model"

	"gorm.io/gorm"
)

// ProductNoteIndexMigrate adds the (product_id, product_version_id) lookup index
// to note tables that were created without it.
// ProductNoteIndexMigrate 为备注表补充商品查询索引
type ProductNoteIndexMigrate struct{}

func (m *ProductNoteIndexMigrate) Version() string {
	return "0.2.1"
}

func (m *ProductNoteIndexMigrate) Description() string {
	return "Ensure idx_product_note_product on academy_product_note"
}

func (m *ProductNoteIndexMigrate) Up(db *gorm.DB, ctx context.Context) error {
	migrator := db.WithContext(ctx).Migrator()
	if !migrator.HasTable(&model.ProductNote{}) || IsLegacy(db) {
		return nil
	}
	if migrator.HasIndex(&model.ProductNote{}, "idx_product_note_product") {
		return nil
	}
	return migrator.CreateIndex(&model.ProductNote{}, "idx_product_note_product")
}
