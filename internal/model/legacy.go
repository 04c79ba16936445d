package model

import "github.com/haierkeys/product-note-service/pkg/timex"

// LegacyProductNote is the first generation layout of <academy_product_note>:
// keyed on product_id only and carrying the author's user name.
// LegacyProductNote 旧版表结构，仅用于升级
type LegacyProductNote struct {
	ID        BinaryUUID `gorm:"column:id;primaryKey"`
	ProductID BinaryUUID `gorm:"column:product_id;not null"`
	UserName  string     `gorm:"column:user_name;size:255"`
	Note      LongText   `gorm:"column:note;not null"`
	Solved    bool       `gorm:"column:solved;not null;default:false"`
	CreatedAt timex.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt timex.Time `gorm:"column:updated_at;default:NULL;autoUpdateTime:false"`
}

func (*LegacyProductNote) TableName() string {
	return TableNameProductNote
}
