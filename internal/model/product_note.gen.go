package model

import "github.com/haierkeys/product-note-service/pkg/timex"

const TableNameProductNote = "academy_product_note"

// ProductNote mapped from table <academy_product_note>
type ProductNote struct {
	ID               BinaryUUID `gorm:"column:id;primaryKey" json:"id"`
	ProductID        BinaryUUID `gorm:"column:product_id;not null;index:idx_product_note_product,priority:1" json:"productId"`
	ProductVersionID BinaryUUID `gorm:"column:product_version_id;not null;index:idx_product_note_product,priority:2" json:"productVersionId"`
	Note             LongText   `gorm:"column:note;not null" json:"note"`
	Solved           bool       `gorm:"column:solved;not null;default:false" json:"solved"`
	CreatedAt        timex.Time `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt        timex.Time `gorm:"column:updated_at;default:NULL;autoUpdateTime:false" json:"updatedAt"`

	Product *Product `gorm:"foreignKey:ProductID,ProductVersionID;references:ID,VersionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty"`
}

// TableName ProductNote's table name
func (*ProductNote) TableName() string {
	return TableNameProductNote
}
