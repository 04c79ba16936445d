package model

import "github.com/haierkeys/product-note-service/pkg/timex"

const TableNameProduct = "product"

// Product mapped from table <product>
// The catalogue owns this table; it is created here only for standalone deployments.
type Product struct {
	ID            BinaryUUID  `gorm:"column:id;primaryKey" json:"id"`
	VersionID     BinaryUUID  `gorm:"column:version_id;primaryKey" json:"versionId"`
	ParentID      *BinaryUUID `gorm:"column:parent_id" json:"parentId"`
	ProductNumber string      `gorm:"column:product_number;size:64" json:"productNumber"`
	Name          string      `gorm:"column:name;size:255" json:"name"`
	Active        bool        `gorm:"column:active;not null" json:"active"`
	CreatedAt     timex.Time  `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt     timex.Time  `gorm:"column:updated_at;default:NULL;autoUpdateTime:false" json:"updatedAt"`
}

// TableName Product's table name
func (*Product) TableName() string {
	return TableNameProduct
}
