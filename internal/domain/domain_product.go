package domain

import "time"

const (
	// ProductEntity 商品实体名
	ProductEntity = "product"

	// ProductNotesAssociation loads Product.Notes
	ProductNotesAssociation = "productNotes"
)

// Product is the read model of a catalogue product, only the live version is visible
// Product 商品只读模型
type Product struct {
	ID            string
	VersionID     string
	ParentID      string
	ProductNumber string
	Name          string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time

	// Notes is set only when the "productNotes" association was requested,
	// newest first
	Notes []*ProductNote
}
