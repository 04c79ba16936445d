package dao

import (
	"context"
	"time"

	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/model"

	"gorm.io/gorm/clause"
)

// productRepository implements domain.ProductRepository interface.
// Only the live version of a product is visible.
type productRepository struct {
	dao       *Dao
	liveVerID model.BinaryUUID
}

// NewProductRepository creates a ProductRepository instance
func NewProductRepository(dao *Dao) domain.ProductRepository {
	return &productRepository{dao: dao, liveVerID: model.MustBinaryUUID(domain.LiveVersionID)}
}

var _ domain.ProductRepository = (*productRepository)(nil)

func productToDomain(m *model.Product) *domain.Product {
	if m == nil {
		return nil
	}
	p := &domain.Product{
		ID:            m.ID.String(),
		VersionID:     m.VersionID.String(),
		ProductNumber: m.ProductNumber,
		Name:          m.Name,
		Active:        m.Active,
		CreatedAt:     time.Time(m.CreatedAt),
	}
	if m.ParentID != nil {
		p.ParentID = m.ParentID.String()
	}
	if !m.UpdatedAt.IsZero() {
		p.UpdatedAt = domain.TimePtr(time.Time(m.UpdatedAt))
	}
	return p
}

// Search 按条件查询线上版本商品，可加载 productNotes（按创建时间倒序）
func (r *productRepository) Search(ctx context.Context, criteria *domain.Criteria) ([]*domain.Product, error) {
	db := r.dao.DB(ctx).Model(&model.Product{}).Where("version_id = ?", r.liveVerID)
	db, err := productFields.applyCriteria(db, criteria)
	if err != nil {
		return nil, domain.NewStoreError(domain.ProductEntity, "search", err)
	}

	var ms []*model.Product
	if err := db.Find(&ms).Error; err != nil {
		return nil, domain.NewStoreError(domain.ProductEntity, "search", err)
	}

	products := make([]*domain.Product, 0, len(ms))
	for _, m := range ms {
		products = append(products, productToDomain(m))
	}

	if criteria != nil && criteria.HasAssociation(domain.ProductNotesAssociation) && len(ms) > 0 {
		if err := r.loadNotes(ctx, products); err != nil {
			return nil, domain.NewStoreError(domain.ProductEntity, "search", err)
		}
	}
	return products, nil
}

// loadNotes fills Product.Notes, newest first
func (r *productRepository) loadNotes(ctx context.Context, products []*domain.Product) error {
	ids := make([]interface{}, 0, len(products))
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		id, err := model.ParseBinaryUUID(p.ID)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		byID[p.ID] = p
		p.Notes = []*domain.ProductNote{}
	}

	var notes []*model.ProductNote
	err := r.dao.DB(ctx).
		Where("product_id IN ?", ids).
		Where("product_version_id = ?", r.liveVerID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Find(&notes).Error
	if err != nil {
		return err
	}

	conv := &productNoteRepository{dao: r.dao}
	for _, n := range notes {
		if p, ok := byID[n.ProductID.String()]; ok {
			p.Notes = append(p.Notes, conv.toDomain(n))
		}
	}
	return nil
}
