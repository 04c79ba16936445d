package dao

import (
	"context"
	"time"

	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/model"
	"github.com/haierkeys/product-note-service/pkg/timex"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// productNoteRepository implements domain.ProductNoteRepository interface
type productNoteRepository struct {
	dao *Dao
}

// NewProductNoteRepository creates a ProductNoteRepository instance
func NewProductNoteRepository(dao *Dao) domain.ProductNoteRepository {
	return &productNoteRepository{dao: dao}
}

var _ domain.ProductNoteRepository = (*productNoteRepository)(nil)

// toDomain converts database model to domain model
func (r *productNoteRepository) toDomain(m *model.ProductNote) *domain.ProductNote {
	if m == nil {
		return nil
	}
	n := &domain.ProductNote{
		ID:               m.ID.String(),
		ProductID:        m.ProductID.String(),
		ProductVersionID: m.ProductVersionID.String(),
		Note:             string(m.Note),
		Solved:           m.Solved,
		CreatedAt:        time.Time(m.CreatedAt),
	}
	if !m.UpdatedAt.IsZero() {
		n.UpdatedAt = domain.TimePtr(time.Time(m.UpdatedAt))
	}
	if m.Product != nil {
		n.Product = productToDomain(m.Product)
	}
	return n
}

func (r *productNoteRepository) storeError(op string, err error) error {
	r.dao.logger.Debug("product note store failure", zap.String("op", op), zap.Error(err))
	return domain.NewStoreError(domain.ProductNoteEntity, op, err)
}

// Search 按条件查询备注
func (r *productNoteRepository) Search(ctx context.Context, criteria *domain.Criteria) ([]*domain.ProductNote, error) {
	db, err := productNoteFields.applyCriteria(r.dao.DB(ctx).Model(&model.ProductNote{}), criteria)
	if err != nil {
		return nil, r.storeError("search", err)
	}
	if criteria != nil && criteria.HasAssociation(domain.NoteProductAssociation) {
		db = db.Preload("Product")
	}

	var ms []*model.ProductNote
	if err := db.Find(&ms).Error; err != nil {
		return nil, r.storeError("search", err)
	}

	notes := make([]*domain.ProductNote, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// Upsert 插入或更新
func (r *productNoteRepository) Upsert(ctx context.Context, writes []domain.ProductNoteWrite) (*domain.WriteResult, error) {
	result, err := r.write(ctx, writes, true)
	if err != nil {
		return nil, r.storeError("upsert", err)
	}
	return result, nil
}

// Update 仅更新已存在的记录
func (r *productNoteRepository) Update(ctx context.Context, writes []domain.ProductNoteWrite) (*domain.WriteResult, error) {
	result, err := r.write(ctx, writes, false)
	if err != nil {
		return nil, r.storeError("update", err)
	}
	return result, nil
}

// Delete 物理删除
func (r *productNoteRepository) Delete(ctx context.Context, ids []string) (*domain.WriteResult, error) {
	result := domain.NewWriteResult()
	if len(ids) == 0 {
		return result, nil
	}

	parsed, err := parseIDs(ids)
	if err != nil {
		return nil, r.storeError("delete", err)
	}

	err = r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		existing, err := r.existing(tx, parsed)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			return nil
		}

		keys := make([]interface{}, 0, len(existing))
		for _, id := range existing {
			keys = append(keys, id)
		}
		if err := tx.Where("id IN ?", keys).Delete(&model.ProductNote{}).Error; err != nil {
			return err
		}

		// 按输入顺序返回，重复 ID 只记一次
		seen := make(map[model.BinaryUUID]bool, len(existing))
		for _, v := range parsed {
			id := v.(model.BinaryUUID)
			if existing[id.String()] == id && !seen[id] {
				seen[id] = true
				result.Add(domain.ProductNoteEntity, id.String())
			}
		}
		return nil
	})
	if err != nil {
		return nil, r.storeError("delete", err)
	}
	return result, nil
}

// existing returns the subset of ids present in the table, keyed by hex id
func (r *productNoteRepository) existing(tx *gorm.DB, ids []interface{}) (map[string]model.BinaryUUID, error) {
	out := make(map[string]model.BinaryUUID, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []model.BinaryUUID
	if err := tx.Model(&model.ProductNote{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id.String()] = id
	}
	return out, nil
}

// write applies writes in one transaction. With insert=false absent ids are skipped.
func (r *productNoteRepository) write(ctx context.Context, writes []domain.ProductNoteWrite, insert bool) (*domain.WriteResult, error) {
	result := domain.NewWriteResult()
	if len(writes) == 0 {
		return result, nil
	}

	ids := make([]model.BinaryUUID, len(writes))
	var keys []interface{}
	for i, w := range writes {
		if w.ID == "" {
			if !insert {
				return nil, errors.Wrapf(domain.ErrMissingField, "write %d: id", i)
			}
			continue
		}
		id, err := model.ParseBinaryUUID(w.ID)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrInvalidID, "write %d: %s", i, w.ID)
		}
		ids[i] = id
		keys = append(keys, id)
	}

	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		existing, err := r.existing(tx, keys)
		if err != nil {
			return err
		}

		now := r.dao.now()
		for i, w := range writes {
			id := ids[i]

			if !id.IsZero() && existing[id.String()] == id {
				if err := r.update(tx, id, w, now); err != nil {
					return errors.Wrapf(err, "write %d", i)
				}
				result.Add(domain.ProductNoteEntity, id.String())
				continue
			}

			if !insert {
				continue
			}

			m, err := r.newModel(id, w, now)
			if err != nil {
				return errors.Wrapf(err, "write %d", i)
			}
			if err := tx.Create(m).Error; err != nil {
				return errors.Wrapf(err, "write %d", i)
			}
			existing[m.ID.String()] = m.ID
			result.Add(domain.ProductNoteEntity, m.ID.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// newModel builds an insert; product, version and note are required
func (r *productNoteRepository) newModel(id model.BinaryUUID, w domain.ProductNoteWrite, now time.Time) (*model.ProductNote, error) {
	if w.ProductID == "" {
		return nil, errors.Wrap(domain.ErrMissingField, "productId")
	}
	if w.ProductVersionID == "" {
		return nil, errors.Wrap(domain.ErrMissingField, "productVersionId")
	}
	if w.Note == nil {
		return nil, errors.Wrap(domain.ErrMissingField, "note")
	}

	productID, err := model.ParseBinaryUUID(w.ProductID)
	if err != nil {
		return nil, errors.Wrap(domain.ErrInvalidID, w.ProductID)
	}
	versionID, err := model.ParseBinaryUUID(w.ProductVersionID)
	if err != nil {
		return nil, errors.Wrap(domain.ErrInvalidID, w.ProductVersionID)
	}
	if id.IsZero() {
		id = model.MustBinaryUUID(domain.NewID())
	}

	m := &model.ProductNote{
		ID:               id,
		ProductID:        productID,
		ProductVersionID: versionID,
		Note:             model.LongText(*w.Note),
		CreatedAt:        timex.Time(now),
	}
	if w.Solved != nil {
		m.Solved = *w.Solved
	}
	return m, nil
}

// update writes the set fields of w; product and version ids are immutable and ignored
func (r *productNoteRepository) update(tx *gorm.DB, id model.BinaryUUID, w domain.ProductNoteWrite, now time.Time) error {
	values := map[string]interface{}{}
	if w.Note != nil {
		values["note"] = model.LongText(*w.Note)
	}
	if w.Solved != nil {
		values["solved"] = *w.Solved
	}
	if len(values) == 0 && w.UpdatedAt == nil {
		return nil
	}

	updatedAt := now
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}
	values["updated_at"] = timex.Time(updatedAt)

	return tx.Model(&model.ProductNote{}).Where("id = ?", id).Updates(values).Error
}
