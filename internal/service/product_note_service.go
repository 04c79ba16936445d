package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/pkg/code"
	"github.com/haierkeys/product-note-service/pkg/diff"
	"github.com/haierkeys/product-note-service/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// WriteMode selects how UpdateContent treats an id that does not exist
type WriteMode int

const (
	// WriteModeUpsert creates the record when the id is absent
	WriteModeUpsert WriteMode = iota
	// WriteModeStrict only changes existing records
	WriteModeStrict
)

func (m WriteMode) String() string {
	if m == WriteModeStrict {
		return "strict"
	}
	return "upsert"
}

// NoteEntry one note to create for a product // 待创建的备注
type NoteEntry struct {
	ProductID string
	Note      string
}

// BulkEntry an update when ID is set, otherwise a creation for ProductID
// BulkEntry 批量写入条目，带 ID 为更新，否则为创建
type BulkEntry struct {
	ID        string
	ProductID string
	Note      string
}

// BulkResult affected ids split into creations and updates
type BulkResult struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
}

// CreateResult result of a validated creation
type CreateResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ProductNoteService 商品备注编排服务接口
type ProductNoteService interface {
	// GetProductWithNotes returns the product with its notes loaded, nil when not found
	// GetProductWithNotes 获取商品及其备注
	GetProductWithNotes(ctx context.Context, productID string) (*domain.Product, error)

	// ListByProduct 获取商品的备注列表，按创建时间倒序
	ListByProduct(ctx context.Context, productID string) ([]*domain.ProductNote, error)

	// Create 创建备注（不校验），返回新 ID，存储未返回 ID 时为空
	Create(ctx context.Context, productID, note string) (string, error)

	// CreateValidated 校验后创建备注
	CreateValidated(ctx context.Context, productID, note string) (*CreateResult, error)

	// UpdateContent 更新备注内容，返回是否写入
	UpdateContent(ctx context.Context, id, note string, mode WriteMode) (bool, error)

	// UpdateContentSafe 更新备注内容，失败时记录日志并返回 false
	UpdateContentSafe(ctx context.Context, id, note string) bool

	// UpdateSolved 更新已解决标记
	UpdateSolved(ctx context.Context, id string, solved bool) (bool, error)

	// CreateMany 批量创建备注
	CreateMany(ctx context.Context, entries []NoteEntry) ([]string, error)

	// BulkUpsert 批量创建或更新备注
	BulkUpsert(ctx context.Context, entries []BulkEntry) (*BulkResult, error)

	// Delete 删除备注，任何失败都返回 false
	Delete(ctx context.Context, id string) bool

	// DeleteMany 批量删除，返回实际删除的 ID
	DeleteMany(ctx context.Context, ids []string) ([]string, error)

	// AddNoteToProduct 仅为启用的商品校验并创建备注，商品不存在或未启用时返回 nil
	AddNoteToProduct(ctx context.Context, productID, note string) (*CreateResult, error)

	// UpdateWithHistory 覆盖备注内容，旧内容只记录到日志
	UpdateWithHistory(ctx context.Context, id, note string) (string, error)
}

// productNoteService 实现 ProductNoteService 接口
type productNoteService struct {
	noteRepo    domain.ProductNoteRepository
	productRepo domain.ProductRepository
	config      *ServiceConfig
	validate    *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewProductNoteService 创建 ProductNoteService 实例
func NewProductNoteService(noteRepo domain.ProductNoteRepository, productRepo domain.ProductRepository, config *ServiceConfig, lg *zap.Logger) ProductNoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &productNoteService{
		noteRepo:    noteRepo,
		productRepo: productRepo,
		config:      config,
		validate:    validator.New(),
		logger:      lg,
		now:         time.Now,
	}
}

// GetProductWithNotes 获取商品及其备注
func (s *productNoteService) GetProductWithNotes(ctx context.Context, productID string) (*domain.Product, error) {
	criteria := domain.NewCriteria(productID).AddAssociation(domain.ProductNotesAssociation)
	products, err := s.productRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return products[0], nil
}

// ListByProduct 获取商品的备注列表
func (s *productNoteService) ListByProduct(ctx context.Context, productID string) ([]*domain.ProductNote, error) {
	criteria := domain.NewCriteria().
		AddFilter(domain.Equals("productId", productID)).
		AddSorting(domain.Sort("createdAt", domain.SortDesc))
	return s.noteRepo.Search(ctx, criteria)
}

func newNoteWrite(productID, note string) domain.ProductNoteWrite {
	return domain.ProductNoteWrite{
		ProductID:        productID,
		ProductVersionID: domain.LiveVersionID,
		Note:             domain.StringPtr(note),
	}
}

// Create 创建备注
func (s *productNoteService) Create(ctx context.Context, productID, note string) (string, error) {
	return s.create(ctx, "create", productID, note)
}

// create upserts one note and records the outcome under operation
func (s *productNoteService) create(ctx context.Context, operation, productID, note string) (string, error) {
	res, err := s.noteRepo.Upsert(ctx, []domain.ProductNoteWrite{newNoteWrite(productID, note)})
	if err != nil {
		observeWrite(operation, outcomeFailure)
		return "", err
	}

	id := firstID(res)
	if id == "" {
		observeWrite(operation, outcomeNoop)
		return "", nil
	}
	observeWrite(operation, outcomeSuccess)
	return id, nil
}

// validateNote trims the text and checks it is non-empty and within the length limit
func (s *productNoteService) validateNote(note string) (string, error) {
	trimmed := strings.TrimSpace(note)

	err := s.validate.Var(trimmed, fmt.Sprintf("required,max=%d", s.config.maxNoteLength()))
	if err == nil {
		return trimmed, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", err
	}

	rule := verrs[0].Tag()
	c := code.ErrorNoteTooLong
	if rule == "required" {
		c = code.ErrorNoteEmpty
	}
	return "", &ValidationError{Field: "note", Rule: rule, Code: c}
}

// CreateValidated 校验后创建备注
func (s *productNoteService) CreateValidated(ctx context.Context, productID, note string) (*CreateResult, error) {
	trimmed, err := s.validateNote(note)
	if err != nil {
		observeWrite("create_validated", outcomeInvalid)
		s.logger.Warn("product note validation failed",
			zap.String(logger.FieldProductID, productID),
			zap.Int("length", len([]rune(strings.TrimSpace(note)))),
			zap.Error(err))
		return nil, err
	}

	id, err := s.create(ctx, "create_validated", productID, trimmed)
	if err != nil {
		errorCode := code.ErrorServerInternal.Code()
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			errorCode = code.ErrorDBQuery.Code()
		}
		s.logger.Error("failed to create product note",
			zap.String(logger.FieldProductID, productID),
			zap.String(logger.FieldNote, trimmed),
			zap.Int(logger.FieldErrorCode, errorCode),
			zap.String(logger.FieldErrorMessage, err.Error()))
		return nil, err
	}

	return &CreateResult{
		Success: true,
		ID:      id,
		Message: code.SuccessNoteCreate.Msg(),
	}, nil
}

// UpdateContent 更新备注内容
func (s *productNoteService) UpdateContent(ctx context.Context, id, note string, mode WriteMode) (bool, error) {
	id = domain.NormalizeID(id)
	operation := "update_content_" + mode.String()
	writes := []domain.ProductNoteWrite{{ID: id, Note: domain.StringPtr(note)}}

	var (
		res *domain.WriteResult
		err error
	)
	if mode == WriteModeStrict {
		res, err = s.noteRepo.Update(ctx, writes)
	} else {
		res, err = s.noteRepo.Upsert(ctx, writes)
	}
	if err != nil {
		observeWrite(operation, outcomeFailure)
		return false, err
	}

	written := res.Contains(domain.ProductNoteEntity, id)
	if written {
		observeWrite(operation, outcomeSuccess)
	} else {
		observeWrite(operation, outcomeNoop)
	}
	return written, nil
}

// UpdateContentSafe 更新备注内容，失败时只记录一条错误日志
func (s *productNoteService) UpdateContentSafe(ctx context.Context, id, note string) bool {
	written, err := s.UpdateContent(ctx, id, note, WriteModeUpsert)
	if err != nil {
		s.logger.Error("failed to update product note",
			zap.String(logger.FieldNoteID, id),
			zap.Error(err))
		return false
	}
	return written
}

// UpdateSolved 更新已解决标记
func (s *productNoteService) UpdateSolved(ctx context.Context, id string, solved bool) (bool, error) {
	id = domain.NormalizeID(id)
	res, err := s.noteRepo.Update(ctx, []domain.ProductNoteWrite{{ID: id, Solved: domain.BoolPtr(solved)}})
	if err != nil {
		observeWrite("update_solved", outcomeFailure)
		return false, err
	}
	written := res.Contains(domain.ProductNoteEntity, id)
	if written {
		observeWrite("update_solved", outcomeSuccess)
	} else {
		observeWrite("update_solved", outcomeNoop)
	}
	return written, nil
}

// CreateMany 批量创建备注
func (s *productNoteService) CreateMany(ctx context.Context, entries []NoteEntry) ([]string, error) {
	writes := make([]domain.ProductNoteWrite, 0, len(entries))
	for _, e := range entries {
		writes = append(writes, newNoteWrite(e.ProductID, e.Note))
	}

	res, err := s.noteRepo.Upsert(ctx, writes)
	if err != nil {
		observeWrite("create_many", outcomeFailure)
		return nil, err
	}
	observeWrite("create_many", outcomeSuccess)
	return nonNil(res.IDs(domain.ProductNoteEntity)), nil
}

// BulkUpsert 批量创建或更新备注
// Affected ids found in the input's id set are reported as updated, the rest as created.
func (s *productNoteService) BulkUpsert(ctx context.Context, entries []BulkEntry) (*BulkResult, error) {
	now := s.now()
	writes := make([]domain.ProductNoteWrite, 0, len(entries))
	updateIDs := make(map[string]bool)

	for _, e := range entries {
		if e.ID != "" {
			id := domain.NormalizeID(e.ID)
			updateIDs[id] = true
			writes = append(writes, domain.ProductNoteWrite{
				ID:        id,
				Note:      domain.StringPtr(e.Note),
				UpdatedAt: domain.TimePtr(now),
			})
			continue
		}
		writes = append(writes, newNoteWrite(e.ProductID, e.Note))
	}

	res, err := s.noteRepo.Upsert(ctx, writes)
	if err != nil {
		observeWrite("bulk_upsert", outcomeFailure)
		return nil, err
	}

	result := &BulkResult{Created: []string{}, Updated: []string{}}
	for _, id := range res.IDs(domain.ProductNoteEntity) {
		if updateIDs[id] {
			result.Updated = append(result.Updated, id)
		} else {
			result.Created = append(result.Created, id)
		}
	}
	observeWrite("bulk_upsert", outcomeSuccess)
	return result, nil
}

// Delete 删除备注
func (s *productNoteService) Delete(ctx context.Context, id string) bool {
	id = domain.NormalizeID(id)
	res, err := s.noteRepo.Delete(ctx, []string{id})
	if err != nil {
		observeWrite("delete", outcomeFailure)
		return false
	}
	deleted := res.Contains(domain.ProductNoteEntity, id)
	if deleted {
		observeWrite("delete", outcomeSuccess)
	} else {
		observeWrite("delete", outcomeNoop)
	}
	return deleted
}

// DeleteMany 批量删除
func (s *productNoteService) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		normalized = append(normalized, domain.NormalizeID(id))
	}

	res, err := s.noteRepo.Delete(ctx, normalized)
	if err != nil {
		observeWrite("delete_many", outcomeFailure)
		return nil, err
	}
	observeWrite("delete_many", outcomeSuccess)
	return nonNil(res.IDs(domain.ProductNoteEntity)), nil
}

// AddNoteToProduct 为启用的商品添加备注
func (s *productNoteService) AddNoteToProduct(ctx context.Context, productID, note string) (*CreateResult, error) {
	criteria := domain.NewCriteria(productID).AddFilter(domain.Equals("active", true))
	products, err := s.productRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		s.logger.Debug("product missing or inactive, note not added", zap.String(logger.FieldProductID, productID))
		return nil, nil
	}
	return s.CreateValidated(ctx, productID, note)
}

// UpdateWithHistory 覆盖备注内容
// The previous text is not persisted anywhere; it is logged together with a patch.
func (s *productNoteService) UpdateWithHistory(ctx context.Context, id, note string) (string, error) {
	id = domain.NormalizeID(id)
	criteria := domain.NewCriteria(id).AddAssociation(domain.NoteProductAssociation)
	notes, err := s.noteRepo.Search(ctx, criteria)
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		return "", nil
	}
	previous := notes[0]

	res, err := s.noteRepo.Upsert(ctx, []domain.ProductNoteWrite{{
		ID:        id,
		Note:      domain.StringPtr(note),
		UpdatedAt: domain.TimePtr(s.now()),
	}})
	if err != nil {
		observeWrite("update_with_history", outcomeFailure)
		return "", err
	}

	written := firstID(res)
	if written == "" {
		observeWrite("update_with_history", outcomeNoop)
		return "", nil
	}
	observeWrite("update_with_history", outcomeSuccess)

	stat := diff.Summarize(previous.Note, note)
	s.logger.Info("product note overwritten, history not persisted",
		zap.String(logger.FieldNoteID, id),
		zap.String(logger.FieldProductID, previous.ProductID),
		zap.String("previousNote", previous.Note),
		zap.String("patch", diff.Patch(previous.Note, note)),
		zap.Int("inserted", stat.Inserted),
		zap.Int("deleted", stat.Deleted))

	return written, nil
}

// firstID returns the first affected note id, "" when the store reported none
func firstID(res *domain.WriteResult) string {
	if res == nil {
		return ""
	}
	ids := res.IDs(domain.ProductNoteEntity)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
