package api_router

import (
	"github.com/haierkeys/product-note-service/internal/app"
	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/dto"
	"github.com/haierkeys/product-note-service/internal/service"
	pkgapp "github.com/haierkeys/product-note-service/pkg/app"
	"github.com/haierkeys/product-note-service/pkg/code"
	apperrors "github.com/haierkeys/product-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductNoteHandler 商品备注 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type ProductNoteHandler struct {
	*Handler
}

// NewProductNoteHandler 创建 ProductNoteHandler 实例
func NewProductNoteHandler(a *app.App) *ProductNoteHandler {
	return &ProductNoteHandler{
		Handler: NewHandler(a),
	}
}

func (h *ProductNoteHandler) svc() service.ProductNoteService {
	return h.App.ProductNoteService
}

// bind 参数绑定和验证，失败时直接输出参数错误响应
func (h *ProductNoteHandler) bind(c *gin.Context, action string, params interface{}) bool {
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn(action+".BindAndValid err", zap.Error(errs))
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return false
	}
	return true
}

// GetProduct 获取商品及其备注
// @Router /api/product [get]
func (h *ProductNoteHandler) GetProduct(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProductQueryRequest{}
	if !h.bind(c, "ProductNoteHandler.GetProduct", params) {
		return
	}

	ctx := c.Request.Context()
	product, err := h.svc().GetProductWithNotes(ctx, domain.NormalizeID(params.ProductID))
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.GetProduct", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if product == nil {
		response.ToResponse(code.ErrorProductNotFound)
		return
	}

	out, err := dto.NewProductDTO(product)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.GetProduct", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(out))
}

// List 获取商品的备注列表，按创建时间倒序
// @Router /api/product/notes [get]
func (h *ProductNoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProductQueryRequest{}
	if !h.bind(c, "ProductNoteHandler.List", params) {
		return
	}

	ctx := c.Request.Context()
	notes, err := h.svc().ListByProduct(ctx, domain.NormalizeID(params.ProductID))
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	out, err := dto.NewProductNoteDTOs(notes)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponseList(code.Success, out, len(out))
}

// Create 校验后创建备注
// @Router /api/product/note [post]
func (h *ProductNoteHandler) Create(c *gin.Context) {
	params := &dto.NoteCreateRequest{}
	if !h.bind(c, "ProductNoteHandler.Create", params) {
		return
	}

	// CreateValidated logs its own failures
	result, err := h.svc().CreateValidated(c.Request.Context(), domain.NormalizeID(params.ProductID), params.Note)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessNoteCreate.WithData(result))
}

// QuickCreate 不校验内容直接创建备注
// @Router /api/product/note/quick [post]
func (h *ProductNoteHandler) QuickCreate(c *gin.Context) {
	params := &dto.NoteCreateRequest{}
	if !h.bind(c, "ProductNoteHandler.QuickCreate", params) {
		return
	}

	ctx := c.Request.Context()
	id, err := h.svc().Create(ctx, domain.NormalizeID(params.ProductID), params.Note)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.QuickCreate", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if id == "" {
		pkgapp.NewResponse(c).ToResponse(code.SuccessNoteNoWrite)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessNoteCreate.WithData(dto.IDDTO{ID: id}))
}

// AddToProduct 仅为启用的商品校验并创建备注
// @Router /api/product/note/guarded [post]
func (h *ProductNoteHandler) AddToProduct(c *gin.Context) {
	params := &dto.NoteCreateRequest{}
	if !h.bind(c, "ProductNoteHandler.AddToProduct", params) {
		return
	}

	ctx := c.Request.Context()
	result, err := h.svc().AddNoteToProduct(ctx, domain.NormalizeID(params.ProductID), params.Note)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.AddToProduct", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if result == nil {
		pkgapp.NewResponse(c).ToResponse(code.ErrorProductNotFound)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessNoteCreate.WithData(result))
}

// Update 更新备注内容，mode=strict 时只更新已存在的备注
// @Router /api/product/note [put]
func (h *ProductNoteHandler) Update(c *gin.Context) {
	params := &dto.NoteUpdateRequest{}
	if !h.bind(c, "ProductNoteHandler.Update", params) {
		return
	}

	mode := service.WriteModeUpsert
	if params.Mode == "strict" {
		mode = service.WriteModeStrict
	}

	ctx := c.Request.Context()
	written, err := h.svc().UpdateContent(ctx, domain.NormalizeID(params.ID), params.Note, mode)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	h.written(c, written)
}

// UpdateSafe 更新备注内容，失败只返回未写入
// @Router /api/product/note/safe [put]
func (h *ProductNoteHandler) UpdateSafe(c *gin.Context) {
	params := &dto.NoteUpdateRequest{}
	if !h.bind(c, "ProductNoteHandler.UpdateSafe", params) {
		return
	}
	h.written(c, h.svc().UpdateContentSafe(c.Request.Context(), domain.NormalizeID(params.ID), params.Note))
}

// UpdateSolved 更新已解决标记
// @Router /api/product/note/solved [put]
func (h *ProductNoteHandler) UpdateSolved(c *gin.Context) {
	params := &dto.NoteSolvedRequest{}
	if !h.bind(c, "ProductNoteHandler.UpdateSolved", params) {
		return
	}

	ctx := c.Request.Context()
	written, err := h.svc().UpdateSolved(ctx, domain.NormalizeID(params.ID), params.Solved)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.UpdateSolved", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	h.written(c, written)
}

// UpdateWithHistory 覆盖备注内容
// @Router /api/product/note/history [put]
func (h *ProductNoteHandler) UpdateWithHistory(c *gin.Context) {
	params := &dto.NoteUpdateRequest{}
	if !h.bind(c, "ProductNoteHandler.UpdateWithHistory", params) {
		return
	}

	ctx := c.Request.Context()
	id, err := h.svc().UpdateWithHistory(ctx, domain.NormalizeID(params.ID), params.Note)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.UpdateWithHistory", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if id == "" {
		pkgapp.NewResponse(c).ToResponse(code.ErrorNoteNotFound)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessNoteUpdate.WithData(dto.IDDTO{ID: id}))
}

// CreateMany 批量创建备注
// @Router /api/product/notes [post]
func (h *ProductNoteHandler) CreateMany(c *gin.Context) {
	params := &dto.NoteBatchCreateRequest{}
	if !h.bind(c, "ProductNoteHandler.CreateMany", params) {
		return
	}

	entries := make([]service.NoteEntry, 0, len(params.Entries))
	for _, e := range params.Entries {
		entries = append(entries, service.NoteEntry{ProductID: domain.NormalizeID(e.ProductID), Note: e.Note})
	}

	ctx := c.Request.Context()
	ids, err := h.svc().CreateMany(ctx, entries)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.CreateMany", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessNoteCreate.WithData(dto.IDsDTO{IDs: ids}))
}

// BulkUpsert 批量创建或更新备注
// @Router /api/product/notes/bulk [post]
func (h *ProductNoteHandler) BulkUpsert(c *gin.Context) {
	params := &dto.NoteBulkUpsertRequest{}
	if !h.bind(c, "ProductNoteHandler.BulkUpsert", params) {
		return
	}

	entries := make([]service.BulkEntry, 0, len(params.Entries))
	for _, e := range params.Entries {
		entries = append(entries, service.BulkEntry{
			ID:        e.ID,
			ProductID: domain.NormalizeID(e.ProductID),
			Note:      e.Note,
		})
	}

	ctx := c.Request.Context()
	result, err := h.svc().BulkUpsert(ctx, entries)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.BulkUpsert", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(result))
}

// Delete 删除备注
// @Router /api/product/note [delete]
func (h *ProductNoteHandler) Delete(c *gin.Context) {
	params := &dto.NoteDeleteRequest{}
	if !h.bind(c, "ProductNoteHandler.Delete", params) {
		return
	}

	if !h.svc().Delete(c.Request.Context(), domain.NormalizeID(params.ID)) {
		pkgapp.NewResponse(c).ToResponse(code.ErrorNoteDelete)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessNoteDelete)
}

// DeleteMany 批量删除，返回实际删除的 ID
// @Router /api/product/notes [delete]
func (h *ProductNoteHandler) DeleteMany(c *gin.Context) {
	params := &dto.NoteBatchDeleteRequest{}
	if !h.bind(c, "ProductNoteHandler.DeleteMany", params) {
		return
	}

	ids := make([]string, 0, len(params.IDs))
	for _, id := range params.IDs {
		ids = append(ids, domain.NormalizeID(id))
	}

	ctx := c.Request.Context()
	deleted, err := h.svc().DeleteMany(ctx, ids)
	if err != nil {
		h.logError(ctx, "ProductNoteHandler.DeleteMany", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessNoteDelete.WithData(dto.IDsDTO{IDs: deleted}))
}

func (h *ProductNoteHandler) written(c *gin.Context, written bool) {
	if !written {
		pkgapp.NewResponse(c).ToResponse(code.ErrorNoteUpdate.WithData(dto.WrittenDTO{Written: false}))
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessNoteUpdate.WithData(dto.WrittenDTO{Written: true}))
}
