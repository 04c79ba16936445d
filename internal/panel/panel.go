// Package panel holds the state of the product detail "notes" tab: the note
// listing, the add/edit modal and the delete confirmation.
package panel

import (
	"context"

	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/service"
	"github.com/haierkeys/product-note-service/pkg/code"
	"github.com/haierkeys/product-note-service/pkg/logger"

	"go.uber.org/zap"
)

// Notifier shows user facing notifications
// Notifier 用户通知
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Column one column of the note listing
type Column struct {
	Property string `json:"property"`
	Label    string `json:"label"`
	RawData  bool   `json:"rawData"`
}

// Option configures a Panel
type Option func(*Panel)

// WithLanguage renders labels and notifications in a fixed language instead of the global one
func WithLanguage(language string) Option {
	return func(p *Panel) {
		p.language = language
	}
}

// Panel 商品备注管理面板状态
type Panel struct {
	Notes           []*domain.ProductNote
	IsLoading       bool
	ShowModal       bool
	CurrentNote     *domain.ProductNote // working copy edited in the modal // 弹窗中编辑的副本
	ShowDeleteModal bool
	NoteToDelete    *domain.ProductNote

	svc       service.ProductNoteService
	productID string
	notifier  Notifier
	logger    *zap.Logger
	language  string
	original  *domain.ProductNote
}

// New 创建面板
func New(svc service.ProductNoteService, productID string, notifier Notifier, lg *zap.Logger, opts ...Option) *Panel {
	if lg == nil {
		lg = zap.NewNop()
	}
	p := &Panel{
		Notes:     []*domain.ProductNote{},
		svc:       svc,
		productID: productID,
		notifier:  notifier,
		logger:    lg,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProductID returns the product the panel belongs to
func (p *Panel) ProductID() string {
	return p.productID
}

// LoadNotes 加载当前商品的备注列表
func (p *Panel) LoadNotes(ctx context.Context) error {
	if p.productID == "" {
		return nil
	}

	p.IsLoading = true
	defer func() { p.IsLoading = false }()

	notes, err := p.svc.ListByProduct(ctx, p.productID)
	if err != nil {
		p.logger.Warn("panel load notes failed",
			zap.String(logger.FieldProductID, p.productID),
			zap.Error(err),
		)
		return err
	}
	p.Notes = notes
	return nil
}

// OnAddNote opens the modal with a fresh unsolved note for the product
func (p *Panel) OnAddNote() {
	p.CurrentNote = &domain.ProductNote{
		ProductID:        p.productID,
		ProductVersionID: domain.LiveVersionID,
		Solved:           false,
	}
	p.original = nil
	p.ShowModal = true
}

// OnEditNote opens the modal on a copy of note, the listing stays untouched until saved
func (p *Panel) OnEditNote(note *domain.ProductNote) {
	if note == nil {
		return
	}
	working := *note
	snapshot := *note
	p.CurrentNote = &working
	p.original = &snapshot
	p.ShowModal = true
}

// OnSaveNote 保存弹窗中的备注
func (p *Panel) OnSaveNote(ctx context.Context) {
	if p.CurrentNote == nil {
		return
	}

	if err := p.save(ctx, p.CurrentNote); err != nil {
		p.logger.Warn("panel save note failed",
			zap.String(logger.FieldProductID, p.productID),
			zap.String(logger.FieldNoteID, p.CurrentNote.ID),
			zap.Error(err),
		)
		p.notifier.Error(p.message(code.ErrorNoteAction))
		// the note was created but not flagged, keep editing it as an existing note
		if p.CurrentNote.ID != "" && p.original == nil {
			unsolved := *p.CurrentNote
			unsolved.Solved = false
			p.original = &unsolved
			_ = p.LoadNotes(ctx)
		}
		return
	}

	p.notifier.Success(p.message(code.SuccessNoteSave))
	p.ShowModal = false
	p.CurrentNote = nil
	p.original = nil
	_ = p.LoadNotes(ctx)
}

func (p *Panel) save(ctx context.Context, note *domain.ProductNote) error {
	if note.ID == "" {
		id, err := p.svc.Create(ctx, p.productID, note.Note)
		if err != nil {
			return err
		}
		if id == "" {
			return code.ErrorNoteAction
		}
		note.ID = id
		if note.Solved {
			return p.setSolved(ctx, id, true)
		}
		return nil
	}

	ok, err := p.svc.UpdateContent(ctx, note.ID, note.Note, service.WriteModeStrict)
	if err != nil {
		return err
	}
	if !ok {
		return code.ErrorNoteUpdate
	}
	if p.original == nil || p.original.Solved != note.Solved {
		return p.setSolved(ctx, note.ID, note.Solved)
	}
	return nil
}

func (p *Panel) setSolved(ctx context.Context, id string, solved bool) error {
	ok, err := p.svc.UpdateSolved(ctx, id, solved)
	if err != nil {
		return err
	}
	if !ok {
		return code.ErrorNoteUpdate
	}
	return nil
}

// OnCloseModal 关闭编辑弹窗并丢弃修改
func (p *Panel) OnCloseModal() {
	p.ShowModal = false
	p.CurrentNote = nil
	p.original = nil
}

// OnDeleteNote asks for confirmation before deleting note
func (p *Panel) OnDeleteNote(note *domain.ProductNote) {
	p.NoteToDelete = note
	p.ShowDeleteModal = true
}

// OnConfirmDelete 确认删除
func (p *Panel) OnConfirmDelete(ctx context.Context) {
	if p.NoteToDelete == nil {
		return
	}
	id := p.NoteToDelete.ID
	p.ShowDeleteModal = false
	p.NoteToDelete = nil

	if !p.svc.Delete(ctx, id) {
		p.logger.Warn("panel delete note failed",
			zap.String(logger.FieldProductID, p.productID),
			zap.String(logger.FieldNoteID, id),
		)
		p.notifier.Error(p.message(code.ErrorNoteAction))
		return
	}

	p.notifier.Success(p.message(code.SuccessNoteDelete))
	_ = p.LoadNotes(ctx)
}

// OnCancelDelete 取消删除
func (p *Panel) OnCancelDelete() {
	p.ShowDeleteModal = false
	p.NoteToDelete = nil
}

// ModalTitle is "Edit" for a persisted note, "Add note" otherwise
func (p *Panel) ModalTitle() string {
	if p.CurrentNote != nil && p.CurrentNote.ID != "" {
		return p.label(code.LabelButtonEdit)
	}
	return p.label(code.LabelButtonAddNote)
}

// Columns 列表列定义
func (p *Panel) Columns() []Column {
	return []Column{
		{Property: "note", Label: p.label(code.LabelColumnNote), RawData: true},
		{Property: "solved", Label: p.label(code.LabelColumnSolved), RawData: true},
		{Property: "createdAt", Label: p.label(code.LabelColumnCreateAt), RawData: true},
	}
}

func (p *Panel) message(c *code.Code) string {
	if p.language == "" {
		return c.Msg()
	}
	return c.MsgIn(p.language)
}

func (p *Panel) label(l code.Label) string {
	if p.language == "" {
		return l.GetMessage()
	}
	return l.In(p.language)
}
