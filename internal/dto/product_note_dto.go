package dto

import (
	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/pkg/convert"
	"github.com/haierkeys/product-note-service/pkg/timex"
)

// ProductNoteDTO product note data transfer object
// ProductNoteDTO 商品备注数据传输对象
type ProductNoteDTO struct {
	ID               string      `json:"id"`
	ProductID        string      `json:"productId"`
	ProductVersionID string      `json:"productVersionId"`
	Note             string      `json:"note"`
	Solved           bool        `json:"solved"`
	CreatedAt        timex.Time  `json:"createdAt" copier:"-"`
	UpdatedAt        *timex.Time `json:"updatedAt" copier:"-"`
}

// ProductDTO product with its notes
// ProductDTO 商品及其备注
type ProductDTO struct {
	ID            string            `json:"id"`
	VersionID     string            `json:"versionId"`
	ParentID      string            `json:"parentId,omitempty"`
	ProductNumber string            `json:"productNumber"`
	Name          string            `json:"name"`
	Active        bool              `json:"active"`
	CreatedAt     timex.Time        `json:"createdAt" copier:"-"`
	UpdatedAt     *timex.Time       `json:"updatedAt" copier:"-"`
	Notes         []*ProductNoteDTO `json:"productNotes" copier:"-"`
}

// ProductQueryRequest 查询商品及备注的请求参数
type ProductQueryRequest struct {
	ProductID string `json:"productId" form:"productId" binding:"required,len=32,hexadecimal"`
}

// NoteCreateRequest 创建备注的请求参数
type NoteCreateRequest struct {
	ProductID string `json:"productId" form:"productId" binding:"required,len=32,hexadecimal"`
	Note      string `json:"note" form:"note"`
}

// NoteUpdateRequest 更新备注内容的请求参数
type NoteUpdateRequest struct {
	ID   string `json:"id" form:"id" binding:"required,len=32,hexadecimal"`
	Note string `json:"note" form:"note"`
	Mode string `json:"mode" form:"mode" binding:"omitempty,oneof=strict upsert"` // strict: only existing ids // 仅更新已存在的备注
}

// NoteSolvedRequest 更新已解决标记的请求参数
type NoteSolvedRequest struct {
	ID     string `json:"id" form:"id" binding:"required,len=32,hexadecimal"`
	Solved bool   `json:"solved" form:"solved"`
}

// NoteDeleteRequest 删除备注的请求参数
type NoteDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required,len=32,hexadecimal"`
}

// NoteBatchCreateRequest 批量创建备注的请求参数
type NoteBatchCreateRequest struct {
	Entries []NoteEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// NoteEntryRequest one entry of a batch creation
type NoteEntryRequest struct {
	ProductID string `json:"productId" binding:"required,len=32,hexadecimal"`
	Note      string `json:"note"`
}

// NoteBulkUpsertRequest 批量创建或更新备注的请求参数
type NoteBulkUpsertRequest struct {
	Entries []NoteBulkEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// NoteBulkEntryRequest an update when ID is set, otherwise a creation for ProductID
type NoteBulkEntryRequest struct {
	ID        string `json:"id" binding:"omitempty,len=32,hexadecimal"`
	ProductID string `json:"productId" binding:"omitempty,len=32,hexadecimal"`
	Note      string `json:"note"`
}

// NoteBatchDeleteRequest 批量删除备注的请求参数
type NoteBatchDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,len=32,hexadecimal"`
}

// WrittenDTO reports whether a single write reached the store
type WrittenDTO struct {
	Written bool `json:"written"`
}

// IDsDTO ids affected by a batch write
type IDsDTO struct {
	IDs []string `json:"ids"`
}

// IDDTO a single affected id
type IDDTO struct {
	ID string `json:"id"`
}

// NewProductNoteDTO converts a domain note
// NewProductNoteDTO 领域对象转换为 DTO
func NewProductNoteDTO(n *domain.ProductNote) (*ProductNoteDTO, error) {
	if n == nil {
		return nil, nil
	}
	out := &ProductNoteDTO{}
	if err := convert.StructAssign(n, out); err != nil {
		return nil, err
	}
	out.CreatedAt = timex.Time(n.CreatedAt)
	if n.UpdatedAt != nil {
		t := timex.Time(*n.UpdatedAt)
		out.UpdatedAt = &t
	}
	return out, nil
}

// NewProductNoteDTOs converts a note list, never returning nil
func NewProductNoteDTOs(notes []*domain.ProductNote) ([]*ProductNoteDTO, error) {
	out := make([]*ProductNoteDTO, 0, len(notes))
	for _, n := range notes {
		d, err := NewProductNoteDTO(n)
		if err != nil {
			return nil, err
		}
		if d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}

// NewProductDTO converts a domain product together with its loaded notes
// NewProductDTO 商品领域对象转换为 DTO
func NewProductDTO(p *domain.Product) (*ProductDTO, error) {
	if p == nil {
		return nil, nil
	}
	out := &ProductDTO{}
	if err := convert.StructAssign(p, out); err != nil {
		return nil, err
	}
	out.CreatedAt = timex.Time(p.CreatedAt)
	if p.UpdatedAt != nil {
		t := timex.Time(*p.UpdatedAt)
		out.UpdatedAt = &t
	}
	notes, err := NewProductNoteDTOs(p.Notes)
	if err != nil {
		return nil, err
	}
	out.Notes = notes
	return out, nil
}
