// Package domain 定义领域模型和接口
package domain

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// LiveVersionID is the version id of the live (non-draft) product version
	// LiveVersionID 商品线上版本 ID
	LiveVersionID = "0fa91ce3e96a4bc2be4bd9ce752c3425"

	// ProductNoteEntity 商品备注实体名，也是表名
	ProductNoteEntity = "academy_product_note"

	// NoteProductAssociation loads ProductNote.Product
	NoteProductAssociation = "product"
)

// ProductNote 商品备注领域模型
type ProductNote struct {
	ID               string
	ProductID        string
	ProductVersionID string
	Note             string
	Solved           bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time

	// Product is set only when the "product" association was requested
	Product *Product
}

// ProductNoteWrite is a partial record passed to Upsert and Update.
// Unset fields (empty ids, nil pointers) are left untouched on update.
// ProductNoteWrite 写入载荷，未设置的字段不会被修改
type ProductNoteWrite struct {
	ID               string
	ProductID        string
	ProductVersionID string
	Note             *string
	Solved           *bool
	UpdatedAt        *time.Time
}

// NewID generates a 32 character lowercase hex id
// NewID 生成 32 位十六进制 ID
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsValidID reports whether id is 32 hex characters
func IsValidID(id string) bool {
	if len(id) != 32 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// NormalizeID lowercases an id and strips uuid dashes
func NormalizeID(id string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(id), "-", ""))
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}

// BoolPtr 返回布尔指针
func BoolPtr(b bool) *bool {
	return &b
}

// TimePtr 返回时间指针
func TimePtr(t time.Time) *time.Time {
	return &t
}
