// Package domain 定义领域模型和接口
package domain

import "context"

// ProductNoteRepository 商品备注仓储接口
// Every write returns the affected ids under ProductNoteEntity and runs atomically for its batch.
type ProductNoteRepository interface {
	// Search 按条件查询备注
	Search(ctx context.Context, criteria *Criteria) ([]*ProductNote, error)

	// Upsert inserts records whose id is empty or absent and updates the others.
	// Inserts require ProductID, ProductVersionID and Note.
	// Upsert 插入或更新
	Upsert(ctx context.Context, writes []ProductNoteWrite) (*WriteResult, error)

	// Update changes existing records only, absent ids are skipped
	// Update 仅更新已存在的记录
	Update(ctx context.Context, writes []ProductNoteWrite) (*WriteResult, error)

	// Delete removes records, absent ids are skipped
	// Delete 物理删除
	Delete(ctx context.Context, ids []string) (*WriteResult, error)
}

// ProductRepository 商品查询接口
type ProductRepository interface {
	// Search 按条件查询线上版本商品
	Search(ctx context.Context, criteria *Criteria) ([]*Product, error)
}
