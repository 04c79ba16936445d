package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields from src into dst (dst must be a pointer)
// StructAssign 按字段名将 src 复制到 dst
func StructAssign(src any, dst any) error {
	return copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true})
}

