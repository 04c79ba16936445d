package model

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// BinaryUUID is a 16 byte id stored as binary and exchanged as 32 hex characters
// BinaryUUID 以 16 字节二进制存储的 ID
type BinaryUUID [16]byte

// ParseBinaryUUID accepts 32 hex characters or the dashed uuid form
func ParseBinaryUUID(s string) (BinaryUUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return BinaryUUID{}, err
	}
	return BinaryUUID(u), nil
}

// MustBinaryUUID panics on malformed input, for constants only
func MustBinaryUUID(s string) BinaryUUID {
	id, err := ParseBinaryUUID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (b BinaryUUID) String() string {
	return hex.EncodeToString(b[:])
}

func (b BinaryUUID) IsZero() bool {
	return b == BinaryUUID{}
}

// Value implements driver.Valuer
func (b BinaryUUID) Value() (driver.Value, error) {
	return b[:], nil
}

// Scan implements sql.Scanner
func (b *BinaryUUID) Scan(v interface{}) error {
	switch val := v.(type) {
	case []byte:
		if len(val) == 16 {
			copy(b[:], val)
			return nil
		}
		return b.scanString(string(val))
	case string:
		return b.scanString(val)
	default:
		return fmt.Errorf("model: cannot scan %T into BinaryUUID", v)
	}
}

func (b *BinaryUUID) scanString(s string) error {
	id, err := ParseBinaryUUID(s)
	if err != nil {
		return err
	}
	*b = id
	return nil
}

// GormDataType gorm common data type
func (BinaryUUID) GormDataType() string {
	return "binary_uuid"
}

// GormDBDataType gorm db data type per dialect
func (BinaryUUID) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "BINARY(16)"
	case "postgres":
		return "BYTEA"
	default:
		return "BLOB"
	}
}

// LongText is a string column that may exceed 64KB on MySQL
type LongText string

func (LongText) GormDataType() string {
	return "long_text"
}

func (LongText) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "mysql" {
		return "LONGTEXT"
	}
	return "TEXT"
}
