// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// DefaultMaxNoteLength maximum note length in characters for validated creation
const DefaultMaxNoteLength = 1000

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Note NoteServiceConfig // Note related config // 备注相关配置
}

// NoteServiceConfig note service configuration
// NoteServiceConfig 备注服务配置
type NoteServiceConfig struct {
	MaxLength int // Max characters after trimming, 0 means DefaultMaxNoteLength // 去除首尾空白后的最大字符数
}

func (c *ServiceConfig) maxNoteLength() int {
	if c == nil || c.Note.MaxLength <= 0 {
		return DefaultMaxNoteLength
	}
	return c.Note.MaxLength
}
