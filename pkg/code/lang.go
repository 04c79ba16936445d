package code

import (
	"errors"
	"sync/atomic"
)

// lang holds the English and Chinese text of a message
// lang 存储消息的英文与中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

// FALLBACK_LNG is used when a message has no text for the active language
const FALLBACK_LNG = "en"

var supportedLanguages = []string{"en", "zh_cn"}

var lng atomic.Value

func init() {
	lng.Store(FALLBACK_LNG)
}

// text returns the message for the given language, falling back to English
func (l lang) text(language string) string {
	switch language {
	case "zh_cn":
		if l.zh_cn != "" {
			return l.zh_cn
		}
	case "en":
		if l.en != "" {
			return l.en
		}
	}
	return l.en
}

// GetMessage returns the message in the current global language
// GetMessage 根据当前全局语言返回消息
func (l lang) GetMessage() string {
	return l.text(GetGlobalDefaultLang())
}

// GetSupportedLanguages returns all languages a lang can carry
func GetSupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// SetGlobalDefaultLang sets the global language, falling back to English when unsupported
// SetGlobalDefaultLang 设置全局默认语言，不支持时回退为英文
func SetGlobalDefaultLang(language string) error {
	for _, l := range supportedLanguages {
		if l == language {
			lng.Store(language)
			return nil
		}
	}
	lng.Store(FALLBACK_LNG)
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang returns the global language
// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	return lng.Load().(string)
}

// In returns the message in the given language
func (l lang) In(language string) string {
	return l.text(language)
}
