package code

import (
	"fmt"
	"net/http"
)

// Code is a numbered result carrying a localized message.
// Error codes implement the error interface so services can return them directly.
type Code struct {
	// 状态码
	code int
	// 是否成功
	status bool
	// 消息
	Lang lang
	// 数据
	data     interface{}
	haveData bool
	// 错误详细信息
	details     []string
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers an error code. Registering the same number twice panics.
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists", code))
	}
	codes[code] = l.en
	return &Code{code: code, status: false, Lang: l}
}

// NewSuss registers a success code.
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already exists", code))
	}
	sussCodes[code] = l.en
	return &Code{code: code, status: true, Lang: l}
}

// Clone returns a copy without data or details, so the registered code stays untouched
// Clone 创建一个新的 Code 副本
func (e *Code) Clone() *Code {
	return &Code{
		code:    e.code,
		status:  e.status,
		Lang:    e.Lang,
		details: []string{},
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

// MsgIn returns the message in a specific language regardless of the global setting
func (e *Code) MsgIn(language string) string {
	return e.Lang.text(language)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

// WithData attaches response data to a clone of e
func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.details, c.haveDetails = e.details, e.haveDetails
	c.haveData = true
	c.data = data
	return c
}

// WithDetails attaches details to a clone of e
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.data, c.haveData = e.data, e.haveData
	c.haveDetails = true
	c.details = append(c.details, details...)
	return c
}

// Is reports whether target is the same numbered code, so clones match their origin under errors.Is
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code && t.status == e.status
}

func (e *Code) StatusCode() int {
	return http.StatusOK
}
