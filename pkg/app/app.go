package app

import (
	"strings"

	"github.com/haierkeys/product-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// LangKey gin context key holding the request language
const LangKey = "lang"

// GetLang returns the language chosen for the request, empty when none was set
func GetLang(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(LangKey)
}

type Response struct {
	Ctx *gin.Context
}

// ListRes list payload // 列表数据
type ListRes struct {
	List  interface{} `json:"list"`  // Data list // 数据清单
	Total int         `json:"total"` // Row count // 总行数
}

// Res is the unified response structure: Code/Status/Msg/Data
// Res 是统一的响应结构
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// ToResponse output to browser
// ToResponse 输出到浏览器
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.MsgIn(r.language()),
		Data:    codeObj.Data(),
	}

	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.send(codeObj.StatusCode(), content)
}

// ToResponseList outputs a list response using ListRes as Data
// ToResponseList 输出列表响应
func (r *Response) ToResponseList(codeObj *code.Code, list interface{}, total int) {
	r.ToResponse(codeObj.WithData(ListRes{List: list, Total: total}))
}

func (r *Response) language() string {
	if l := GetLang(r.Ctx); l != "" {
		return l
	}
	return code.GetGlobalDefaultLang()
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.JSON(statusCode, content)
}
