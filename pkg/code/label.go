package code

// Label is a localized UI text without a numeric code
type Label = lang

// Administration panel labels
// 管理面板文案
var (
	LabelButtonAddNote  = Label{en: "Add note", zh_cn: "添加备注"}
	LabelButtonEdit     = Label{en: "Edit", zh_cn: "编辑"}
	LabelButtonSave     = Label{en: "Save", zh_cn: "保存"}
	LabelButtonDelete   = Label{en: "Delete", zh_cn: "删除"}
	LabelButtonCancel   = Label{en: "Cancel", zh_cn: "取消"}
	LabelConfirmDelete  = Label{en: "Do you really want to delete this note?", zh_cn: "确定要删除这条备注吗？"}
	LabelColumnNote     = Label{en: "Note", zh_cn: "备注"}
	LabelColumnSolved   = Label{en: "Solved", zh_cn: "已解决"}
	LabelColumnCreateAt = Label{en: "Created at", zh_cn: "创建时间"}
)
