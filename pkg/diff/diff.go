package diff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stat counts the characters inserted into and deleted from a text
type Stat struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// Changed reports whether any character differs
func (s Stat) Changed() bool {
	return s.Inserted > 0 || s.Deleted > 0
}

// Patch returns the textual patch (GNU diff-like, URL-escaped) turning before into after.
// An empty string means the two texts are equal.
// Patch 生成从 before 到 after 的补丁文本
func Patch(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	return dmp.PatchToText(dmp.PatchMake(before, diffs))
}

// Apply applies a patch produced by Patch to text.
// ok is false when any hunk could not be applied.
func Apply(text, patch string) (result string, ok bool, err error) {
	if patch == "" {
		return text, true, nil
	}
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patch)
	if err != nil {
		return "", false, err
	}
	result, applied := dmp.PatchApply(patches, text)
	ok = true
	for _, a := range applied {
		if !a {
			ok = false
			break
		}
	}
	return result, ok, nil
}

// Summarize counts inserted and deleted characters (runes) between before and after
// Summarize 统计新增与删除的字符数
func Summarize(before, after string) Stat {
	var s Stat
	if before == after {
		return s
	}
	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(before, after, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			s.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return s
}
