package uidstress

import (
	"bytes"
	"strings"

	"ulidkit/pkg/ulid"
)

// orderCheck 校验有序文本流：相邻两个 ULID 的文本顺序、数值顺序（Compare）
// 与 16 字节大端序顺序必须一致
type orderCheck struct {
	prev       ulid.ULID
	prevText   string
	hasPrev    bool
	violations int64
}

// observe 接收下一个文本，无法解析的值直接跳过（已在 Invalid 中计数）
func (c *orderCheck) observe(text string) {
	id, err := ulid.Parse(text)
	if err != nil {
		return
	}
	if c.hasPrev {
		want := strings.Compare(c.prevText, text)
		if c.prev.Compare(id) != want || bytes.Compare(c.prev.Bytes(), id.Bytes()) != want {
			c.violations++
		}
	}
	c.prev, c.prevText, c.hasPrev = id, text, true
}
