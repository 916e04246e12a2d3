package tools

import (
	oklog "github.com/oklog/ulid/v2"

	"ulidkit/pkg/ulid"
)

// GenerateULID 生成 ULID（Universally Unique Lexicographically Sortable Identifier）
// 使用本仓库 pkg/ulid 的实现，返回 26 字符的规范大写文本
func GenerateULID() string {
	return ulid.Make().String()
}

// GenerateOklogULID 使用 oklog/ulid 参考实现生成 ULID，用于对照
func GenerateOklogULID() string {
	return oklog.Make().String()
}

// VerifyULID 校验 ULID 文本（长度、字符集、溢出）
func VerifyULID(s string) error {
	_, err := ulid.Parse(s)
	return err
}
