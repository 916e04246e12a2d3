package tools

import (
	"fmt"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz-"
	defaultSize     = 12
	// compareSize 与 ULID 对照时使用的长度
	compareSize = 16
)

// GetNanoId 生成默认长度（12）的 NanoID
func GetNanoId() string {
	return GetNanoIdBy(defaultSize)
}

// GetNanoIdBy 生成指定长度的 NanoID，不具备时间排序特性
func GetNanoIdBy(length int) string {
	id, _ := nanoid.Generate(defaultAlphabet, length)
	return id
}

// verifyNanoID 返回一个校验函数：长度固定且字符都在字母表内
func verifyNanoID(length int) func(string) error {
	return func(s string) error {
		if len(s) != length {
			return fmt.Errorf("nanoid: length %d, want %d", len(s), length)
		}
		if i := strings.IndexFunc(s, func(r rune) bool { return !strings.ContainsRune(defaultAlphabet, r) }); i >= 0 {
			return fmt.Errorf("nanoid: invalid character %q at position %d", s[i], i)
		}
		return nil
	}
}
