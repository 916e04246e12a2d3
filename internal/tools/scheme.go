package tools

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScheme 未知的 ID 方案
var ErrUnknownScheme = errors.New("unknown scheme")

// Scheme 描述一种 ID 生成方案
type Scheme struct {
	Name    string
	Aliases []string
	Length  int
	// Generate 必须是并发安全的
	Generate func() string
	// Verify 校验单个 ID 的格式，可为 nil
	Verify func(string) error
	// Ordered 为 true 时文本可被 pkg/ulid 解析，压测会额外校验排序一致性
	Ordered bool
}

// Schemes 返回所有内置方案
func Schemes() []Scheme {
	return []Scheme{
		{
			Name:     "ulid",
			Length:   26,
			Generate: GenerateULID,
			Verify:   VerifyULID,
			Ordered:  true,
		},
		{
			Name:     "oklog",
			Aliases:  []string{"ulid-oklog", "oklog-ulid"},
			Length:   26,
			Generate: GenerateOklogULID,
			Verify:   VerifyULID,
			Ordered:  true,
		},
		{
			Name:     "ksuid",
			Length:   27,
			Generate: GenerateKSUID,
			Verify:   VerifyKSUID,
		},
		{
			Name:     "nanoid16",
			Aliases:  []string{"nanoid"},
			Length:   compareSize,
			Generate: func() string { return GetNanoIdBy(compareSize) },
			Verify:   verifyNanoID(compareSize),
		},
	}
}

// SchemeNames 返回所有方案名称
func SchemeNames() []string {
	all := Schemes()
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name)
	}
	return names
}

// Lookup 按名称或别名（不区分大小写）查找方案
func Lookup(name string) (Scheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Schemes() {
		if s.Name == name {
			return s, nil
		}
		for _, alias := range s.Aliases {
			if alias == name {
				return s, nil
			}
		}
	}
	return Scheme{}, fmt.Errorf("%w %q", ErrUnknownScheme, name)
}
