package tools

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"ulidkit/pkg/ulid"
)

// TestUID_LengthComparison 测试各方案生成的 ID 长度与格式
func TestUID_LengthComparison(t *testing.T) {
	for _, tt := range Schemes() {
		t.Run(tt.Name, func(t *testing.T) {
			// 生成多个 ID 确保长度一致
			for i := 0; i < 10; i++ {
				id := tt.Generate()
				if len(id) != tt.Length {
					t.Errorf("%s length = %v, want %v (ID: %s)", tt.Name, len(id), tt.Length, id)
				}
				if tt.Verify != nil {
					if err := tt.Verify(id); err != nil {
						t.Errorf("%s verify(%s) = %v", tt.Name, id, err)
					}
				}
			}
		})
	}
}

// TestLookup 测试按名称和别名查找方案
func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "ulid", want: "ulid"},
		{input: "ULID", want: "ulid"},
		{input: " oklog ", want: "oklog"},
		{input: "ulid-oklog", want: "oklog"},
		{input: "ksuid", want: "ksuid"},
		{input: "nanoid", want: "nanoid16"},
	}

	for _, tt := range tests {
		s, err := Lookup(tt.input)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", tt.input, err)
			continue
		}
		if s.Name != tt.want {
			t.Errorf("Lookup(%q) = %s, want %s", tt.input, s.Name, tt.want)
		}
	}

	if _, err := Lookup("customuid"); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Lookup(customuid) error = %v, want ErrUnknownScheme", err)
	}
}

// TestVerify_RejectsForeignIDs 各方案的校验函数拒绝其他方案的 ID
func TestVerify_RejectsForeignIDs(t *testing.T) {
	if err := VerifyULID(GenerateKSUID()); !errors.Is(err, ulid.ErrInvalidLength) {
		t.Errorf("VerifyULID(ksuid) = %v, want ErrInvalidLength", err)
	}
	if err := VerifyKSUID(GenerateULID()); err == nil {
		t.Error("VerifyKSUID(ulid) = nil, want error")
	}
	if err := verifyNanoID(compareSize)("ABCDEFGHJKMNPQRS"); err == nil {
		t.Error("verifyNanoID(uppercase) = nil, want error")
	}
}

// TestULID_OrderedSchemesAgree 两种 ULID 实现生成的文本互相可解析，且按时间排序
func TestULID_OrderedSchemesAgree(t *testing.T) {
	var ids []string
	for _, s := range Schemes() {
		if !s.Ordered {
			continue
		}
		ids = append(ids, s.Generate())
		time.Sleep(2 * time.Millisecond)
	}
	if len(ids) < 2 {
		t.Fatalf("expected at least two ordered schemes, got %d", len(ids))
	}
	if !sort.StringsAreSorted(ids) {
		t.Errorf("ULIDs generated in sequence are not sorted: %v", ids)
	}
	for _, s := range ids {
		if _, err := ulid.Parse(s); err != nil {
			t.Errorf("Parse(%s) = %v", s, err)
		}
	}
}

// BenchmarkUID_Comparison 对比测试，在同一基准下测试各方案
func BenchmarkUID_Comparison(b *testing.B) {
	for _, s := range Schemes() {
		b.Run(s.Name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.Generate()
			}
		})
	}
}

// BenchmarkUID_Parallel 并发性能测试
func BenchmarkUID_Parallel(b *testing.B) {
	for _, s := range Schemes() {
		b.Run(s.Name, func(b *testing.B) {
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					s.Generate()
				}
			})
		})
	}
}

// TestUID_Uniqueness_Comparison 对比测试，生成 1,000,000 个 ID 进行唯一性对比
func TestUID_Uniqueness_Comparison(t *testing.T) {
	count := 1000000
	if testing.Short() {
		count = 10000
	}

	for _, tt := range Schemes() {
		t.Run(tt.Name, func(t *testing.T) {
			ids := make(map[string]bool, count)
			duplicates := 0

			for i := 0; i < count; i++ {
				id := tt.Generate()
				if ids[id] {
					duplicates++
					if duplicates == 1 {
						t.Errorf("%s found duplicate ID at iteration %d: %s", tt.Name, i, id)
					}
				}
				ids[id] = true
			}

			uniqueCount := len(ids)
			if uniqueCount != count {
				t.Errorf("%s uniqueness: got %v unique IDs (expected %v), found %d duplicates", tt.Name, uniqueCount, count, duplicates)
			} else {
				t.Logf("%s: Generated %d unique IDs, no duplicates found", tt.Name, uniqueCount)
			}
		})
	}
}

// TestUID_ConcurrentSafety 测试各方案在并发场景下的安全性
func TestUID_ConcurrentSafety(t *testing.T) {
	const goroutines = 100
	const idsPerGoroutine = 1000

	for _, tt := range Schemes() {
		t.Run(tt.Name, func(t *testing.T) {
			ids := make(chan string, goroutines*idsPerGoroutine)
			var wg sync.WaitGroup

			// 启动多个 goroutine 并发生成 ID
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < idsPerGoroutine; j++ {
						ids <- tt.Generate()
					}
				}()
			}

			wg.Wait()
			close(ids)

			// 检查唯一性
			uniqueIds := make(map[string]bool)
			duplicates := 0
			totalCount := 0

			for id := range ids {
				totalCount++
				if uniqueIds[id] {
					duplicates++
					if duplicates == 1 {
						t.Errorf("%s concurrent test: duplicate ID found: %s", tt.Name, id)
					}
				}
				uniqueIds[id] = true
			}

			expectedCount := goroutines * idsPerGoroutine
			if len(uniqueIds) != expectedCount {
				t.Errorf("%s concurrent uniqueness: got %v unique IDs (expected %v), found %d duplicates", tt.Name, len(uniqueIds), expectedCount, duplicates)
			} else {
				t.Logf("%s: Concurrent test passed - Generated %d unique IDs from %d total, no duplicates", tt.Name, len(uniqueIds), totalCount)
			}
		})
	}
}
