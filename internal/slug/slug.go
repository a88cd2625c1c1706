// Package slug chuẩn hóa và đảm bảo tính duy nhất của slug trong một collection.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// stripMarks loại bỏ dấu tiếng Việt: decompose NFD rồi bỏ các combining mark.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize chuyển text bất kỳ thành slug: bỏ dấu, lowercase,
// mọi run ký tự không phải [a-z0-9] thành một dấu gạch ngang, cắt gạch hai đầu.
func Normalize(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	// đ không phải combining mark nên xử lý riêng
	stripped = strings.ReplaceAll(stripped, "đ", "d")
	stripped = strings.ReplaceAll(stripped, "Đ", "D")

	out := strings.ToLower(stripped)
	out = nonAlnumRe.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// Prober kiểm tra một slug candidate đã được document khác sử dụng hay chưa.
type Prober func(ctx context.Context, candidate string) (taken bool, err error)

// EnsureUnique trả về slug duy nhất từ base: thử base, rồi base-2, base-3, ...
// base rỗng thì dùng fallback (thường là hex của ObjectID).
// Vòng probe không atomic, unique index trên slug là trọng tài cuối cùng,
// ghi trùng sẽ trả về conflict 409 để client thử lại.
func EnsureUnique(ctx context.Context, base, fallback string, taken Prober) (string, error) {
	candidate := base
	if candidate == "" {
		candidate = fallback
	}
	if candidate == "" {
		return "", fmt.Errorf("slug: both base and fallback are empty")
	}

	isTaken, err := taken(ctx, candidate)
	if err != nil {
		return "", err
	}
	if !isTaken {
		return candidate, nil
	}

	for i := 2; ; i++ {
		next := fmt.Sprintf("%s-%d", candidate, i)
		isTaken, err := taken(ctx, next)
		if err != nil {
			return "", err
		}
		if !isTaken {
			return next, nil
		}
	}
}
