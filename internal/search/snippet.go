package search

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kích thước cửa sổ snippet quanh vị trí match đầu tiên và độ dài tối đa
// khi không có match.
const (
	snippetBefore = 80
	snippetAfter  = 120
	snippetMaxLen = 200
)

// Snippet cắt một đoạn ngắn quanh match đầu tiên của re trong raw,
// escape HTML rồi bọc các match trong thẻ <mark>.
//
//   - raw rỗng → "".
//   - re nil hoặc không match → escape + cắt còn snippetMaxLen ký tự, thêm "…" nếu bị cắt.
//   - có match tại vị trí i → cửa sổ [i-80, i+120] (tính theo rune),
//     thêm "…" ở đầu/cuối nếu cửa sổ bị cắt.
//
// Escape luôn chạy trước khi chèn <mark>, nên output không bao giờ chứa
// ký tự < > & chưa escape lấy từ nội dung gốc.
func Snippet(raw string, re *regexp.Regexp) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if re == nil {
		return truncateEscaped(raw)
	}

	loc := re.FindStringIndex(raw)
	if loc == nil {
		return truncateEscaped(raw)
	}

	// Cửa sổ tính theo rune để không cắt giữa ký tự UTF-8
	runes := []rune(raw)
	matchRuneIdx := utf8.RuneCountInString(raw[:loc[0]])

	start := matchRuneIdx - snippetBefore
	if start < 0 {
		start = 0
	}
	end := matchRuneIdx + snippetAfter
	if end > len(runes) {
		end = len(runes)
	}

	window := string(runes[start:end])
	escaped := html.EscapeString(window)
	marked := re.ReplaceAllString(escaped, "<mark>$0</mark>")

	if start > 0 {
		marked = "…" + marked
	}
	if end < len(runes) {
		marked = marked + "…"
	}
	return marked
}

// truncateEscaped escape toàn bộ rồi cắt còn snippetMaxLen rune.
func truncateEscaped(raw string) string {
	runes := []rune(raw)
	if len(runes) <= snippetMaxLen {
		return html.EscapeString(raw)
	}
	return html.EscapeString(string(runes[:snippetMaxLen])) + "…"
}

// PickSource chọn nguồn text cho snippet của một document:
// candidate đầu tiên match pattern, nếu không có thì candidate đầu tiên khác rỗng.
func PickSource(candidates []string, re *regexp.Regexp) string {
	if re != nil {
		for _, c := range candidates {
			if c != "" && re.MatchString(c) {
				return c
			}
		}
	}
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
