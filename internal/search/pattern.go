package search

import (
	"regexp"
	"strings"
)

// BuildPattern ghép các term thành một pattern dạng (t1|t2|...),
// mỗi term đã được escape regex metacharacters theo nghĩa đen.
// Không có term nào → trả về chuỗi rỗng.
// Cùng một pattern này được dùng cho cả filter ở store lẫn highlight snippet.
func BuildPattern(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = regexp.QuoteMeta(t)
	}
	return "(" + strings.Join(escaped, "|") + ")"
}

// Compile biên dịch pattern thành regex case-insensitive.
// Pattern rỗng → (nil, nil): caller hiểu là không có gì để match.
func Compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile("(?i)" + pattern)
}

// FromQuery là đường tắt Tokenize → BuildPattern → Compile cho một câu truy vấn.
func FromQuery(q string) (string, *regexp.Regexp, error) {
	pattern := BuildPattern(Tokenize(q))
	re, err := Compile(pattern)
	if err != nil {
		return "", nil, err
	}
	return pattern, re, nil
}
