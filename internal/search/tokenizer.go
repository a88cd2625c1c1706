// Package search chứa phần lõi của tìm kiếm đa ngôn ngữ: tách term,
// build regex pattern, cắt snippet có highlight và trộn kết quả hai pha.
package search

import (
	"regexp"
	"strings"
)

// termRe tách cụm trong dấu nháy kép thành một term, còn lại tách theo whitespace.
var termRe = regexp.MustCompile(`"([^"]+)"|(\S+)`)

// Tokenize tách chuỗi truy vấn thành các term.
// Cụm trong dấu nháy kép được giữ nguyên làm một term (bỏ dấu nháy),
// phần còn lại mỗi run ký tự liền nhau là một term. Dấu nháy kép lạc
// (không đóng, hoặc dính giữa term) bị loại khỏi term. Input rỗng → slice rỗng.
func Tokenize(q string) []string {
	matches := termRe.FindAllStringSubmatch(q, -1)
	if len(matches) == 0 {
		return nil
	}
	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] != "" {
			terms = append(terms, m[1])
		} else if term := strings.ReplaceAll(m[2], `"`, ""); term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil
	}
	return terms
}
