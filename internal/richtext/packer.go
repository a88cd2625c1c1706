// Package richtext chuẩn hóa nội dung rich text do client gửi lên:
// sanitize HTML và trích plain text phục vụ đánh index tìm kiếm.
package richtext

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

// policy dùng chung cho mọi request, bluemonday.Policy an toàn khi dùng đồng thời.
var policy = bluemonday.UGCPolicy()

// Pack dựng RichContent từ nội dung raw: html = sanitize(raw), text = plain(html).
// Gọi lại với raw đã pack cho ra cùng kết quả (idempotent).
func Pack(raw string) i18n.RichContent {
	if strings.TrimSpace(raw) == "" {
		return i18n.RichContent{Raw: raw}
	}
	sanitized := policy.Sanitize(raw)
	return i18n.RichContent{
		Raw:  raw,
		HTML: sanitized,
		Text: PlainText(sanitized),
	}
}

// PackText áp dụng Pack cho từng biến thể ngôn ngữ có raw.
// Biến thể không có raw bị loại bỏ, html/text không bao giờ nhận trực tiếp từ client.
func PackText(in i18n.RichText) i18n.RichText {
	if len(in) == 0 {
		return i18n.RichText{}
	}
	out := i18n.RichText{}
	for _, lang := range []string{i18n.LangVI, i18n.LangEN} {
		if c, ok := in[lang]; ok && strings.TrimSpace(c.Raw) != "" {
			out[lang] = Pack(c.Raw)
		}
	}
	return out
}

// PlainText trích plain text từ một đoạn HTML: nối các text node,
// bỏ nội dung script/style, gộp whitespace liên tiếp thành một khoảng trắng.
func PlainText(htmlStr string) string {
	if strings.TrimSpace(htmlStr) == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		// Parse lỗi thì coi toàn bộ là text thô
		return collapseSpaces(htmlStr)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseSpaces(sb.String())
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
