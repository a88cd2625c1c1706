package blogmodels

import (
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

// Trạng thái của bài viết
const (
	BlogStatusDraft    = "draft"
	BlogStatusActive   = "active"
	BlogStatusArchived = "archived"
)

// Nguồn của bài viết
const (
	BlogSourceNotion = "notion"
	BlogSourceManual = "manual"
)

// Độ dài tối đa của excerpt sinh tự động từ nội dung.
const excerptMaxLen = 200

// Blog là một bài viết trong danh mục nội dung.
// Content lưu cả ba dạng raw/html/text theo từng ngôn ngữ; biến thể text
// tham gia text index để tìm kiếm không dính markup.
type Blog struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Title   i18n.Text     `json:"title" bson:"title" index:"text:10"`
	Excerpt i18n.Text     `json:"excerpt,omitempty" bson:"excerpt,omitempty" index:"text:6"`
	Content i18n.RichText `json:"content,omitempty" bson:"content,omitempty" index:"text:4"`

	Slug        string   `json:"slug" bson:"slug" index:"unique"`
	Tags        []string `json:"tags,omitempty" bson:"tags,omitempty" index:"text:2"` // Lowercase, đã dedupe
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	Status      string   `json:"status" bson:"status" index:"single:1"` // draft | active | archived
	PublishedAt int64    `json:"publishedAt,omitempty" bson:"publishedAt,omitempty" index:"single:-1"`

	// Nguồn đồng bộ: notion (sync tự động) hoặc manual
	Source      string `json:"source,omitempty" bson:"source,omitempty"`
	SourceURL   string `json:"sourceUrl,omitempty" bson:"sourceUrl,omitempty"`
	ExternalKey string `json:"externalKey,omitempty" bson:"externalKey,omitempty" index:"unique,sparse"`

	Views int64 `json:"views" bson:"views" index:"single:-1"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// DeriveExcerpt sinh excerpt cho các ngôn ngữ còn thiếu từ plain text
// của content, cắt còn excerptMaxLen rune.
func DeriveExcerpt(excerpt i18n.Text, content i18n.RichText) i18n.Text {
	out := i18n.Text{}
	for lang, val := range excerpt {
		out[lang] = val
	}
	for _, lang := range []string{i18n.LangVI, i18n.LangEN} {
		if strings.TrimSpace(out[lang]) != "" {
			continue
		}
		text := strings.TrimSpace(content[lang].Text)
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) > excerptMaxLen {
			text = string([]rune(text)[:excerptMaxLen]) + "…"
		}
		out[lang] = text
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// UniqueTags chuẩn hóa tags: trim, lowercase, bỏ rỗng, dedupe giữ thứ tự.
func UniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
