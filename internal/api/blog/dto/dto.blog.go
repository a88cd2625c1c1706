// Package blogdto chứa input DTO cho blog.
package blogdto

import (
	"strings"

	basedto "github.com/hoangtien07/AI-Tool-server/internal/api/base/dto"
	blogmodels "github.com/hoangtien07/AI-Tool-server/internal/api/blog/models"
)

// Alias các kiểu input dùng chung.
type (
	LocalizedValue = basedto.LocalizedValue
	LocalizedRich  = basedto.LocalizedRich
	FlexibleInt    = basedto.FlexibleInt
)

// BlogCreateInput là payload tạo bài viết mới.
// Content nhận HTML thô theo ngôn ngữ; sanitize và trích plain text
// diễn ra ở service trước khi ghi.
type BlogCreateInput struct {
	Title   LocalizedValue `json:"title" validate:"required"`
	Excerpt LocalizedValue `json:"excerpt"`
	Content LocalizedRich  `json:"content"`

	Slug        string      `json:"slug"`
	Tags        []string    `json:"tags"`
	Image       string      `json:"image" validate:"omitempty,no_xss"`
	Status      string      `json:"status" validate:"omitempty,oneof=draft active archived"`
	PublishedAt FlexibleInt `json:"publishedAt"` // UnixMilli

	Source      string `json:"source" validate:"omitempty,oneof=notion manual"`
	SourceURL   string `json:"sourceUrl"`
	ExternalKey string `json:"externalKey"`
}

// ToModel chuyển create input sang Blog model. Content để nguyên Raw,
// service sẽ pack (sanitize + plain text) trước khi ghi.
func (in *BlogCreateInput) ToModel() blogmodels.Blog {
	blog := blogmodels.Blog{
		Title:   in.Title.Text(),
		Excerpt: in.Excerpt.Text(),
		Content: in.Content.RichText(),

		Slug:        strings.TrimSpace(in.Slug),
		Tags:        blogmodels.UniqueTags(in.Tags),
		Image:       in.Image,
		Status:      in.Status,
		PublishedAt: int64(in.PublishedAt),

		Source:      in.Source,
		SourceURL:   in.SourceURL,
		ExternalKey: strings.TrimSpace(in.ExternalKey),
	}
	if blog.Status == "" {
		blog.Status = blogmodels.BlogStatusActive
	}
	if blog.Source == "" {
		blog.Source = blogmodels.BlogSourceManual
	}
	return blog
}

// BlogUpdateInput là payload cập nhật bài viết. Field con trỏ nil = không gửi.
// Khi Lang được gửi, title/excerpt/content chỉ cập nhật biến thể của Lang đó.
type BlogUpdateInput struct {
	Title   *LocalizedValue `json:"title"`
	Excerpt *LocalizedValue `json:"excerpt"`
	Content *LocalizedRich  `json:"content"`

	Slug        *string      `json:"slug"`
	Tags        *[]string    `json:"tags"`
	Image       *string      `json:"image" validate:"omitempty,no_xss"`
	Status      *string      `json:"status" validate:"omitempty,oneof=draft active archived"`
	PublishedAt *FlexibleInt `json:"publishedAt"`

	Source      *string `json:"source" validate:"omitempty,oneof=notion manual"`
	SourceURL   *string `json:"sourceUrl"`
	ExternalKey *string `json:"externalKey"`

	Lang     string `json:"lang" validate:"omitempty,lang"` // Chỉ cập nhật biến thể ngôn ngữ này
	KeepSlug bool   `json:"keepSlug"`                       // Giữ slug cũ dù title đổi
}
