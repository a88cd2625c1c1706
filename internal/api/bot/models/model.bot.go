package botmodels

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

// Trạng thái của bot
const (
	BotStatusActive   = "active"
	BotStatusInactive = "inactive"
)

// Chu kỳ thanh toán của một pricing tier
const (
	PricingIntervalMonth   = "month"
	PricingIntervalYear    = "year"
	PricingIntervalOneTime = "one_time"
	PricingIntervalOther   = "other"
)

// Currency mặc định khi client không gửi
const DefaultCurrency = "USD"

// BotCategories danh sách category hợp lệ của bot.
var BotCategories = []string{
	"customer-support",
	"ai-education",
	"office-ai",
	"growth-marketing",
	"writing-editing",
	"technology-it",
	"design-creative",
	"workflow-automation",
}

// IsValidCategory kiểm tra category có nằm trong danh sách hợp lệ không.
func IsValidCategory(category string) bool {
	for _, c := range BotCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidInterval kiểm tra interval của pricing tier.
func IsValidInterval(interval string) bool {
	switch interval {
	case PricingIntervalMonth, PricingIntervalYear, PricingIntervalOneTime, PricingIntervalOther:
		return true
	}
	return false
}

// PricingTier là một gói giá của bot.
type PricingTier struct {
	Plan      i18n.Text `json:"plan,omitempty" bson:"plan,omitempty" index:"text:2"`           // Tên gói
	PriceText i18n.Text `json:"priceText,omitempty" bson:"priceText,omitempty" index:"text:2"` // Giá hiển thị dạng text
	Amount    float64   `json:"amount,omitempty" bson:"amount,omitempty"`                      // Số tiền (0 = free/không rõ)
	Currency  string    `json:"currency,omitempty" bson:"currency,omitempty"`                  // Mặc định USD
	Interval  string    `json:"interval,omitempty" bson:"interval,omitempty"`                  // month | year | one_time | other
}

// SEO metadata cho trang chi tiết bot.
type SEO struct {
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	OgImage     string `json:"ogImage,omitempty" bson:"ogImage,omitempty"`
	Canonical   string `json:"canonical,omitempty" bson:"canonical,omitempty"`
}

// Bot là một listing công cụ AI trong danh mục.
// Các field tag index:"text:<weight>" cùng tham gia text index bot_text_idx,
// field kiểu i18n.Text được đánh index cho cả hai biến thể vi/en.
type Bot struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Nội dung đa ngôn ngữ
	Name        i18n.Text   `json:"name" bson:"name" index:"text:10"`                           // Tên bot (bắt buộc)
	Title       i18n.Text   `json:"title,omitempty" bson:"title,omitempty" index:"text:9"`      // Tiêu đề hiển thị
	Summary     i18n.Text   `json:"summary,omitempty" bson:"summary,omitempty" index:"text:6"`  // Tóm tắt ngắn
	Description i18n.Text   `json:"description,omitempty" bson:"description,omitempty" index:"text:4"`
	Features    []i18n.Text `json:"features,omitempty" bson:"features,omitempty" index:"text:3"`
	Strengths   []i18n.Text `json:"strengths,omitempty" bson:"strengths,omitempty" index:"text:3"`
	Weaknesses  []i18n.Text `json:"weaknesses,omitempty" bson:"weaknesses,omitempty" index:"text:2"`
	TargetUsers []i18n.Text `json:"targetUsers,omitempty" bson:"targetUsers,omitempty" index:"text:2"`
	Pricing     []PricingTier `json:"pricing,omitempty" bson:"pricing,omitempty"`

	// Định danh và liên kết
	Slug          string `json:"slug" bson:"slug" index:"unique"`                              // Slug duy nhất
	ExternalKey   string `json:"externalKey,omitempty" bson:"externalKey,omitempty" index:"unique,sparse"` // Khóa đồng bộ từ nguồn ngoài
	Image         string `json:"image,omitempty" bson:"image,omitempty"`
	AffiliateLink string `json:"affiliateLink,omitempty" bson:"affiliateLink,omitempty"`
	OriginURL     string `json:"originUrl,omitempty" bson:"originUrl,omitempty"`

	// Thông tin nhà phát hành
	Headquarters string `json:"headquarters,omitempty" bson:"headquarters,omitempty"`
	FoundedYear  int    `json:"foundedYear,omitempty" bson:"foundedYear,omitempty"`

	// Phân loại
	Category string   `json:"category,omitempty" bson:"category,omitempty" index:"single:1"`
	Tags     []string `json:"tags,omitempty" bson:"tags,omitempty" index:"text:2"` // Lowercase, đã dedupe

	// Số liệu
	Views  int64 `json:"views" bson:"views" index:"single:-1"`
	Clicks int64 `json:"clicks" bson:"clicks"`

	SEO    SEO    `json:"seo,omitempty" bson:"seo,omitempty"`
	Status string `json:"status" bson:"status" index:"single:1"` // active | inactive

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
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
