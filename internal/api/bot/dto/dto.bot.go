// Package botdto chứa input DTO cho bot. Client có thể gửi field đa ngôn ngữ
// dạng string đơn (payload cũ, nhân đôi cho cả hai ngôn ngữ) hoặc dạng object
// {vi, en}; việc decode nằm ở các kiểu Localized* trong basedto.
package botdto

import (
	"strings"

	basedto "github.com/hoangtien07/AI-Tool-server/internal/api/base/dto"
	botmodels "github.com/hoangtien07/AI-Tool-server/internal/api/bot/models"
)

// Alias các kiểu input dùng chung.
type (
	LocalizedValue = basedto.LocalizedValue
	LocalizedList  = basedto.LocalizedList
	FlexibleInt    = basedto.FlexibleInt
	FlexibleFloat  = basedto.FlexibleFloat
)

// PricingTierInput là input một gói giá.
type PricingTierInput struct {
	Plan      LocalizedValue `json:"plan"`
	PriceText LocalizedValue `json:"priceText"`
	Amount    FlexibleFloat  `json:"amount"`
	Currency  string         `json:"currency"`
	Interval  string         `json:"interval" validate:"omitempty,oneof=month year one_time other"`
}

// ToModel chuyển tier input sang model, áp default currency/interval.
func (p PricingTierInput) ToModel() botmodels.PricingTier {
	tier := botmodels.PricingTier{
		Plan:      p.Plan.Text(),
		PriceText: p.PriceText.Text(),
		Amount:    float64(p.Amount),
		Currency:  strings.ToUpper(strings.TrimSpace(p.Currency)),
		Interval:  p.Interval,
	}
	if tier.Currency == "" {
		tier.Currency = botmodels.DefaultCurrency
	}
	if tier.Interval == "" {
		tier.Interval = botmodels.PricingIntervalMonth
	}
	return tier
}

// SEOInput là input metadata SEO.
type SEOInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OgImage     string `json:"ogImage"`
	Canonical   string `json:"canonical"`
}

// BotCreateInput là payload tạo bot mới.
type BotCreateInput struct {
	Name        LocalizedValue     `json:"name" validate:"required"`
	Title       LocalizedValue     `json:"title"`
	Summary     LocalizedValue     `json:"summary"`
	Description LocalizedValue     `json:"description"`
	Features    LocalizedList      `json:"features"`
	Strengths   LocalizedList      `json:"strengths"`
	Weaknesses  LocalizedList      `json:"weaknesses"`
	TargetUsers LocalizedList      `json:"targetUsers"`
	Pricing     []PricingTierInput `json:"pricing" validate:"omitempty,dive"`

	Slug          string `json:"slug"`
	ExternalKey   string `json:"externalKey"`
	Image         string `json:"image" validate:"omitempty,no_xss"`
	AffiliateLink string `json:"affiliateLink"`
	OriginURL     string `json:"originUrl"`

	Headquarters string      `json:"headquarters"`
	FoundedYear  FlexibleInt `json:"foundedYear"`

	Category string   `json:"category" validate:"omitempty,oneof=customer-support ai-education office-ai growth-marketing writing-editing technology-it design-creative workflow-automation"`
	Tags     []string `json:"tags"`

	SEO    *SEOInput `json:"seo"`
	Status string    `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ToModel chuyển create input sang Bot model với các default:
// status active, tags đã chuẩn hóa, pricing đã áp default currency/interval.
// Slug để service sinh sau.
func (in *BotCreateInput) ToModel() botmodels.Bot {
	bot := botmodels.Bot{
		Name:        in.Name.Text(),
		Title:       in.Title.Text(),
		Summary:     in.Summary.Text(),
		Description: in.Description.Text(),
		Features:    in.Features.Texts(),
		Strengths:   in.Strengths.Texts(),
		Weaknesses:  in.Weaknesses.Texts(),
		TargetUsers: in.TargetUsers.Texts(),

		Slug:          strings.TrimSpace(in.Slug),
		ExternalKey:   strings.TrimSpace(in.ExternalKey),
		Image:         in.Image,
		AffiliateLink: in.AffiliateLink,
		OriginURL:     in.OriginURL,
		Headquarters:  in.Headquarters,
		FoundedYear:   int(in.FoundedYear),
		Category:      in.Category,
		Tags:          botmodels.UniqueTags(in.Tags),
		Status:        in.Status,
	}

	for _, tier := range in.Pricing {
		bot.Pricing = append(bot.Pricing, tier.ToModel())
	}
	if in.SEO != nil {
		bot.SEO = botmodels.SEO{
			Title:       in.SEO.Title,
			Description: in.SEO.Description,
			OgImage:     in.SEO.OgImage,
			Canonical:   in.SEO.Canonical,
		}
	}
	if bot.Status == "" {
		bot.Status = botmodels.BotStatusActive
	}
	return bot
}

// BotUpdateInput là payload cập nhật bot. Field con trỏ nil = không gửi.
// Khi Lang được gửi, các field đa ngôn ngữ chỉ cập nhật biến thể của Lang đó.
type BotUpdateInput struct {
	Name        *LocalizedValue     `json:"name"`
	Title       *LocalizedValue     `json:"title"`
	Summary     *LocalizedValue     `json:"summary"`
	Description *LocalizedValue     `json:"description"`
	Features    *LocalizedList      `json:"features"`
	Strengths   *LocalizedList      `json:"strengths"`
	Weaknesses  *LocalizedList      `json:"weaknesses"`
	TargetUsers *LocalizedList      `json:"targetUsers"`
	Pricing     *[]PricingTierInput `json:"pricing" validate:"omitempty,dive"`

	Slug          *string `json:"slug"`
	ExternalKey   *string `json:"externalKey"`
	Image         *string `json:"image" validate:"omitempty,no_xss"`
	AffiliateLink *string `json:"affiliateLink"`
	OriginURL     *string `json:"originUrl"`

	Headquarters *string      `json:"headquarters"`
	FoundedYear  *FlexibleInt `json:"foundedYear"`

	Category *string   `json:"category" validate:"omitempty,oneof=customer-support ai-education office-ai growth-marketing writing-editing technology-it design-creative workflow-automation"`
	Tags     *[]string `json:"tags"`

	SEO    *SEOInput `json:"seo"`
	Status *string   `json:"status" validate:"omitempty,oneof=active inactive"`

	Lang     string `json:"lang" validate:"omitempty,lang"` // Chỉ cập nhật biến thể ngôn ngữ này
	KeepSlug bool   `json:"keepSlug"`                       // Giữ slug cũ dù title/name đổi
}
