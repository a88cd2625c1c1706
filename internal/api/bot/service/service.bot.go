// Package botsvc chứa nghiệp vụ cho bot: tạo/cập nhật với slug duy nhất,
// list có tìm kiếm hai pha ($text rồi fallback regex) và search trả snippet.
package botsvc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	botdto "github.com/hoangtien07/AI-Tool-server/internal/api/bot/dto"
	botmodels "github.com/hoangtien07/AI-Tool-server/internal/api/bot/models"
	basesvc "github.com/hoangtien07/AI-Tool-server/internal/api/base/service"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/global"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
	"github.com/hoangtien07/AI-Tool-server/internal/logger"
	"github.com/hoangtien07/AI-Tool-server/internal/search"
	"github.com/hoangtien07/AI-Tool-server/internal/slug"
)

// Các đường dẫn field dùng cho regex fallback khi $text không khả dụng
// hoặc không khớp (ví dụ term có dấu tiếng Việt bị stemmer bỏ qua).
var botRegexPaths = []string{
	"name.vi", "name.en",
	"title.vi", "title.en",
	"summary.vi", "summary.en",
	"description.vi", "description.en",
	"features.vi", "features.en",
	"strengths.vi", "strengths.en",
	"weaknesses.vi", "weaknesses.en",
	"targetUsers.vi", "targetUsers.en",
	"pricing.plan.vi", "pricing.plan.en",
	"pricing.priceText.vi", "pricing.priceText.en",
	"tags",
}

// Các field được phép sort trong list.
var botSortFields = map[string]bool{
	"createdAt":   true,
	"updatedAt":   true,
	"views":       true,
	"clicks":      true,
	"foundedYear": true,
	"slug":        true,
}

// BotService cung cấp nghiệp vụ cho collection bots.
type BotService struct {
	*basesvc.BaseServiceMongoImpl[botmodels.Bot]
}

// NewBotService tạo service mới, lấy collection từ registry.
func NewBotService() (*BotService, error) {
	col, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.Bots)
	if !ok {
		return nil, common.NewError(common.ErrCodeDatabaseConnection,
			fmt.Sprintf("Không tìm thấy collection %s", global.MongoDB_ColNames.Bots),
			common.StatusInternalServerError,
			map[string]interface{}{"collection": global.MongoDB_ColNames.Bots})
	}
	return &BotService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[botmodels.Bot](col)}, nil
}

// slugProber trả về Prober kiểm tra slug đã bị bot khác dùng chưa.
// excludeID khác Nil thì bỏ qua chính document đó (dùng khi update).
func (s *BotService) slugProber(excludeID primitive.ObjectID) slug.Prober {
	return func(ctx context.Context, candidate string) (bool, error) {
		filter := bson.M{"slug": candidate}
		if !excludeID.IsZero() {
			filter["_id"] = bson.M{"$ne": excludeID}
		}
		return s.DocumentExists(ctx, filter)
	}
}

// slugBase chọn chuỗi nguồn sinh slug: slug client gửi, rồi title, rồi name.
func slugBase(explicit string, title, name i18n.Text) string {
	for _, candidate := range []string{
		explicit,
		title.Pick(i18n.LangVI), title.Pick(i18n.LangEN),
		name.Pick(i18n.LangVI), name.Pick(i18n.LangEN),
	} {
		if normalized := slug.Normalize(candidate); normalized != "" {
			return normalized
		}
	}
	return ""
}

// Create tạo bot mới, sinh slug duy nhất từ title/name.
// Unique index trên slug vẫn là chốt chặn cuối nếu hai request đua nhau.
func (s *BotService) Create(ctx context.Context, input *botdto.BotCreateInput) (botmodels.Bot, error) {
	var zero botmodels.Bot

	bot := input.ToModel()
	if bot.Name.IsEmpty() {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgRequiredField,
			common.StatusBadRequest, map[string]interface{}{"field": "name"})
	}
	// Payload hai ngôn ngữ phải đủ cả vi lẫn en cho field bắt buộc
	if lang := bot.Name.MissingLang(); lang != "" {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgRequiredField,
			common.StatusBadRequest, map[string]interface{}{"field": "name." + lang})
	}

	base := slugBase(bot.Slug, bot.Title, bot.Name)
	fallback := primitive.NewObjectID().Hex()
	uniqueSlug, err := slug.EnsureUnique(ctx, base, fallback, s.slugProber(primitive.NilObjectID))
	if err != nil {
		return zero, err
	}
	bot.Slug = uniqueSlug

	return s.InsertOne(ctx, bot)
}

// mergeText áp một LocalizedValue lên Text hiện tại theo chế độ single-lang
// hoặc dual-lang, trả về bản merge (không sửa bản gốc).
func mergeText(current i18n.Text, v *botdto.LocalizedValue, lang string) i18n.Text {
	out := i18n.Text{}
	for l, val := range current {
		out[l] = val
	}
	if v == nil {
		return out
	}
	incoming := v.Text()
	if lang != "" {
		val, ok := incoming[lang]
		if !ok {
			val = incoming.Pick(lang)
		}
		out[lang] = val
		return out
	}
	for l, val := range incoming {
		out[l] = val
	}
	return out
}

// applyTextUpdate ghi các key $set dạng "field.lang" cho một field đa ngôn ngữ.
func applyTextUpdate(set map[string]interface{}, field string, v *botdto.LocalizedValue, lang string) {
	if v == nil {
		return
	}
	incoming := v.Text()
	if lang != "" {
		val, ok := incoming[lang]
		if !ok {
			val = incoming.Pick(lang)
		}
		set[field+"."+lang] = val
		return
	}
	for l, val := range incoming {
		set[field+"."+l] = val
	}
}

// Update cập nhật một phần bot. Field đa ngôn ngữ merge theo từng key
// ngôn ngữ (hoặc chỉ theo input.Lang); field danh sách thay cả mảng.
// Slug sinh lại khi client gửi slug, hoặc khi title/name đổi mà không keepSlug.
func (s *BotService) Update(ctx context.Context, id primitive.ObjectID, input *botdto.BotUpdateInput) (botmodels.Bot, error) {
	var zero botmodels.Bot

	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	set := map[string]interface{}{}
	unset := map[string]interface{}{}

	applyTextUpdate(set, "name", input.Name, input.Lang)
	applyTextUpdate(set, "title", input.Title, input.Lang)
	applyTextUpdate(set, "summary", input.Summary, input.Lang)
	applyTextUpdate(set, "description", input.Description, input.Lang)

	if input.Features != nil {
		set["features"] = input.Features.Texts()
	}
	if input.Strengths != nil {
		set["strengths"] = input.Strengths.Texts()
	}
	if input.Weaknesses != nil {
		set["weaknesses"] = input.Weaknesses.Texts()
	}
	if input.TargetUsers != nil {
		set["targetUsers"] = input.TargetUsers.Texts()
	}
	if input.Pricing != nil {
		tiers := make([]botmodels.PricingTier, 0, len(*input.Pricing))
		for _, tier := range *input.Pricing {
			tiers = append(tiers, tier.ToModel())
		}
		set["pricing"] = tiers
	}
	if input.Tags != nil {
		set["tags"] = botmodels.UniqueTags(*input.Tags)
	}

	if input.ExternalKey != nil {
		// externalKey rỗng phải unset để sparse unique index không coi "" là giá trị
		if key := strings.TrimSpace(*input.ExternalKey); key == "" {
			unset["externalKey"] = ""
		} else {
			set["externalKey"] = key
		}
	}
	if input.Image != nil {
		set["image"] = *input.Image
	}
	if input.AffiliateLink != nil {
		set["affiliateLink"] = *input.AffiliateLink
	}
	if input.OriginURL != nil {
		set["originUrl"] = *input.OriginURL
	}
	if input.Headquarters != nil {
		set["headquarters"] = *input.Headquarters
	}
	if input.FoundedYear != nil {
		set["foundedYear"] = int(*input.FoundedYear)
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.Status != nil {
		set["status"] = *input.Status
	}
	if input.SEO != nil {
		set["seo"] = botmodels.SEO{
			Title:       input.SEO.Title,
			Description: input.SEO.Description,
			OgImage:     input.SEO.OgImage,
			Canonical:   input.SEO.Canonical,
		}
	}

	// Quyết định sinh lại slug
	reslug := false
	base := ""
	if input.Slug != nil {
		reslug = true
		base = slug.Normalize(*input.Slug)
	} else if (input.Title != nil || input.Name != nil) && !input.KeepSlug {
		reslug = true
	}
	if reslug {
		if base == "" {
			title := mergeText(current.Title, input.Title, input.Lang)
			name := mergeText(current.Name, input.Name, input.Lang)
			base = slugBase("", title, name)
		}
		newSlug, err := slug.EnsureUnique(ctx, base, current.ID.Hex(), s.slugProber(id))
		if err != nil {
			return zero, err
		}
		if newSlug != current.Slug {
			set["slug"] = newSlug
		}
	}

	if len(set) == 0 && len(unset) == 0 {
		return current, nil
	}
	return s.UpdateById(ctx, id, &basesvc.UpdateData{Set: set, Unset: unset})
}

// BackfillSlugs sinh slug cho các bot chưa có (dữ liệu cũ trước khi slug
// thành bắt buộc). Trả về số document đã cập nhật.
func (s *BotService) BackfillSlugs(ctx context.Context) (int64, error) {
	missing := bson.M{"$or": []bson.M{
		{"slug": bson.M{"$exists": false}},
		{"slug": ""},
	}}
	bots, err := s.Find(ctx, missing, nil)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, bot := range bots {
		base := slugBase("", bot.Title, bot.Name)
		newSlug, err := slug.EnsureUnique(ctx, base, bot.ID.Hex(), s.slugProber(bot.ID))
		if err != nil {
			return count, err
		}
		if _, err := s.UpdateById(ctx, bot.ID, &basesvc.UpdateData{Set: map[string]interface{}{"slug": newSlug}}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// FindBySlug tìm bot theo slug.
func (s *BotService) FindBySlug(ctx context.Context, slugValue string) (botmodels.Bot, error) {
	return s.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slugValue)}, nil)
}

// IncViews tăng lượt xem và trả về bot sau cập nhật.
func (s *BotService) IncViews(ctx context.Context, id primitive.ObjectID) (botmodels.Bot, error) {
	return s.FindOneAndUpdate(ctx, bson.M{"_id": id}, &basesvc.UpdateData{Inc: map[string]interface{}{"views": 1}})
}

// TrackClick tăng lượt click (điều hướng affiliate) và trả về bot sau cập nhật.
func (s *BotService) TrackClick(ctx context.Context, id primitive.ObjectID) (botmodels.Bot, error) {
	return s.FindOneAndUpdate(ctx, bson.M{"_id": id}, &basesvc.UpdateData{Inc: map[string]interface{}{"clicks": 1}})
}

// Top trả về các bot active nhiều lượt xem nhất.
func (s *BotService) Top(ctx context.Context, limit int64) ([]botmodels.Bot, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "views", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{"status": botmodels.BotStatusActive}, opts)
}

// FacetItem là một giá trị facet kèm số lượng.
type FacetItem struct {
	Value string `bson:"_id" json:"value"`
	Count int64  `bson:"count" json:"count"`
}

// Facets là thống kê category và tags của các bot đang hiển thị.
type Facets struct {
	Categories []FacetItem `bson:"categories" json:"categories"`
	Tags       []FacetItem `bson:"tags" json:"tags"`
}

// Facets đếm số bot theo category và theo tag (top 50 tag) bằng aggregation.
func (s *BotService) Facets(ctx context.Context) (*Facets, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": botmodels.BotStatusInactive}}}},
		{{Key: "$facet", Value: bson.M{
			"categories": bson.A{
				bson.M{"$match": bson.M{"category": bson.M{"$nin": bson.A{nil, ""}}}},
				bson.M{"$group": bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}},
				bson.M{"$sort": bson.M{"count": -1, "_id": 1}},
			},
			"tags": bson.A{
				bson.M{"$unwind": "$tags"},
				bson.M{"$group": bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}},
				bson.M{"$sort": bson.M{"count": -1, "_id": 1}},
				bson.M{"$limit": 50},
			},
		}}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []Facets
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if len(results) == 0 {
		return &Facets{Categories: []FacetItem{}, Tags: []FacetItem{}}, nil
	}
	return &results[0], nil
}

// ListParams là tham số list bot công khai.
type ListParams struct {
	Q        string
	Tag      string
	Category string // Một hoặc nhiều category phân cách ","
	Status   string
	Lang     string
	Sort     string
	Page     int64
	Limit    int64
}

// ListResult là kết quả list kèm metadata phân trang và cờ chế độ tìm kiếm.
type ListResult struct {
	Page           int64           `json:"page"`
	Limit          int64           `json:"limit"`
	Total          int64           `json:"total"`
	Pages          int64           `json:"pages"`
	Items          []botmodels.Bot `json:"items"`
	Lang           string          `json:"lang"`
	Q              string          `json:"q,omitempty"`
	TextSearchUsed bool            `json:"textSearchUsed"`
}

// listFilter dựng filter chung cho list: mặc định ẩn bot inactive,
// status tường minh thì dùng đúng giá trị đó.
func listFilter(params ListParams) bson.M {
	filter := bson.M{}
	if params.Status != "" {
		filter["status"] = params.Status
	} else {
		filter["status"] = bson.M{"$ne": botmodels.BotStatusInactive}
	}
	if params.Tag != "" {
		filter["tags"] = strings.ToLower(strings.TrimSpace(params.Tag))
	}
	if params.Category != "" {
		categories := []string{}
		for _, c := range strings.Split(params.Category, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
		switch len(categories) {
		case 0:
		case 1:
			filter["category"] = categories[0]
		default:
			filter["category"] = bson.M{"$in": categories}
		}
	}
	return filter
}

// parseSort chuyển "field" / "-field" thành sort spec, chỉ nhận field whitelist.
func parseSort(sort string) bson.D {
	field := strings.TrimSpace(sort)
	order := 1
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		order = -1
	}
	if !botSortFields[field] {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return bson.D{{Key: field, Value: order}}
}

// regexOr dựng mệnh đề $or áp pattern lên toàn bộ field text của bot.
func regexOr(pattern string, paths []string) []bson.M {
	or := make([]bson.M, 0, len(paths))
	for _, path := range paths {
		or = append(or, bson.M{path: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return or
}

// List trả về trang bot theo filter; có q thì tìm hai pha:
// $text trước (xếp hạng theo textScore), regex fallback sau để vớt các
// term $text bỏ sót, kết quả merge theo _id ưu tiên pha $text.
func (s *BotService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 10
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if !i18n.IsSupported(params.Lang) {
		params.Lang = i18n.LangVI
	}

	filter := listFilter(params)
	q := strings.TrimSpace(params.Q)

	if q == "" {
		page, err := s.FindWithPagination(ctx, filter, params.Page, params.Limit,
			options.Find().SetSort(parseSort(params.Sort)))
		if err != nil {
			return nil, err
		}
		return &ListResult{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.TotalPage,
			Items: page.Items,
			Lang:  params.Lang,
		}, nil
	}

	skip := (params.Page - 1) * params.Limit

	// Pha 1: $text. Lỗi (chưa có text index, term toàn stop-word, ...)
	// không làm fail request mà chuyển sang chế độ degraded.
	textUsed := true
	var textItems []botmodels.Bot
	var textTotal int64

	textFilter := bson.M{"$text": bson.M{"$search": q}}
	for k, v := range filter {
		textFilter[k] = v
	}
	textTotal, err := s.CountDocuments(ctx, textFilter)
	if err != nil {
		textUsed = false
	} else {
		opts := options.Find().
			SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
			SetSort(bson.D{
				{Key: "score", Value: bson.M{"$meta": "textScore"}},
				{Key: "views", Value: -1},
			}).
			SetSkip(skip).
			SetLimit(params.Limit)
		textItems, err = s.Find(ctx, textFilter, opts)
		if err != nil {
			textUsed = false
			textItems = nil
		}
	}
	if !textUsed {
		logger.GetAppLogger().WithField("q", q).Warn("Text search không khả dụng, chuyển sang regex fallback")
	}

	// Pha 2: regex fallback trên toàn bộ field text
	pattern, _, err := search.FromQuery(q)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	var regexItems []botmodels.Bot
	var regexTotal int64
	if pattern != "" {
		regexFilter := bson.M{"$or": regexOr(pattern, botRegexPaths)}
		for k, v := range filter {
			regexFilter[k] = v
		}
		regexTotal, err = s.CountDocuments(ctx, regexFilter)
		if err != nil {
			return nil, err
		}
		opts := options.Find().
			SetSort(bson.D{{Key: "views", Value: -1}, {Key: "createdAt", Value: -1}}).
			SetLimit(skip + 2*params.Limit)
		regexItems, err = s.Find(ctx, regexFilter, opts)
		if err != nil {
			return nil, err
		}
	}

	var items []botmodels.Bot
	if textUsed {
		// Trang $text đã skip sẵn, regex chỉ bù thêm phía sau
		items = mergeBots(textItems, regexItems, 0, params.Limit)
	} else {
		items = mergeBots(nil, regexItems, skip, params.Limit)
	}

	total := search.MergedTotal(textTotal, regexTotal)
	pages := int64(0)
	if total > 0 {
		pages = (total + params.Limit - 1) / params.Limit
	}

	return &ListResult{
		Page:           params.Page,
		Limit:          params.Limit,
		Total:          total,
		Pages:          pages,
		Items:          items,
		Lang:           params.Lang,
		Q:              q,
		TextSearchUsed: textUsed,
	}, nil
}

// mergeBots gộp hai danh sách theo _id, pha đầu thắng khi trùng,
// rồi cắt cửa sổ [offset, offset+limit).
func mergeBots(primary, secondary []botmodels.Bot, offset, limit int64) []botmodels.Bot {
	seen := make(map[primitive.ObjectID]struct{}, len(primary)+len(secondary))
	merged := make([]botmodels.Bot, 0, len(primary)+len(secondary))
	for _, list := range [][]botmodels.Bot{primary, secondary} {
		for _, bot := range list {
			if _, ok := seen[bot.ID]; ok {
				continue
			}
			seen[bot.ID] = struct{}{}
			merged = append(merged, bot)
		}
	}
	if offset >= int64(len(merged)) {
		return []botmodels.Bot{}
	}
	merged = merged[offset:]
	if limit > 0 && int64(len(merged)) > limit {
		merged = merged[:limit]
	}
	return merged
}

// SearchParams là tham số tìm kiếm bot cho trang search tổng hợp.
type SearchParams struct {
	Q          string
	Lang       string
	Skip       int64
	Limit      int64
	Categories []string
}

// Search tìm bot theo từ khóa, trả về kết quả rút gọn kèm snippet đã
// highlight. Cùng chiến lược hai pha với List.
func (s *BotService) Search(ctx context.Context, params SearchParams) ([]search.Result, int64, bool, error) {
	q := strings.TrimSpace(params.Q)
	if q == "" {
		return []search.Result{}, 0, false, nil
	}
	if params.Limit <= 0 {
		params.Limit = 5
	}
	if params.Limit > 50 {
		params.Limit = 50
	}
	if params.Skip < 0 {
		params.Skip = 0
	}
	if !i18n.IsSupported(params.Lang) {
		params.Lang = i18n.LangVI
	}

	filter := bson.M{"status": bson.M{"$ne": botmodels.BotStatusInactive}}
	if len(params.Categories) > 0 {
		filter["category"] = bson.M{"$in": params.Categories}
	}

	pattern, re, err := search.FromQuery(q)
	if err != nil {
		return nil, 0, false, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	// Pha $text
	textUsed := true
	var textItems []botmodels.Bot
	var textTotal int64

	textFilter := bson.M{"$text": bson.M{"$search": q}}
	for k, v := range filter {
		textFilter[k] = v
	}
	textTotal, err = s.CountDocuments(ctx, textFilter)
	if err != nil {
		textUsed = false
	} else {
		opts := options.Find().
			SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
			SetSort(bson.D{
				{Key: "score", Value: bson.M{"$meta": "textScore"}},
				{Key: "views", Value: -1},
			}).
			SetSkip(params.Skip).
			SetLimit(params.Limit)
		textItems, err = s.Find(ctx, textFilter, opts)
		if err != nil {
			textUsed = false
			textItems = nil
		}
	}

	// Pha regex
	var regexItems []botmodels.Bot
	var regexTotal int64
	if pattern != "" {
		regexFilter := bson.M{"$or": regexOr(pattern, botRegexPaths)}
		for k, v := range filter {
			regexFilter[k] = v
		}
		regexTotal, err = s.CountDocuments(ctx, regexFilter)
		if err != nil {
			return nil, 0, false, err
		}
		opts := options.Find().
			SetSort(bson.D{{Key: "views", Value: -1}, {Key: "createdAt", Value: -1}}).
			SetLimit(params.Skip + 2*params.Limit)
		regexItems, err = s.Find(ctx, regexFilter, opts)
		if err != nil {
			return nil, 0, false, err
		}
		if params.Skip > 0 && params.Skip < int64(len(regexItems)) {
			regexItems = regexItems[params.Skip:]
		} else if params.Skip >= int64(len(regexItems)) {
			regexItems = nil
		}
	}

	textResults := botsToResults(textItems, params.Lang, re)
	regexResults := botsToResults(regexItems, params.Lang, re)

	results := search.Merge(textResults, regexResults, int(params.Limit))
	total := search.MergedTotal(textTotal, regexTotal)
	return results, total, textUsed, nil
}

// botsToResults chuyển danh sách bot thành kết quả search kèm snippet.
func botsToResults(bots []botmodels.Bot, lang string, re *regexp.Regexp) []search.Result {
	results := make([]search.Result, 0, len(bots))
	for _, bot := range bots {
		results = append(results, search.Result{
			ID:      bot.ID,
			Type:    "bot",
			Name:    bot.Name.Pick(lang),
			Title:   bot.Title.Pick(lang),
			Slug:    bot.Slug,
			Image:   bot.Image,
			Views:   bot.Views,
			Snippet: search.Snippet(botSnippetSource(bot, lang, re), re),
		})
	}
	return results
}

// botSnippetSource chọn text nguồn cho snippet theo thứ tự ưu tiên:
// summary, description, các danh sách nối bằng " • ", bảng giá, rồi title/name.
func botSnippetSource(bot botmodels.Bot, lang string, re *regexp.Regexp) string {
	pricingLines := make([]string, 0, len(bot.Pricing))
	for _, tier := range bot.Pricing {
		plan := tier.Plan.Pick(lang)
		price := tier.PriceText.Pick(lang)
		switch {
		case plan != "" && price != "":
			pricingLines = append(pricingLines, plan+" - "+price)
		case plan != "":
			pricingLines = append(pricingLines, plan)
		case price != "":
			pricingLines = append(pricingLines, price)
		}
	}

	title := bot.Title.Pick(lang)
	if title == "" {
		title = bot.Name.Pick(lang)
	}

	candidates := []string{
		bot.Summary.Pick(lang),
		bot.Description.Pick(lang),
		strings.Join(i18n.PickList(bot.Features, lang), " • "),
		strings.Join(i18n.PickList(bot.Strengths, lang), " • "),
		strings.Join(i18n.PickList(bot.Weaknesses, lang), " • "),
		strings.Join(i18n.PickList(bot.TargetUsers, lang), " • "),
		strings.Join(pricingLines, " • "),
		title,
	}
	return search.PickSource(candidates, re)
}
