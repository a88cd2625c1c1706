// Package blogsvc chứa nghiệp vụ cho blog: tạo/cập nhật với content được
// sanitize và trích plain text, slug duy nhất, tìm kiếm hai pha như bot.
package blogsvc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basedto "github.com/hoangtien07/AI-Tool-server/internal/api/base/dto"
	basesvc "github.com/hoangtien07/AI-Tool-server/internal/api/base/service"
	blogdto "github.com/hoangtien07/AI-Tool-server/internal/api/blog/dto"
	blogmodels "github.com/hoangtien07/AI-Tool-server/internal/api/blog/models"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/global"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
	"github.com/hoangtien07/AI-Tool-server/internal/logger"
	"github.com/hoangtien07/AI-Tool-server/internal/richtext"
	"github.com/hoangtien07/AI-Tool-server/internal/search"
	"github.com/hoangtien07/AI-Tool-server/internal/slug"
)

// Các đường dẫn field dùng cho regex fallback. Content dùng biến thể
// plain text để không match vào tag HTML.
var blogRegexPaths = []string{
	"title.vi", "title.en",
	"excerpt.vi", "excerpt.en",
	"content.vi.text", "content.en.text",
	"tags",
}

// Các field được phép sort trong list.
var blogSortFields = map[string]bool{
	"publishedAt": true,
	"createdAt":   true,
	"updatedAt":   true,
	"views":       true,
	"slug":        true,
}

// BlogService cung cấp nghiệp vụ cho collection blogs.
type BlogService struct {
	*basesvc.BaseServiceMongoImpl[blogmodels.Blog]
}

// NewBlogService tạo service mới, lấy collection từ registry.
func NewBlogService() (*BlogService, error) {
	col, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.Blogs)
	if !ok {
		return nil, common.NewError(common.ErrCodeDatabaseConnection,
			fmt.Sprintf("Không tìm thấy collection %s", global.MongoDB_ColNames.Blogs),
			common.StatusInternalServerError,
			map[string]interface{}{"collection": global.MongoDB_ColNames.Blogs})
	}
	return &BlogService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[blogmodels.Blog](col)}, nil
}

// slugProber trả về Prober kiểm tra slug đã bị bài viết khác dùng chưa.
func (s *BlogService) slugProber(excludeID primitive.ObjectID) slug.Prober {
	return func(ctx context.Context, candidate string) (bool, error) {
		filter := bson.M{"slug": candidate}
		if !excludeID.IsZero() {
			filter["_id"] = bson.M{"$ne": excludeID}
		}
		return s.DocumentExists(ctx, filter)
	}
}

// slugBase chọn chuỗi nguồn sinh slug: slug client gửi rồi đến title.
func slugBase(explicit string, title i18n.Text) string {
	for _, candidate := range []string{
		explicit,
		title.Pick(i18n.LangVI), title.Pick(i18n.LangEN),
	} {
		if normalized := slug.Normalize(candidate); normalized != "" {
			return normalized
		}
	}
	return ""
}

// Create tạo bài viết mới: sanitize content, sinh excerpt cho ngôn ngữ
// còn thiếu, sinh slug duy nhất từ title.
func (s *BlogService) Create(ctx context.Context, input *blogdto.BlogCreateInput) (blogmodels.Blog, error) {
	var zero blogmodels.Blog

	blog := input.ToModel()
	if blog.Title.IsEmpty() {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgRequiredField,
			common.StatusBadRequest, map[string]interface{}{"field": "title"})
	}
	// Payload hai ngôn ngữ phải đủ cả vi lẫn en cho field bắt buộc
	if lang := blog.Title.MissingLang(); lang != "" {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgRequiredField,
			common.StatusBadRequest, map[string]interface{}{"field": "title." + lang})
	}

	blog.Content = richtext.PackText(blog.Content)
	blog.Excerpt = blogmodels.DeriveExcerpt(blog.Excerpt, blog.Content)

	base := slugBase(blog.Slug, blog.Title)
	fallback := primitive.NewObjectID().Hex()
	uniqueSlug, err := slug.EnsureUnique(ctx, base, fallback, s.slugProber(primitive.NilObjectID))
	if err != nil {
		return zero, err
	}
	blog.Slug = uniqueSlug

	return s.InsertOne(ctx, blog)
}

// mergeText áp một LocalizedValue lên Text hiện tại theo chế độ single-lang
// hoặc dual-lang, trả về bản merge (không sửa bản gốc).
func mergeText(current i18n.Text, v *basedto.LocalizedValue, lang string) i18n.Text {
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
func applyTextUpdate(set map[string]interface{}, field string, v *basedto.LocalizedValue, lang string) {
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

// Update cập nhật một phần bài viết. Content gửi lên được pack lại theo
// từng biến thể ngôn ngữ; excerpt tự sinh cho ngôn ngữ đang trống nếu
// content đổi mà excerpt không được gửi kèm.
func (s *BlogService) Update(ctx context.Context, id primitive.ObjectID, input *blogdto.BlogUpdateInput) (blogmodels.Blog, error) {
	var zero blogmodels.Blog

	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	set := map[string]interface{}{}
	unset := map[string]interface{}{}

	applyTextUpdate(set, "title", input.Title, input.Lang)
	applyTextUpdate(set, "excerpt", input.Excerpt, input.Lang)

	if input.Content != nil {
		packed := richtext.PackText(input.Content.RichText())
		if input.Lang != "" {
			if content, ok := packed[input.Lang]; ok {
				set["content."+input.Lang] = content
			}
		} else {
			for lang, content := range packed {
				set["content."+lang] = content
			}
		}

		// Sinh excerpt cho ngôn ngữ đang trống khi content đổi
		if input.Excerpt == nil {
			merged := i18n.RichText{}
			for lang, content := range current.Content {
				merged[lang] = content
			}
			for lang, content := range packed {
				if input.Lang == "" || lang == input.Lang {
					merged[lang] = content
				}
			}
			derived := blogmodels.DeriveExcerpt(current.Excerpt, merged)
			for lang, val := range derived {
				if strings.TrimSpace(current.Excerpt[lang]) == "" && val != "" {
					set["excerpt."+lang] = val
				}
			}
		}
	}

	if input.Tags != nil {
		set["tags"] = blogmodels.UniqueTags(*input.Tags)
	}
	if input.Image != nil {
		set["image"] = *input.Image
	}
	if input.Status != nil {
		set["status"] = *input.Status
	}
	if input.PublishedAt != nil {
		set["publishedAt"] = int64(*input.PublishedAt)
	}
	if input.Source != nil {
		set["source"] = *input.Source
	}
	if input.SourceURL != nil {
		set["sourceUrl"] = *input.SourceURL
	}
	if input.ExternalKey != nil {
		// externalKey rỗng phải unset để sparse unique index không coi "" là giá trị
		if key := strings.TrimSpace(*input.ExternalKey); key == "" {
			unset["externalKey"] = ""
		} else {
			set["externalKey"] = key
		}
	}

	// Quyết định sinh lại slug
	reslug := false
	base := ""
	if input.Slug != nil {
		reslug = true
		base = slug.Normalize(*input.Slug)
	} else if input.Title != nil && !input.KeepSlug {
		reslug = true
	}
	if reslug {
		if base == "" {
			title := mergeText(current.Title, input.Title, input.Lang)
			base = slugBase("", title)
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

// BackfillSlugs sinh slug cho các bài viết chưa có. Trả về số document đã cập nhật.
func (s *BlogService) BackfillSlugs(ctx context.Context) (int64, error) {
	missing := bson.M{"$or": []bson.M{
		{"slug": bson.M{"$exists": false}},
		{"slug": ""},
	}}
	blogs, err := s.Find(ctx, missing, nil)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, blog := range blogs {
		base := slugBase("", blog.Title)
		newSlug, err := slug.EnsureUnique(ctx, base, blog.ID.Hex(), s.slugProber(blog.ID))
		if err != nil {
			return count, err
		}
		if _, err := s.UpdateById(ctx, blog.ID, &basesvc.UpdateData{Set: map[string]interface{}{"slug": newSlug}}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// FindByKey tìm bài viết theo slug, không thấy thì thử coi key là ObjectID.
func (s *BlogService) FindByKey(ctx context.Context, key string) (blogmodels.Blog, error) {
	key = strings.TrimSpace(key)

	blog, err := s.FindOne(ctx, bson.M{"slug": key}, nil)
	if err == nil {
		return blog, nil
	}

	if errors.Is(err, common.ErrNotFound) && primitive.IsValidObjectID(key) {
		oid, _ := primitive.ObjectIDFromHex(key)
		return s.FindOneById(ctx, oid)
	}
	return blog, err
}

// IncViews tăng lượt xem và trả về bài viết sau cập nhật.
func (s *BlogService) IncViews(ctx context.Context, id primitive.ObjectID) (blogmodels.Blog, error) {
	return s.FindOneAndUpdate(ctx, bson.M{"_id": id}, &basesvc.UpdateData{Inc: map[string]interface{}{"views": 1}})
}

// ListParams là tham số list bài viết công khai.
type ListParams struct {
	Q      string
	Tag    string
	Status string
	Lang   string
	Sort   string
	Page   int64
	Limit  int64
}

// ListResult là kết quả list kèm metadata phân trang và cờ chế độ tìm kiếm.
type ListResult struct {
	Page           int64             `json:"page"`
	Limit          int64             `json:"limit"`
	Total          int64             `json:"total"`
	Pages          int64             `json:"pages"`
	Items          []blogmodels.Blog `json:"items"`
	Lang           string            `json:"lang"`
	Q              string            `json:"q,omitempty"`
	TextSearchUsed bool              `json:"textSearchUsed"`
}

// listFilter dựng filter chung cho list: mặc định chỉ bài active,
// status tường minh thì dùng đúng giá trị đó.
func listFilter(params ListParams) bson.M {
	filter := bson.M{}
	if params.Status != "" {
		filter["status"] = params.Status
	} else {
		filter["status"] = blogmodels.BlogStatusActive
	}
	if params.Tag != "" {
		filter["tags"] = strings.ToLower(strings.TrimSpace(params.Tag))
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
	if !blogSortFields[field] {
		return bson.D{{Key: "publishedAt", Value: -1}, {Key: "createdAt", Value: -1}}
	}
	return bson.D{{Key: field, Value: order}}
}

// regexOr dựng mệnh đề $or áp pattern lên toàn bộ field text của blog.
func regexOr(pattern string, paths []string) []bson.M {
	or := make([]bson.M, 0, len(paths))
	for _, path := range paths {
		or = append(or, bson.M{path: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return or
}

// List trả về trang bài viết theo filter; có q thì tìm hai pha như bot:
// $text trước, regex fallback sau, merge theo _id ưu tiên pha $text.
func (s *BlogService) List(ctx context.Context, params ListParams) (*ListResult, error) {
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

	// Pha 1: $text
	textUsed := true
	var textItems []blogmodels.Blog
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
				{Key: "publishedAt", Value: -1},
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

	// Pha 2: regex fallback
	pattern, _, err := search.FromQuery(q)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	var regexItems []blogmodels.Blog
	var regexTotal int64
	if pattern != "" {
		regexFilter := bson.M{"$or": regexOr(pattern, blogRegexPaths)}
		for k, v := range filter {
			regexFilter[k] = v
		}
		regexTotal, err = s.CountDocuments(ctx, regexFilter)
		if err != nil {
			return nil, err
		}
		opts := options.Find().
			SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "createdAt", Value: -1}}).
			SetLimit(skip + 2*params.Limit)
		regexItems, err = s.Find(ctx, regexFilter, opts)
		if err != nil {
			return nil, err
		}
	}

	var items []blogmodels.Blog
	if textUsed {
		items = mergeBlogs(textItems, regexItems, 0, params.Limit)
	} else {
		items = mergeBlogs(nil, regexItems, skip, params.Limit)
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

// mergeBlogs gộp hai danh sách theo _id, pha đầu thắng khi trùng,
// rồi cắt cửa sổ [offset, offset+limit).
func mergeBlogs(primary, secondary []blogmodels.Blog, offset, limit int64) []blogmodels.Blog {
	seen := make(map[primitive.ObjectID]struct{}, len(primary)+len(secondary))
	merged := make([]blogmodels.Blog, 0, len(primary)+len(secondary))
	for _, list := range [][]blogmodels.Blog{primary, secondary} {
		for _, blog := range list {
			if _, ok := seen[blog.ID]; ok {
				continue
			}
			seen[blog.ID] = struct{}{}
			merged = append(merged, blog)
		}
	}
	if offset >= int64(len(merged)) {
		return []blogmodels.Blog{}
	}
	merged = merged[offset:]
	if limit > 0 && int64(len(merged)) > limit {
		merged = merged[:limit]
	}
	return merged
}

// SearchParams là tham số tìm kiếm blog cho trang search tổng hợp.
type SearchParams struct {
	Q     string
	Lang  string
	Skip  int64
	Limit int64
}

// Search tìm bài viết theo từ khóa, trả về kết quả rút gọn kèm snippet
// đã highlight. Chỉ tìm trong bài active.
func (s *BlogService) Search(ctx context.Context, params SearchParams) ([]search.Result, int64, bool, error) {
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

	filter := bson.M{"status": blogmodels.BlogStatusActive}

	pattern, re, err := search.FromQuery(q)
	if err != nil {
		return nil, 0, false, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	// Pha $text
	textUsed := true
	var textItems []blogmodels.Blog
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
				{Key: "publishedAt", Value: -1},
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
	var regexItems []blogmodels.Blog
	var regexTotal int64
	if pattern != "" {
		regexFilter := bson.M{"$or": regexOr(pattern, blogRegexPaths)}
		for k, v := range filter {
			regexFilter[k] = v
		}
		regexTotal, err = s.CountDocuments(ctx, regexFilter)
		if err != nil {
			return nil, 0, false, err
		}
		opts := options.Find().
			SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "createdAt", Value: -1}}).
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

	textResults := blogsToResults(textItems, params.Lang, re)
	regexResults := blogsToResults(regexItems, params.Lang, re)

	results := search.Merge(textResults, regexResults, int(params.Limit))
	total := search.MergedTotal(textTotal, regexTotal)
	return results, total, textUsed, nil
}

// blogsToResults chuyển danh sách bài viết thành kết quả search kèm snippet.
func blogsToResults(blogs []blogmodels.Blog, lang string, re *regexp.Regexp) []search.Result {
	results := make([]search.Result, 0, len(blogs))
	for _, blog := range blogs {
		results = append(results, search.Result{
			ID:      blog.ID,
			Type:    "blog",
			Title:   blog.Title.Pick(lang),
			Slug:    blog.Slug,
			Image:   blog.Image,
			Views:   blog.Views,
			Snippet: search.Snippet(blogSnippetSource(blog, lang, re), re),
		})
	}
	return results
}

// blogSnippetSource chọn text nguồn cho snippet: excerpt, plain text của
// content, rồi title.
func blogSnippetSource(blog blogmodels.Blog, lang string, re *regexp.Regexp) string {
	candidates := []string{
		blog.Excerpt.Pick(lang),
		blog.Content.Pick(lang).Text,
		blog.Title.Pick(lang),
	}
	return search.PickSource(candidates, re)
}
