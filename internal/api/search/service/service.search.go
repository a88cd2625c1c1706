// Package searchsvc gom tìm kiếm bot và blog thành một kết quả tổng hợp
// theo tab cho trang search.
package searchsvc

import (
	"context"
	"strings"

	blogsvc "github.com/hoangtien07/AI-Tool-server/internal/api/blog/service"
	botsvc "github.com/hoangtien07/AI-Tool-server/internal/api/bot/service"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
	"github.com/hoangtien07/AI-Tool-server/internal/search"
)

// Các tab hợp lệ của trang search.
const (
	TabAll   = "all"
	TabBots  = "bots"
	TabBlogs = "blogs"
)

// Params là tham số tìm kiếm tổng hợp.
type Params struct {
	Q          string
	Tab        string // all | bots | blogs
	Lang       string
	LimitBots  int64
	LimitBlogs int64
	SkipBots   int64
	SkipBlogs  int64
	Categories []string // Chỉ áp cho tab bots
}

// TabResult là kết quả một tab.
type TabResult struct {
	Items          []search.Result `json:"items"`
	Total          int64           `json:"total"`
	TextSearchUsed bool            `json:"textSearchUsed"`
}

// Counts là tổng số kết quả từng loại, luôn có đủ cả hai bất kể tab.
type Counts struct {
	Bots  int64 `json:"bots"`
	Blogs int64 `json:"blogs"`
}

// Response là kết quả tìm kiếm tổng hợp trả về client.
type Response struct {
	Query  string                `json:"query"`
	Lang   string                `json:"lang"`
	Counts Counts                `json:"counts"`
	Tabs   map[string]*TabResult `json:"tabs"`
}

// SearchService điều phối tìm kiếm trên cả hai collection.
type SearchService struct {
	Bots  *botsvc.BotService
	Blogs *blogsvc.BlogService
}

// NewSearchService tạo service tổng hợp từ hai service domain.
func NewSearchService() (*SearchService, error) {
	bots, err := botsvc.NewBotService()
	if err != nil {
		return nil, err
	}
	blogs, err := blogsvc.NewBlogService()
	if err != nil {
		return nil, err
	}
	return &SearchService{Bots: bots, Blogs: blogs}, nil
}

// NormalizeTab chuẩn hóa giá trị tab, giá trị lạ rơi về all.
func NormalizeTab(tab string) string {
	switch strings.ToLower(strings.TrimSpace(tab)) {
	case TabBots:
		return TabBots
	case TabBlogs:
		return TabBlogs
	default:
		return TabAll
	}
}

// Search chạy tìm kiếm theo tab. Counts luôn được tính cho cả hai loại;
// tab không được yêu cầu chỉ chạy với limit tối thiểu để lấy tổng.
func (s *SearchService) Search(ctx context.Context, params Params) (*Response, error) {
	tab := NormalizeTab(params.Tab)
	if !i18n.IsSupported(params.Lang) {
		params.Lang = i18n.LangVI
	}
	if params.LimitBots <= 0 {
		params.LimitBots = 5
	}
	if params.LimitBlogs <= 0 {
		params.LimitBlogs = 5
	}

	resp := &Response{
		Query: strings.TrimSpace(params.Q),
		Lang:  params.Lang,
		Tabs:  map[string]*TabResult{},
	}

	wantBots := tab == TabAll || tab == TabBots
	wantBlogs := tab == TabAll || tab == TabBlogs

	botLimit := params.LimitBots
	if !wantBots {
		botLimit = 1
	}
	botResults, botTotal, botTextUsed, err := s.Bots.Search(ctx, botsvc.SearchParams{
		Q:          params.Q,
		Lang:       params.Lang,
		Skip:       params.SkipBots,
		Limit:      botLimit,
		Categories: params.Categories,
	})
	if err != nil {
		return nil, err
	}
	resp.Counts.Bots = botTotal
	if wantBots {
		resp.Tabs[TabBots] = &TabResult{Items: botResults, Total: botTotal, TextSearchUsed: botTextUsed}
	}

	blogLimit := params.LimitBlogs
	if !wantBlogs {
		blogLimit = 1
	}
	blogResults, blogTotal, blogTextUsed, err := s.Blogs.Search(ctx, blogsvc.SearchParams{
		Q:     params.Q,
		Lang:  params.Lang,
		Skip:  params.SkipBlogs,
		Limit: blogLimit,
	})
	if err != nil {
		return nil, err
	}
	resp.Counts.Blogs = blogTotal
	if wantBlogs {
		resp.Tabs[TabBlogs] = &TabResult{Items: blogResults, Total: blogTotal, TextSearchUsed: blogTextUsed}
	}

	return resp, nil
}
