// Package searchhdl chứa HTTP handler cho trang tìm kiếm tổng hợp.
package searchhdl

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/hoangtien07/AI-Tool-server/internal/api/base/handler"
	searchsvc "github.com/hoangtien07/AI-Tool-server/internal/api/search/service"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
	"github.com/hoangtien07/AI-Tool-server/internal/utility"
)

// SearchHandler xử lý route tìm kiếm tổng hợp.
type SearchHandler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
	SearchService *searchsvc.SearchService
}

// NewSearchHandler tạo handler mới cùng service của nó.
func NewSearchHandler() (*SearchHandler, error) {
	svc, err := searchsvc.NewSearchService()
	if err != nil {
		return nil, err
	}
	return &SearchHandler{
		BaseHandler:   &basehdl.BaseHandler[interface{}, interface{}, interface{}]{},
		SearchService: svc,
	}, nil
}

// HandleSearch xử lý GET /search: tìm cả bot lẫn blog theo tab.
// Thiếu q trả lỗi 400.
func (h *SearchHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		q := strings.TrimSpace(c.Query("q", ""))
		if q == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				common.MsgQueryRequired,
				common.StatusBadRequest,
				map[string]interface{}{"field": "q"},
			))
			return nil
		}

		var categories []string
		for _, cat := range strings.Split(c.Query("category", ""), ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				categories = append(categories, cat)
			}
		}

		params := searchsvc.Params{
			Q:          q,
			Tab:        c.Query("tab", searchsvc.TabAll),
			Lang:       i18n.ResolveLang(c.Query("lang", ""), c.Get("Accept-Language")),
			LimitBots:  utility.P2Int64(c.Query("limitBots", "5")),
			LimitBlogs: utility.P2Int64(c.Query("limitBlogs", "5")),
			SkipBots:   utility.P2Int64(c.Query("skipBots", "0")),
			SkipBlogs:  utility.P2Int64(c.Query("skipBlogs", "0")),
			Categories: categories,
		}

		data, err := h.SearchService.Search(c.Context(), params)
		h.HandleResponse(c, data, err)
		return nil
	})
}
