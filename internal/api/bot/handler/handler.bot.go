// Package bothdl chứa HTTP handler cho bot.
package bothdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/hoangtien07/AI-Tool-server/internal/api/base/handler"
	botdto "github.com/hoangtien07/AI-Tool-server/internal/api/bot/dto"
	botmodels "github.com/hoangtien07/AI-Tool-server/internal/api/bot/models"
	botsvc "github.com/hoangtien07/AI-Tool-server/internal/api/bot/service"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
	"github.com/hoangtien07/AI-Tool-server/internal/utility"
)

// BotHandler xử lý các route của bot, nhúng BaseHandler cho CRUD surface
// quản trị và bổ sung các route nghiệp vụ.
type BotHandler struct {
	*basehdl.BaseHandler[botmodels.Bot, botdto.BotCreateInput, botdto.BotUpdateInput]
	BotService *botsvc.BotService
}

// NewBotHandler tạo handler mới cùng service của nó.
func NewBotHandler() (*BotHandler, error) {
	svc, err := botsvc.NewBotService()
	if err != nil {
		return nil, err
	}
	return &BotHandler{
		BaseHandler: basehdl.NewBaseHandler[botmodels.Bot, botdto.BotCreateInput, botdto.BotUpdateInput](svc),
		BotService:  svc,
	}, nil
}

// resolveLang lấy ngôn ngữ từ query lang, fallback header Accept-Language.
func resolveLang(c fiber.Ctx) string {
	return i18n.ResolveLang(c.Query("lang", ""), c.Get("Accept-Language"))
}

// resolvedView trả về bản localize của bot theo một ngôn ngữ.
func resolvedView(bot botmodels.Bot, lang string) fiber.Map {
	pricing := make([]fiber.Map, 0, len(bot.Pricing))
	for _, tier := range bot.Pricing {
		pricing = append(pricing, fiber.Map{
			"plan":      tier.Plan.Pick(lang),
			"priceText": tier.PriceText.Pick(lang),
			"amount":    tier.Amount,
			"currency":  tier.Currency,
			"interval":  tier.Interval,
		})
	}
	return fiber.Map{
		"lang":        lang,
		"name":        bot.Name.Pick(lang),
		"title":       bot.Title.Pick(lang),
		"summary":     bot.Summary.Pick(lang),
		"description": bot.Description.Pick(lang),
		"features":    i18n.PickList(bot.Features, lang),
		"strengths":   i18n.PickList(bot.Strengths, lang),
		"weaknesses":  i18n.PickList(bot.Weaknesses, lang),
		"targetUsers": i18n.PickList(bot.TargetUsers, lang),
		"pricing":     pricing,
	}
}

// parseObjectID lấy và validate ObjectID từ URI, trả lỗi 400 nếu sai định dạng.
func (h *BotHandler) parseObjectID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := h.GetIDFromContext(c)
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("%s: %s", common.MsgInvalidObjectID, id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// HandleCreate xử lý POST /bots: tạo bot mới với slug sinh tự động.
func (h *BotHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(botdto.BotCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BotService.Create(c.Context(), input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleList xử lý GET /bots: list có filter, phân trang và tìm kiếm hai pha.
func (h *BotHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		params := botsvc.ListParams{
			Q:        c.Query("q", ""),
			Tag:      c.Query("tag", ""),
			Category: c.Query("category", ""),
			Status:   c.Query("status", ""),
			Lang:     resolveLang(c),
			Sort:     c.Query("sort", ""),
			Page:     page,
			Limit:    limit,
		}

		data, err := h.BotService.List(c.Context(), params)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFacets xử lý GET /bots/facets: thống kê category và tag.
func (h *BotHandler) HandleFacets(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		data, err := h.BotService.Facets(c.Context())
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleTop xử lý GET /bots/top: các bot nhiều lượt xem nhất.
func (h *BotHandler) HandleTop(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		limit := utility.P2Int64(c.Query("limit", "10"))
		data, err := h.BotService.Top(c.Context(), limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleGetBySlug xử lý GET /bots/slug/:slug: chi tiết bot kèm bản localize.
func (h *BotHandler) HandleGetBySlug(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		bot, err := h.BotService.FindBySlug(c.Context(), c.Params("slug"))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		lang := resolveLang(c)
		h.HandleResponse(c, fiber.Map{"bot": bot, "resolved": resolvedView(bot, lang)}, nil)
		return nil
	})
}

// HandleGetById xử lý GET /bots/:id: chi tiết bot theo ObjectID.
func (h *BotHandler) HandleGetById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.parseObjectID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		bot, err := h.BotService.FindOneById(c.Context(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		lang := resolveLang(c)
		h.HandleResponse(c, fiber.Map{"bot": bot, "resolved": resolvedView(bot, lang)}, nil)
		return nil
	})
}

// HandleUpdate xử lý PATCH /bots/:id: cập nhật một phần, hỗ trợ chế độ
// single-lang qua field lang trong body.
func (h *BotHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.parseObjectID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(botdto.BotUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BotService.Update(c.Context(), id, input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleDelete xử lý DELETE /bots/:id.
func (h *BotHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.parseObjectID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.BotService.DeleteById(c.Context(), id)
		h.HandleResponse(c, fiber.Map{"deleted": err == nil, "_id": id.Hex()}, err)
		return nil
	})
}

// HandleIncViews xử lý PATCH /bots/:id/views: tăng lượt xem.
func (h *BotHandler) HandleIncViews(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.parseObjectID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		bot, err := h.BotService.IncViews(c.Context(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"_id": bot.ID.Hex(), "views": bot.Views}, nil)
		return nil
	})
}

// HandleTrackClick xử lý POST /bots/:id/click: ghi nhận click affiliate.
func (h *BotHandler) HandleTrackClick(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.parseObjectID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		bot, err := h.BotService.TrackClick(c.Context(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{
			"_id":           bot.ID.Hex(),
			"clicks":        bot.Clicks,
			"affiliateLink": bot.AffiliateLink,
		}, nil)
		return nil
	})
}
