// Package botrouter đăng ký route cho bot.
package botrouter

import (
	"github.com/gofiber/fiber/v3"

	bothdl "github.com/hoangtien07/AI-Tool-server/internal/api/bot/handler"
	"github.com/hoangtien07/AI-Tool-server/internal/api/router"
)

// RegisterRoutes đăng ký route bot dưới /api/v1/bots.
// Route tĩnh và CRUD surface đăng ký trước các route tham số /:id
// để không bị /:id nuốt mất.
func RegisterRoutes(v1 fiber.Router, r *router.Router) error {
	h, err := bothdl.NewBotHandler()
	if err != nil {
		return err
	}

	group := v1.Group("/bots")
	group.Get("/facets", h.HandleFacets)
	group.Get("/top", h.HandleTop)
	group.Get("/slug/:slug", h.HandleGetBySlug)

	// CRUD surface quản trị chỉ đọc (find/count/distinct/exists)
	r.RegisterCRUDRoutes(v1, "/bots", h, router.ReadOnlyConfig)

	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Patch("/:id/views", h.HandleIncViews)
	group.Post("/:id/click", h.HandleTrackClick)
	group.Get("/:id", h.HandleGetById)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)

	return nil
}
