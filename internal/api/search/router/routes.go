// Package searchrouter đăng ký route tìm kiếm tổng hợp.
package searchrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/hoangtien07/AI-Tool-server/internal/api/router"
	searchhdl "github.com/hoangtien07/AI-Tool-server/internal/api/search/handler"
)

// RegisterRoutes đăng ký GET /api/v1/search.
func RegisterRoutes(v1 fiber.Router, _ *router.Router) error {
	h, err := searchhdl.NewSearchHandler()
	if err != nil {
		return err
	}

	v1.Get("/search", h.HandleSearch)
	return nil
}
