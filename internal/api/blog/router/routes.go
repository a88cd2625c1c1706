// Package blogrouter đăng ký route cho blog.
package blogrouter

import (
	"github.com/gofiber/fiber/v3"

	bloghdl "github.com/hoangtien07/AI-Tool-server/internal/api/blog/handler"
	"github.com/hoangtien07/AI-Tool-server/internal/api/router"
)

// RegisterRoutes đăng ký route blog dưới /api/v1/blogs.
// CRUD surface quản trị đăng ký trước route /:slugOrId để các path tĩnh
// (find, count, ...) không bị tham số nuốt mất.
func RegisterRoutes(v1 fiber.Router, r *router.Router) error {
	h, err := bloghdl.NewBlogHandler()
	if err != nil {
		return err
	}

	// CRUD surface quản trị chỉ đọc
	r.RegisterCRUDRoutes(v1, "/blogs", h, router.ReadOnlyConfig)

	group := v1.Group("/blogs")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Patch("/:slugOrId/views", h.HandleIncViews)
	group.Patch("/:slugOrId", h.HandleUpdate)
	group.Delete("/:slugOrId", h.HandleDelete)
	group.Get("/:slugOrId", h.HandleGetByKey)

	return nil
}
