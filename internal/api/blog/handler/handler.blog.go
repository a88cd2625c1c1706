// Package bloghdl chứa HTTP handler cho blog.
package bloghdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/hoangtien07/AI-Tool-server/internal/api/base/handler"
	blogdto "github.com/hoangtien07/AI-Tool-server/internal/api/blog/dto"
	blogmodels "github.com/hoangtien07/AI-Tool-server/internal/api/blog/models"
	blogsvc "github.com/hoangtien07/AI-Tool-server/internal/api/blog/service"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

// BlogHandler xử lý các route của blog, nhúng BaseHandler cho CRUD surface
// quản trị và bổ sung các route nghiệp vụ.
type BlogHandler struct {
	*basehdl.BaseHandler[blogmodels.Blog, blogdto.BlogCreateInput, blogdto.BlogUpdateInput]
	BlogService *blogsvc.BlogService
}

// NewBlogHandler tạo handler mới cùng service của nó.
func NewBlogHandler() (*BlogHandler, error) {
	svc, err := blogsvc.NewBlogService()
	if err != nil {
		return nil, err
	}
	return &BlogHandler{
		BaseHandler: basehdl.NewBaseHandler[blogmodels.Blog, blogdto.BlogCreateInput, blogdto.BlogUpdateInput](svc),
		BlogService: svc,
	}, nil
}

// resolveLang lấy ngôn ngữ từ query lang, fallback header Accept-Language.
func resolveLang(c fiber.Ctx) string {
	return i18n.ResolveLang(c.Query("lang", ""), c.Get("Accept-Language"))
}

// resolvedView trả về bản localize của bài viết theo một ngôn ngữ.
func resolvedView(blog blogmodels.Blog, lang string) fiber.Map {
	content := blog.Content.Pick(lang)
	return fiber.Map{
		"lang":    lang,
		"title":   blog.Title.Pick(lang),
		"excerpt": blog.Excerpt.Pick(lang),
		"content": fiber.Map{
			"html": content.HTML,
			"text": content.Text,
		},
	}
}

// resolveID chấp nhận cả slug lẫn ObjectID hex trong path,
// trả về _id của bài viết tương ứng.
func (h *BlogHandler) resolveID(c fiber.Ctx) (primitive.ObjectID, error) {
	blog, err := h.BlogService.FindByKey(c.Context(), c.Params("slugOrId"))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return blog.ID, nil
}

// HandleCreate xử lý POST /blogs: tạo bài viết mới, content được sanitize.
func (h *BlogHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(blogdto.BlogCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BlogService.Create(c.Context(), input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleList xử lý GET /blogs: list có filter, phân trang và tìm kiếm hai pha.
func (h *BlogHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		params := blogsvc.ListParams{
			Q:      c.Query("q", ""),
			Tag:    c.Query("tag", ""),
			Status: c.Query("status", ""),
			Lang:   resolveLang(c),
			Sort:   c.Query("sort", ""),
			Page:   page,
			Limit:  limit,
		}

		data, err := h.BlogService.List(c.Context(), params)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleGetByKey xử lý GET /blogs/:slugOrId: tìm theo slug trước,
// key dạng ObjectID hợp lệ thì fallback tìm theo id.
func (h *BlogHandler) HandleGetByKey(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		blog, err := h.BlogService.FindByKey(c.Context(), c.Params("slugOrId"))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		lang := resolveLang(c)
		h.HandleResponse(c, fiber.Map{"blog": blog, "resolved": resolvedView(blog, lang)}, nil)
		return nil
	})
}

// HandleUpdate xử lý PATCH /blogs/:slugOrId: cập nhật một phần, hỗ trợ chế độ
// single-lang qua field lang trong body.
func (h *BlogHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.resolveID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(blogdto.BlogUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BlogService.Update(c.Context(), id, input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleDelete xử lý DELETE /blogs/:slugOrId.
func (h *BlogHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.resolveID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.BlogService.DeleteById(c.Context(), id)
		h.HandleResponse(c, fiber.Map{"deleted": err == nil, "_id": id.Hex()}, err)
		return nil
	})
}

// HandleIncViews xử lý PATCH /blogs/:slugOrId/views: tăng lượt xem.
func (h *BlogHandler) HandleIncViews(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.resolveID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		blog, err := h.BlogService.IncViews(c.Context(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"_id": blog.ID.Hex(), "views": blog.Views}, nil)
		return nil
	})
}
