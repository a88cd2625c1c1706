// Package router chứa plumbing đăng ký route: cấu hình CRUD surface
// và hàm SetupRoutes gom các domain register lại.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// CRUDHandler là tập handler CRUD generic mà một domain handler cung cấp.
type CRUDHandler interface {
	InsertOne(c fiber.Ctx) error
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// CRUDConfig bật/tắt từng nhóm operation khi đăng ký CRUD routes.
type CRUDConfig struct {
	EnableRead   bool // find, find-one, find-by-id, pagination, count, distinct, exists
	EnableCreate bool // insert-one
	EnableUpdate bool // update-by-id
	EnableDelete bool // delete-by-id
}

var (
	// ReadOnlyConfig chỉ mở các route đọc, dùng cho surface quản trị công khai.
	ReadOnlyConfig = CRUDConfig{EnableRead: true}

	// ReadWriteConfig mở toàn bộ CRUD surface.
	ReadWriteConfig = CRUDConfig{EnableRead: true, EnableCreate: true, EnableUpdate: true, EnableDelete: true}
)

// RoutePrefix các prefix chuẩn của API.
var RoutePrefix = struct {
	Base string
	V1   string
}{
	Base: "/api",
	V1:   "/api/v1",
}

// Router gói fiber app để các domain đăng ký route lên đó.
type Router struct {
	App *fiber.App
}

// NewRouter tạo Router mới.
func NewRouter(app *fiber.App) *Router {
	return &Router{App: app}
}

// RegisterRoute đăng ký một route đơn dưới prefix.
func RegisterRoute(r fiber.Router, prefix, method, path string, handler fiber.Handler) {
	group := r.Group(prefix)
	switch method {
	case fiber.MethodGet:
		group.Get(path, handler)
	case fiber.MethodPost:
		group.Post(path, handler)
	case fiber.MethodPatch:
		group.Patch(path, handler)
	case fiber.MethodPut:
		group.Put(path, handler)
	case fiber.MethodDelete:
		group.Delete(path, handler)
	}
}

// RegisterCRUDRoutes đăng ký bộ route CRUD generic cho một resource dưới prefix.
func (r *Router) RegisterCRUDRoutes(v1 fiber.Router, prefix string, h CRUDHandler, config CRUDConfig) {
	group := v1.Group(prefix)

	if config.EnableCreate {
		group.Post("/insert-one", h.InsertOne)
	}
	if config.EnableRead {
		group.Get("/find", h.Find)
		group.Get("/find-one", h.FindOne)
		group.Get("/find-by-id/:id", h.FindOneById)
		group.Get("/find-by-ids", h.FindManyByIds)
		group.Get("/find-with-pagination", h.FindWithPagination)
		group.Get("/count", h.CountDocuments)
		group.Get("/distinct", h.Distinct)
		group.Get("/exists", h.DocumentExists)
	}
	if config.EnableUpdate {
		group.Patch("/update-by-id/:id", h.UpdateById)
	}
	if config.EnableDelete {
		group.Delete("/delete-by-id/:id", h.DeleteById)
	}
}

// RegisterFunc là chữ ký hàm đăng ký route của một domain.
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes tạo group /api/v1 và chạy lần lượt các domain register.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	r := NewRouter(app)
	v1 := app.Group(RoutePrefix.V1)

	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
