package basehdl

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/logger"
)

// JSONResponse ghi response JSON với charset utf-8 (nội dung tiếng Việt).
func (h *BaseHandler[T, CreateInput, UpdateInput]) JSONResponse(c fiber.Ctx, status int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(status).JSON(data)
}

// SafeHandler bọc một handler với recover để panic không làm crash server.
func (h *BaseHandler[T, CreateInput, UpdateInput]) SafeHandler(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithField("panic", r).Error("Handler panic recovered")
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				common.MsgInternalError,
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse ghi response theo envelope chuẩn {code, message, data, status}.
//   - err là *common.Error → trả đúng StatusCode kèm mã lỗi và details
//   - err khác → 500 với category DB
//   - không có lỗi → 200 success
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		var appErr *common.Error
		if errors.As(err, &appErr) {
			_ = h.JSONResponse(c, appErr.StatusCode, fiber.Map{
				"code":    appErr.Code.Code,
				"message": appErr.Message,
				"details": appErr.Details,
				"status":  "error",
			})
			return
		}

		logger.GetErrorLogger().WithError(err).Error("Unhandled error in handler")
		_ = h.JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeDatabase.Code,
			"message": err.Error(),
			"status":  "error",
		})
		return
	}

	_ = h.JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}
