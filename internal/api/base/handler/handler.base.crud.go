package basehdl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "github.com/hoangtien07/AI-Tool-server/internal/api/base/models"
	basesvc "github.com/hoangtien07/AI-Tool-server/internal/api/base/service"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/utility"
)

// InsertOne xử lý request thêm mới một document từ CreateInput.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(CreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.transformCreateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err))
			return nil
		}

		data, err := h.BaseService.InsertOne(c.Context(), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Find xử lý request tìm nhiều documents theo filter và options từ query.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opts, err := h.processMongoOptions(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Find(c.Context(), filter, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindOne xử lý request tìm một document theo filter từ query.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOne(c.Context(), filter, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindOneById xử lý request tìm một document theo ObjectID trong URI.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("%s: %s", common.MsgInvalidObjectID, id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		data, err := h.BaseService.FindOneById(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindManyByIds xử lý request tìm nhiều documents theo danh sách id (query "ids", phân cách ",").
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindManyByIds(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		raw := c.Query("ids", "")
		if raw == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, common.MsgRequiredField, common.StatusBadRequest, map[string]interface{}{"field": "ids"}))
			return nil
		}

		var ids []primitive.ObjectID
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if !primitive.IsValidObjectID(part) {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("%s: %s", common.MsgInvalidObjectID, part),
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			ids = append(ids, utility.String2ObjectID(part))
		}

		data, err := h.BaseService.FindManyByIds(c.Context(), ids)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindWithPagination xử lý request tìm documents có phân trang.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opts, err := h.processMongoOptions(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		data, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateById xử lý request cập nhật một document theo ObjectID từ UpdateInput.
// Chỉ các field có mặt trong body được đưa vào $set.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("%s: %s", common.MsgInvalidObjectID, id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		// Parse body hai lần: vào UpdateInput để validate, vào map để biết
		// field nào thực sự có mặt trong request.
		input := new(UpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var present map[string]interface{}
		if err := json.Unmarshal(c.Body(), &present); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err))
			return nil
		}

		set, err := utility.ToMap(input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err))
			return nil
		}
		for key := range set {
			if _, ok := present[key]; !ok {
				delete(set, key)
			}
		}

		data, err := h.BaseService.UpdateById(c.Context(), utility.String2ObjectID(id), &basesvc.UpdateData{Set: set})
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DeleteById xử lý request xóa một document theo ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("%s: %s", common.MsgInvalidObjectID, id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		err := h.BaseService.DeleteById(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, fiber.Map{"deleted": err == nil, "_id": id}, err)
		return nil
	})
}

// CountDocuments xử lý request đếm documents theo filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) CountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		h.HandleResponse(c, basemodels.CountResult{Count: count}, err)
		return nil
	})
}

// Distinct xử lý request lấy giá trị duy nhất của một field.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Distinct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		fieldName := c.Query("field", "")
		if fieldName == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, common.MsgRequiredField, common.StatusBadRequest, map[string]interface{}{"field": "field"}))
			return nil
		}

		filter, err := h.processFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Distinct(c.Context(), fieldName, filter)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DocumentExists xử lý request kiểm tra document khớp filter có tồn tại không.
func (h *BaseHandler[T, CreateInput, UpdateInput]) DocumentExists(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		exists, err := h.BaseService.DocumentExists(c.Context(), filter)
		h.HandleResponse(c, fiber.Map{"exists": exists}, err)
		return nil
	})
}
