package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ====================================
// HTTP STATUS CODES
// ====================================

const (
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Đã tạo mới thành công
	StatusNoContent = 204 // Thành công, không có nội dung trả về

	StatusBadRequest   = 400 // Request không hợp lệ
	StatusUnauthorized = 401 // Chưa xác thực
	StatusForbidden    = 403 // Không có quyền truy cập
	StatusNotFound     = 404 // Không tìm thấy tài nguyên
	StatusConflict     = 409 // Xung đột dữ liệu (trùng lặp)
	StatusTooMany      = 429 // Quá nhiều request

	StatusInternalServerError = 500 // Lỗi hệ thống
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
	StatusGatewayTimeout      = 504 // Timeout
)

// ====================================
// RESPONSE MESSAGES
// ====================================

const (
	MsgSuccess          = "Thao tác thành công"
	MsgCreated          = "Tạo mới thành công"
	MsgValidationError  = "Dữ liệu không hợp lệ"
	MsgNotFound         = "Không tìm thấy dữ liệu"
	MsgDuplicate        = "Dữ liệu đã tồn tại"
	MsgInternalError    = "Lỗi hệ thống"
	MsgDatabaseError    = "Lỗi cơ sở dữ liệu"
	MsgQueryRequired    = "Thiếu từ khóa tìm kiếm"
	MsgInvalidObjectID  = "ID không đúng định dạng ObjectId"
	MsgRequiredField    = "Thiếu trường bắt buộc"
	MsgInvalidLanguage  = "Ngôn ngữ không được hỗ trợ"
	MsgServiceDegraded  = "Hệ thống đang gặp sự cố"
	MsgTooManyRequests  = "Quá nhiều request, vui lòng thử lại sau"
	MsgOperationTimeout = "Thao tác vượt quá thời gian cho phép"
)

// ====================================
// ERROR CODES
// ====================================

// ErrorCode định danh lỗi theo category để client phân loại được lỗi
type ErrorCode struct {
	Code        string // Mã lỗi, ví dụ: VAL_001
	Category    string // Nhóm lỗi: SYS, VAL, DB, BIZ
	SubCategory string // Nhóm con
	Description string // Mô tả ngắn
}

var (
	// Lỗi hệ thống
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "SYS", SubCategory: "INTERNAL", Description: "Lỗi hệ thống không xác định"}

	// Lỗi validation
	ErrCodeValidation       = ErrorCode{Code: "VAL", Category: "VAL", Description: "Lỗi validation"}
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "VAL", SubCategory: "INPUT", Description: "Dữ liệu đầu vào không hợp lệ"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "VAL", SubCategory: "FORMAT", Description: "Định dạng dữ liệu không hợp lệ"}

	// Lỗi database
	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "DB", Description: "Lỗi cơ sở dữ liệu"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "DB", SubCategory: "CONNECTION", Description: "Lỗi kết nối cơ sở dữ liệu"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "DB", SubCategory: "QUERY", Description: "Lỗi truy vấn cơ sở dữ liệu"}

	// Lỗi nghiệp vụ
	ErrCodeBusiness          = ErrorCode{Code: "BIZ", Category: "BIZ", Description: "Lỗi nghiệp vụ"}
	ErrCodeBusinessState     = ErrorCode{Code: "BIZ_001", Category: "BIZ", SubCategory: "STATE", Description: "Trạng thái dữ liệu không hợp lệ"}
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ_002", Category: "BIZ", SubCategory: "OPERATION", Description: "Thao tác nghiệp vụ không hợp lệ"}
)

// ====================================
// ERROR TYPE
// ====================================

// Error là kiểu lỗi chuẩn của ứng dụng, mang theo mã lỗi và HTTP status code
type Error struct {
	Code       ErrorCode              // Mã lỗi phân loại
	Message    string                 // Thông báo cho client
	StatusCode int                    // HTTP status code tương ứng
	Details    map[string]interface{} // Chi tiết bổ sung (field lỗi, giá trị trùng, ...)
}

// Error implement interface error
func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("[%s] %s: %v", e.Code.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code.Code, e.Message)
}

// Is so sánh hai Error theo mã lỗi và status code, phục vụ errors.Is.
// Cần cả status code vì ErrNotFound và ErrDuplicate dùng chung mã DB_002.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code.Code == t.Code.Code && e.StatusCode == t.StatusCode
	}
	return false
}

// NewError tạo một Error mới với mã lỗi, message và status code
func NewError(code ErrorCode, message string, statusCode int, details interface{}) *Error {
	e := &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
	if details != nil {
		if m, ok := details.(map[string]interface{}); ok {
			e.Details = m
		} else {
			e.Details = map[string]interface{}{"error": fmt.Sprintf("%v", details)}
		}
	}
	return e
}

// ====================================
// SENTINEL ERRORS
// ====================================

var (
	ErrNotFound      = NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, nil)
	ErrDuplicate     = NewError(ErrCodeDatabaseQuery, MsgDuplicate, StatusConflict, nil)
	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgValidationError, StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, MsgRequiredField, StatusBadRequest, nil)
)

// ====================================
// MONGODB ERROR CONVERSION
// ====================================

// dupKeyRe tách tên index và cặp key/value từ message lỗi duplicate key của MongoDB.
// Ví dụ: E11000 duplicate key error collection: db.bots index: slug_1 dup key: { slug: "chatgpt" }
var (
	dupIndexRe = regexp.MustCompile(`index: (\S+)`)
	dupKeyRe   = regexp.MustCompile(`dup key: \{ ([^:]+): "?([^"}]*)"? \}`)
)

// ConvertMongoError chuyển lỗi từ mongo-driver thành *Error chuẩn của ứng dụng.
// Lỗi duplicate key trả về 409 kèm tên field và giá trị bị trùng trong Details.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Đã là Error chuẩn thì giữ nguyên
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	// Không tìm thấy document
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Duplicate key: bóc field và value từ message để client biết trường nào trùng
	if mongo.IsDuplicateKeyError(err) {
		details := map[string]interface{}{}
		msg := err.Error()
		if m := dupIndexRe.FindStringSubmatch(msg); len(m) == 2 {
			details["index"] = m[1]
		}
		if m := dupKeyRe.FindStringSubmatch(msg); len(m) == 3 {
			details["field"] = strings.TrimSpace(m[1])
			details["value"] = strings.TrimSpace(m[2])
		}
		return NewError(ErrCodeDatabaseQuery, MsgDuplicate, StatusConflict, details)
	}

	// Lỗi network / timeout
	if mongo.IsNetworkError(err) {
		return NewError(ErrCodeDatabaseConnection, MsgDatabaseError, StatusServiceUnavailable, map[string]interface{}{"error": err.Error()})
	}
	if mongo.IsTimeout(err) {
		return NewError(ErrCodeDatabaseConnection, MsgOperationTimeout, StatusGatewayTimeout, map[string]interface{}{"error": err.Error()})
	}

	// Lỗi command cụ thể từ server
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return NewError(ErrCodeDatabaseQuery, MsgDatabaseError, StatusInternalServerError, map[string]interface{}{
			"code":    cmdErr.Code,
			"message": cmdErr.Message,
		})
	}

	// Fallback: lỗi database chung
	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, map[string]interface{}{"error": err.Error()})
}
