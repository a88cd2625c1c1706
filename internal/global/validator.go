package global

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

// InitValidator khởi tạo và đăng ký các custom validator.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("lang", validateLang)
}

// validateNoXSS chặn các pattern nguy hiểm thường gặp trong input text.
// Nội dung rich text không dùng validator này, đi qua sanitizer riêng.
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateLang chỉ chấp nhận mã ngôn ngữ được hỗ trợ (vi/en).
// Giá trị rỗng coi là hợp lệ, dùng kèm omitempty.
func validateLang(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return i18n.IsSupported(strings.ToLower(value))
}
