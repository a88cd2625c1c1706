// Package i18n định nghĩa các kiểu dữ liệu đa ngôn ngữ (vi/en) dùng chung
// cho toàn bộ content: text ngắn, rich content và logic chọn ngôn ngữ.
package i18n

import "strings"

// Các ngôn ngữ được hỗ trợ. Mọi ngôn ngữ khác đều bị coi là không hợp lệ
// và rơi về ngôn ngữ mặc định.
const (
	LangVI = "vi"
	LangEN = "en"
)

// Text là một trường text đa ngôn ngữ, key là mã ngôn ngữ (vi/en).
type Text map[string]string

// RichContent lưu một biến thể nội dung rich text theo ngôn ngữ.
// HTML và Text luôn được dẫn xuất từ Raw, không nhận trực tiếp từ client.
type RichContent struct {
	Raw  string `json:"raw,omitempty" bson:"raw,omitempty"`   // Nội dung gốc do client gửi lên
	HTML string `json:"html,omitempty" bson:"html,omitempty"` // HTML đã được sanitize
	Text string `json:"text,omitempty" bson:"text,omitempty"` // Plain text trích từ HTML, dùng cho tìm kiếm
}

// RichText là một trường rich content đa ngôn ngữ.
type RichText map[string]RichContent

// IsSupported kiểm tra mã ngôn ngữ có được hỗ trợ không.
func IsSupported(lang string) bool {
	return lang == LangVI || lang == LangEN
}

// Other trả về ngôn ngữ còn lại trong cặp vi/en.
func Other(lang string) string {
	if lang == LangEN {
		return LangVI
	}
	return LangEN
}

// defaultLang là ngôn ngữ fallback khi request không chỉ định,
// cấu hình qua DEFAULT_LANGUAGE lúc khởi động.
var defaultLang = LangVI

// SetDefaultLang đổi ngôn ngữ fallback. Mã không được hỗ trợ bị bỏ qua.
func SetDefaultLang(lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if IsSupported(lang) {
		defaultLang = lang
	}
}

// DefaultLang trả về ngôn ngữ fallback hiện tại.
func DefaultLang() string {
	return defaultLang
}

// ResolveLang xác định ngôn ngữ của request theo thứ tự ưu tiên:
// query param lang → subtag đầu của Accept-Language → ngôn ngữ mặc định.
func ResolveLang(queryLang, acceptLanguage string) string {
	lang := strings.ToLower(strings.TrimSpace(queryLang))
	if IsSupported(lang) {
		return lang
	}
	accept := strings.ToLower(strings.TrimSpace(acceptLanguage))
	for _, l := range []string{LangVI, LangEN} {
		if strings.HasPrefix(accept, l) {
			return l
		}
	}
	return defaultLang
}

// Pick chọn giá trị theo ngôn ngữ yêu cầu.
// Ngôn ngữ yêu cầu rỗng (sau khi trim) thì fallback sang ngôn ngữ còn lại,
// cả hai đều rỗng thì trả về "".
func (t Text) Pick(lang string) string {
	if t == nil {
		return ""
	}
	if v := strings.TrimSpace(t[lang]); v != "" {
		return v
	}
	if v := strings.TrimSpace(t[Other(lang)]); v != "" {
		return v
	}
	return ""
}

// IsEmpty kiểm tra cả hai ngôn ngữ đều rỗng.
func (t Text) IsEmpty() bool {
	return t.Pick(LangVI) == ""
}

// MissingLang trả về ngôn ngữ đầu tiên còn thiếu giá trị, "" nếu đủ cả hai.
// Payload string cũ được nhân đôi cho hai ngôn ngữ nên luôn đủ;
// payload object gửi thiếu một ngôn ngữ sẽ bị field bắt buộc từ chối.
func (t Text) MissingLang() string {
	for _, lang := range []string{LangVI, LangEN} {
		if strings.TrimSpace(t[lang]) == "" {
			return lang
		}
	}
	return ""
}

// Pick chọn biến thể rich content theo ngôn ngữ yêu cầu.
// Một biến thể được coi là có nội dung khi html, raw hoặc text khác rỗng.
// Trả về nguyên sub-object để caller tự chọn html hay text.
func (rt RichText) Pick(lang string) RichContent {
	if rt == nil {
		return RichContent{}
	}
	if c := rt[lang]; !c.IsEmpty() {
		return c
	}
	if c := rt[Other(lang)]; !c.IsEmpty() {
		return c
	}
	return RichContent{}
}

// IsEmpty kiểm tra biến thể không có nội dung nào.
func (c RichContent) IsEmpty() bool {
	return strings.TrimSpace(c.HTML) == "" &&
		strings.TrimSpace(c.Raw) == "" &&
		strings.TrimSpace(c.Text) == ""
}

// PickList chọn giá trị theo ngôn ngữ cho từng phần tử, loại bỏ phần tử rỗng.
func PickList(items []Text, lang string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := item.Pick(lang); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ToText ép một giá trị legacy về Text.
// String đơn được nhân bản cho cả hai ngôn ngữ (payload cũ chỉ có một ngôn ngữ).
func ToText(v interface{}) Text {
	switch val := v.(type) {
	case nil:
		return Text{}
	case string:
		return Text{LangVI: val, LangEN: val}
	case Text:
		return val
	case map[string]string:
		return Text(val)
	case map[string]interface{}:
		t := Text{}
		if s, ok := val[LangVI].(string); ok {
			t[LangVI] = s
		}
		if s, ok := val[LangEN].(string); ok {
			t[LangEN] = s
		}
		return t
	default:
		return Text{}
	}
}
