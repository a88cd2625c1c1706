package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLang(t *testing.T) {
	tests := []struct {
		name      string
		queryLang string
		accept    string
		want      string
	}{
		{"query lang en", "en", "vi-VN", "en"},
		{"query lang vi", "vi", "en-US", "vi"},
		{"query lang invalid falls to accept", "fr", "en-US,en;q=0.9", "en"},
		{"accept english primary subtag", "", "en-GB", "en"},
		{"accept vietnamese", "", "vi-VN,vi;q=0.9", "vi"},
		{"nothing resolvable defaults vi", "", "", "vi"},
		{"accept other language defaults vi", "", "fr-FR", "vi"},
		{"query lang uppercase", "EN", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLang(tt.queryLang, tt.accept))
		})
	}
}

func TestSetDefaultLang(t *testing.T) {
	t.Cleanup(func() { SetDefaultLang(LangVI) })

	SetDefaultLang(" EN ")
	assert.Equal(t, LangEN, DefaultLang())
	assert.Equal(t, LangEN, ResolveLang("", ""))

	// Accept-Language vẫn thắng ngôn ngữ mặc định
	assert.Equal(t, LangVI, ResolveLang("", "vi-VN"))

	// Mã không hỗ trợ bị bỏ qua
	SetDefaultLang("fr")
	assert.Equal(t, LangEN, DefaultLang())
}

func TestTextPick(t *testing.T) {
	txt := Text{"vi": "Xin chào", "en": "Hello"}
	assert.Equal(t, "Xin chào", txt.Pick("vi"))
	assert.Equal(t, "Hello", txt.Pick("en"))

	// Ngôn ngữ yêu cầu rỗng sau khi trim → fallback sang ngôn ngữ còn lại
	onlyEN := Text{"vi": "   ", "en": "Hello"}
	assert.Equal(t, "Hello", onlyEN.Pick("vi"))

	onlyVI := Text{"vi": "Xin chào"}
	assert.Equal(t, "Xin chào", onlyVI.Pick("en"))

	empty := Text{}
	assert.Equal(t, "", empty.Pick("vi"))

	var nilText Text
	assert.Equal(t, "", nilText.Pick("en"))
}

func TestTextMissingLang(t *testing.T) {
	full := Text{"vi": "Xin chào", "en": "Hello"}
	assert.Equal(t, "", full.MissingLang())

	// Thiếu en, hoặc en chỉ toàn khoảng trắng
	assert.Equal(t, "en", Text{"vi": "Xin chào"}.MissingLang())
	assert.Equal(t, "en", Text{"vi": "Xin chào", "en": "  "}.MissingLang())
	assert.Equal(t, "vi", Text{"en": "Hello"}.MissingLang())

	var nilText Text
	assert.Equal(t, "vi", nilText.MissingLang())
}

func TestRichTextPick(t *testing.T) {
	rt := RichText{
		"vi": {Raw: "**chào**", HTML: "<strong>chào</strong>", Text: "chào"},
	}
	// en rỗng → fallback vi, trả về nguyên sub-object
	got := rt.Pick("en")
	assert.Equal(t, "chào", got.Text)
	assert.Equal(t, "<strong>chào</strong>", got.HTML)

	// Biến thể chỉ có raw vẫn được coi là có nội dung
	rawOnly := RichText{"en": {Raw: "draft"}}
	assert.Equal(t, "draft", rawOnly.Pick("vi").Raw)

	var nilRT RichText
	assert.True(t, nilRT.Pick("vi").IsEmpty())
}

func TestPickList(t *testing.T) {
	items := []Text{
		{"vi": "Một", "en": "One"},
		{"vi": "", "en": "Two"},
		{},
	}
	assert.Equal(t, []string{"Một", "Two"}, PickList(items, "vi"))
	assert.Equal(t, []string{"One", "Two"}, PickList(items, "en"))
	assert.Nil(t, PickList(nil, "vi"))
}

func TestToText(t *testing.T) {
	// String đơn được nhân bản cho cả hai ngôn ngữ
	assert.Equal(t, Text{"vi": "x", "en": "x"}, ToText("x"))

	assert.Equal(t, Text{"vi": "a", "en": "b"}, ToText(map[string]interface{}{"vi": "a", "en": "b"}))
	assert.Equal(t, Text{}, ToText(nil))
	assert.Equal(t, Text{}, ToText(42))
}
