package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

func TestPackSanitizesScript(t *testing.T) {
	raw := `<p>Hello <script>alert("xss")</script>world</p>`
	got := Pack(raw)

	assert.Equal(t, raw, got.Raw)
	assert.NotContains(t, got.HTML, "<script")
	assert.NotContains(t, got.Text, "alert")
	assert.Contains(t, got.Text, "Hello")
	assert.Contains(t, got.Text, "world")
}

func TestPackKeepsSafeMarkup(t *testing.T) {
	got := Pack(`<p>Xin <strong>chào</strong></p>`)
	assert.Contains(t, got.HTML, "<strong>chào</strong>")
	assert.Equal(t, "Xin chào", got.Text)
}

func TestPackEmpty(t *testing.T) {
	got := Pack("   ")
	assert.Empty(t, got.HTML)
	assert.Empty(t, got.Text)
}

func TestPackIdempotent(t *testing.T) {
	raw := `<p>Một <em>đoạn</em> văn</p>`
	first := Pack(raw)
	second := Pack(first.Raw)
	assert.Equal(t, first, second)
}

func TestPackTextDropsVariantsWithoutRaw(t *testing.T) {
	in := i18n.RichText{
		"vi": {Raw: "<p>nội dung</p>"},
		"en": {HTML: "<p>injected</p>", Text: "injected"}, // không có raw → bị loại
	}
	out := PackText(in)

	assert.Contains(t, out, "vi")
	assert.NotContains(t, out, "en")
	assert.Equal(t, "nội dung", out["vi"].Text)
}

func TestPlainTextCollapsesWhitespace(t *testing.T) {
	got := PlainText("<div>  a\n\n<span>b</span>\t c  </div>")
	assert.Equal(t, "a b c", got)
}
