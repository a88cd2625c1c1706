package blogmodels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

func TestDeriveExcerpt(t *testing.T) {
	content := i18n.RichText{
		"vi": {Raw: "<p>Nội dung</p>", HTML: "<p>Nội dung</p>", Text: "Nội dung bài viết về AI"},
		"en": {Raw: "<p>Body</p>", HTML: "<p>Body</p>", Text: "Article body about AI"},
	}

	// Excerpt trống → sinh từ plain text của content
	out := DeriveExcerpt(i18n.Text{}, content)
	assert.Equal(t, "Nội dung bài viết về AI", out["vi"])
	assert.Equal(t, "Article body about AI", out["en"])

	// Excerpt có sẵn được giữ nguyên, chỉ bù ngôn ngữ thiếu
	out = DeriveExcerpt(i18n.Text{"vi": "Tóm tắt có sẵn"}, content)
	assert.Equal(t, "Tóm tắt có sẵn", out["vi"])
	assert.Equal(t, "Article body about AI", out["en"])
}

func TestDeriveExcerpt_Truncate(t *testing.T) {
	long := strings.Repeat("ă", 300)
	content := i18n.RichText{"vi": {Text: long}}

	out := DeriveExcerpt(nil, content)
	runes := []rune(out["vi"])
	assert.Len(t, runes, 201) // 200 rune + "…"
	assert.Equal(t, '…', runes[200])
}

func TestDeriveExcerpt_Empty(t *testing.T) {
	assert.Nil(t, DeriveExcerpt(nil, nil))
}

func TestUniqueTags(t *testing.T) {
	assert.Equal(t, []string{"seo", "ai"}, UniqueTags([]string{" SEO ", "seo", "AI", ""}))
	assert.Nil(t, UniqueTags(nil))
}
