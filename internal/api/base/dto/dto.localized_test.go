package basedto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

func TestLocalizedValue_StringPayload(t *testing.T) {
	var v LocalizedValue
	require.NoError(t, json.Unmarshal([]byte(`"ChatGPT"`), &v))
	assert.Equal(t, i18n.Text{"vi": "ChatGPT", "en": "ChatGPT"}, v.Text())
}

func TestLocalizedValue_ObjectPayload(t *testing.T) {
	var v LocalizedValue
	require.NoError(t, json.Unmarshal([]byte(`{"en":"Writing assistant"}`), &v))
	assert.Equal(t, i18n.Text{"en": "Writing assistant"}, v.Text())

	// Key ngôn ngữ không hỗ trợ bị bỏ qua
	var v2 LocalizedValue
	require.NoError(t, json.Unmarshal([]byte(`{"vi":"Trợ lý viết","fr":"Assistant"}`), &v2))
	assert.Equal(t, i18n.Text{"vi": "Trợ lý viết"}, v2.Text())
}

func TestLocalizedList_MixedPayload(t *testing.T) {
	var l LocalizedList
	raw := `["Tóm tắt văn bản", {"vi":"Dịch đa ngôn ngữ","en":"Multilingual translation"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	require.Len(t, l.Texts(), 2)
	assert.Equal(t, "Tóm tắt văn bản", l.Texts()[0].Pick(i18n.LangEN))
	assert.Equal(t, "Multilingual translation", l.Texts()[1].Pick(i18n.LangEN))
}

func TestLocalizedRich(t *testing.T) {
	var r LocalizedRich
	require.NoError(t, json.Unmarshal([]byte(`{"vi":"<p>Xin chào</p>","en":"  "}`), &r))

	rich := r.RichText()
	require.Contains(t, rich, "vi")
	assert.Equal(t, "<p>Xin chào</p>", rich["vi"].Raw)
	// Biến thể chỉ có whitespace bị bỏ
	assert.NotContains(t, rich, "en")

	// String đơn nhân đôi cho cả hai ngôn ngữ
	var r2 LocalizedRich
	require.NoError(t, json.Unmarshal([]byte(`"<p>Hello</p>"`), &r2))
	rich2 := r2.RichText()
	assert.Equal(t, "<p>Hello</p>", rich2["vi"].Raw)
	assert.Equal(t, "<p>Hello</p>", rich2["en"].Raw)
}

func TestFlexibleInt(t *testing.T) {
	var f FlexibleInt
	require.NoError(t, json.Unmarshal([]byte(`2015`), &f))
	assert.Equal(t, 2015, int(f))

	require.NoError(t, json.Unmarshal([]byte(`"2019"`), &f))
	assert.Equal(t, 2019, int(f))

	assert.Error(t, json.Unmarshal([]byte(`"hai nghìn"`), &f))
}

func TestFlexibleFloat(t *testing.T) {
	var f FlexibleFloat
	require.NoError(t, json.Unmarshal([]byte(`19.99`), &f))
	assert.Equal(t, 19.99, float64(f))

	require.NoError(t, json.Unmarshal([]byte(`"20"`), &f))
	assert.Equal(t, 20.0, float64(f))
}
