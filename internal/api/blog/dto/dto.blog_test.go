package blogdto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blogmodels "github.com/hoangtien07/AI-Tool-server/internal/api/blog/models"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

// Bài viết mới không gửi status phải hiển thị ngay trên list công khai
// (list mặc định lọc status=active).
func TestBlogCreateInput_Defaults(t *testing.T) {
	raw := `{
		"title": {"vi":"Hướng dẫn SEO","en":"SEO guide"},
		"tags": ["  SEO", "seo", "Marketing", ""]
	}`
	var in BlogCreateInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	blog := in.ToModel()
	assert.Equal(t, blogmodels.BlogStatusActive, blog.Status)
	assert.Equal(t, blogmodels.BlogSourceManual, blog.Source)
	assert.Equal(t, "Hướng dẫn SEO", blog.Title.Pick(i18n.LangVI))
	assert.Equal(t, []string{"seo", "marketing"}, blog.Tags)
}

func TestBlogCreateInput_ExplicitStatusKept(t *testing.T) {
	var in BlogCreateInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Nháp","status":"draft"}`), &in))

	blog := in.ToModel()
	assert.Equal(t, blogmodels.BlogStatusDraft, blog.Status)
}

func TestBlogUpdateInput_PointerPresence(t *testing.T) {
	var in BlogUpdateInput
	require.NoError(t, json.Unmarshal([]byte(`{"excerpt":{"en":"New excerpt"},"lang":"en","keepSlug":true}`), &in))

	require.NotNil(t, in.Excerpt)
	assert.Equal(t, "New excerpt", in.Excerpt.Text().Pick(i18n.LangEN))
	assert.Nil(t, in.Title)
	assert.Nil(t, in.Content)
	assert.Equal(t, "en", in.Lang)
	assert.True(t, in.KeepSlug)
}
