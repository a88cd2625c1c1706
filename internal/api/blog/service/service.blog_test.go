package blogsvc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basedto "github.com/hoangtien07/AI-Tool-server/internal/api/base/dto"
	blogmodels "github.com/hoangtien07/AI-Tool-server/internal/api/blog/models"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
	"github.com/hoangtien07/AI-Tool-server/internal/search"
)

// Collection chưa đăng ký trong registry → constructor trả lỗi thay vì panic.
func TestNewBlogServiceMissingCollection(t *testing.T) {
	_, err := NewBlogService()
	require.Error(t, err)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.ErrCodeDatabaseConnection.Code, appErr.Code.Code)
}

func TestSlugBase(t *testing.T) {
	title := i18n.Text{"vi": "Hướng dẫn dùng ChatGPT", "en": "ChatGPT guide"}

	assert.Equal(t, "bai-viet", slugBase("Bài Viết", title))
	assert.Equal(t, "huong-dan-dung-chatgpt", slugBase("", title))
	assert.Equal(t, "chatgpt-guide", slugBase("", i18n.Text{"en": "ChatGPT guide"}))
	assert.Equal(t, "", slugBase("", i18n.Text{}))
}

func TestMergeText_SingleLang(t *testing.T) {
	current := i18n.Text{"vi": "Cũ", "en": "Old"}
	var v basedto.LocalizedValue
	require.NoError(t, json.Unmarshal([]byte(`"New"`), &v))

	merged := mergeText(current, &v, i18n.LangEN)
	assert.Equal(t, "Cũ", merged["vi"])
	assert.Equal(t, "New", merged["en"])
}

func TestListFilter(t *testing.T) {
	filter := listFilter(ListParams{})
	assert.Equal(t, blogmodels.BlogStatusActive, filter["status"])

	filter = listFilter(ListParams{Status: "draft", Tag: " SEO "})
	assert.Equal(t, "draft", filter["status"])
	assert.Equal(t, "seo", filter["tags"])
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "views", Value: -1}}, parseSort("-views"))
	assert.Equal(t, bson.D{{Key: "publishedAt", Value: 1}}, parseSort("publishedAt"))
	// Field lạ rơi về mặc định
	assert.Equal(t,
		bson.D{{Key: "publishedAt", Value: -1}, {Key: "createdAt", Value: -1}},
		parseSort("secret"))
}

func TestMergeBlogs(t *testing.T) {
	a := blogmodels.Blog{ID: primitive.NewObjectID(), Slug: "a"}
	b := blogmodels.Blog{ID: primitive.NewObjectID(), Slug: "b"}
	c := blogmodels.Blog{ID: primitive.NewObjectID(), Slug: "c"}

	merged := mergeBlogs([]blogmodels.Blog{a, b}, []blogmodels.Blog{b, c}, 0, 10)
	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].Slug)

	merged = mergeBlogs(nil, []blogmodels.Blog{a, b, c}, 1, 1)
	require.Len(t, merged, 1)
	assert.Equal(t, "b", merged[0].Slug)
}

func TestBlogSnippetSource(t *testing.T) {
	blog := blogmodels.Blog{
		Title:   i18n.Text{"en": "Prompt engineering basics"},
		Excerpt: i18n.Text{"en": "A short intro"},
		Content: i18n.RichText{
			"en": {Text: "Prompt engineering is the craft of writing effective prompts"},
		},
	}

	// Excerpt không match, content text match
	_, re, err := search.FromQuery("effective")
	require.NoError(t, err)
	src := blogSnippetSource(blog, i18n.LangEN, re)
	assert.Contains(t, src, "effective prompts")

	// Không match → candidate đầu tiên khác rỗng (excerpt)
	_, re2, err := search.FromQuery("blockchain")
	require.NoError(t, err)
	assert.Equal(t, "A short intro", blogSnippetSource(blog, i18n.LangEN, re2))
}
