package botsvc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	botdto "github.com/hoangtien07/AI-Tool-server/internal/api/bot/dto"
	botmodels "github.com/hoangtien07/AI-Tool-server/internal/api/bot/models"
	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
	"github.com/hoangtien07/AI-Tool-server/internal/search"
)

// Collection chưa đăng ký trong registry → constructor trả lỗi thay vì panic.
func TestNewBotServiceMissingCollection(t *testing.T) {
	_, err := NewBotService()
	require.Error(t, err)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.ErrCodeDatabaseConnection.Code, appErr.Code.Code)
}

func TestSlugBase(t *testing.T) {
	title := i18n.Text{"vi": "Trợ lý viết nội dung", "en": "Writing assistant"}
	name := i18n.Text{"en": "Jasper"}

	// Slug client gửi được ưu tiên
	assert.Equal(t, "custom-slug", slugBase("Custom Slug", title, name))
	// Không có slug → title.vi
	assert.Equal(t, "tro-ly-viet-noi-dung", slugBase("", title, name))
	// Title rỗng → name
	assert.Equal(t, "jasper", slugBase("", i18n.Text{}, name))
	// Tất cả rỗng
	assert.Equal(t, "", slugBase("", i18n.Text{}, i18n.Text{}))
}

func TestMergeText_SingleLang(t *testing.T) {
	current := i18n.Text{"vi": "Cũ", "en": "Old"}
	var v botdto.LocalizedValue
	require.NoError(t, json.Unmarshal([]byte(`"New"`), &v))

	merged := mergeText(current, &v, i18n.LangEN)
	assert.Equal(t, "Cũ", merged["vi"])
	assert.Equal(t, "New", merged["en"])
}

func TestMergeText_DualLang(t *testing.T) {
	current := i18n.Text{"vi": "Cũ", "en": "Old"}
	var v botdto.LocalizedValue
	require.NoError(t, json.Unmarshal([]byte(`{"vi":"Mới"}`), &v))

	merged := mergeText(current, &v, "")
	assert.Equal(t, "Mới", merged["vi"])
	assert.Equal(t, "Old", merged["en"])

	// Input nil giữ nguyên bản hiện tại
	assert.Equal(t, current, mergeText(current, nil, ""))
}

func TestApplyTextUpdate(t *testing.T) {
	set := map[string]interface{}{}
	var v botdto.LocalizedValue
	require.NoError(t, json.Unmarshal([]byte(`{"vi":"Tiêu đề","en":"Title"}`), &v))

	applyTextUpdate(set, "title", &v, "")
	assert.Equal(t, "Tiêu đề", set["title.vi"])
	assert.Equal(t, "Title", set["title.en"])

	set = map[string]interface{}{}
	applyTextUpdate(set, "title", &v, i18n.LangEN)
	assert.Equal(t, "Title", set["title.en"])
	_, hasVI := set["title.vi"]
	assert.False(t, hasVI)
}

func TestListFilter(t *testing.T) {
	filter := listFilter(ListParams{})
	assert.Equal(t, bson.M{"$ne": botmodels.BotStatusInactive}, filter["status"])

	filter = listFilter(ListParams{Status: "inactive", Tag: " NLP ", Category: "office-ai"})
	assert.Equal(t, "inactive", filter["status"])
	assert.Equal(t, "nlp", filter["tags"])
	assert.Equal(t, "office-ai", filter["category"])

	filter = listFilter(ListParams{Category: "office-ai, design-creative"})
	assert.Equal(t, bson.M{"$in": []string{"office-ai", "design-creative"}}, filter["category"])
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "views", Value: -1}}, parseSort("-views"))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, parseSort("createdAt"))
	// Field lạ rơi về mặc định
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, parseSort("password"))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, parseSort(""))
}

func TestMergeBots(t *testing.T) {
	a := botmodels.Bot{ID: primitive.NewObjectID(), Slug: "a"}
	b := botmodels.Bot{ID: primitive.NewObjectID(), Slug: "b"}
	c := botmodels.Bot{ID: primitive.NewObjectID(), Slug: "c"}

	// Trùng ID giữ bản ở pha đầu
	merged := mergeBots([]botmodels.Bot{a, b}, []botmodels.Bot{b, c}, 0, 10)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{merged[0].Slug, merged[1].Slug, merged[2].Slug})

	// Cửa sổ offset/limit
	merged = mergeBots([]botmodels.Bot{a, b}, []botmodels.Bot{c}, 1, 1)
	require.Len(t, merged, 1)
	assert.Equal(t, "b", merged[0].Slug)

	// Offset vượt quá danh sách
	assert.Empty(t, mergeBots([]botmodels.Bot{a}, nil, 5, 10))
}

func TestBotSnippetSource(t *testing.T) {
	bot := botmodels.Bot{
		Name:    i18n.Text{"en": "Jasper"},
		Summary: i18n.Text{"en": "AI writing assistant for marketers"},
		Features: []i18n.Text{
			{"en": "Blog post generator"},
			{"en": "Brand voice tuning"},
		},
	}

	_, re, err := search.FromQuery("brand voice")
	require.NoError(t, err)

	// Summary không match, features match → chọn features nối " • "
	src := botSnippetSource(bot, i18n.LangEN, re)
	assert.Contains(t, src, "Brand voice tuning")
	assert.Contains(t, src, " • ")

	// Không match gì → candidate đầu tiên khác rỗng (summary)
	_, re2, err := search.FromQuery("pricing")
	require.NoError(t, err)
	assert.Equal(t, "AI writing assistant for marketers", botSnippetSource(bot, i18n.LangEN, re2))
}

func TestBotSnippetSource_Pricing(t *testing.T) {
	bot := botmodels.Bot{
		Name: i18n.Text{"en": "Tool"},
		Pricing: []botmodels.PricingTier{
			{Plan: i18n.Text{"en": "Pro"}, PriceText: i18n.Text{"en": "$20/month"}},
			{Plan: i18n.Text{"en": "Free"}},
		},
	}

	_, re, err := search.FromQuery("pro")
	require.NoError(t, err)
	src := botSnippetSource(bot, i18n.LangEN, re)
	assert.Equal(t, "Pro - $20/month • Free", src)
}
