package botdto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	botmodels "github.com/hoangtien07/AI-Tool-server/internal/api/bot/models"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

func TestPricingTierInput_Defaults(t *testing.T) {
	var in PricingTierInput
	require.NoError(t, json.Unmarshal([]byte(`{"plan":"Pro","priceText":"$20/tháng","amount":"20"}`), &in))

	tier := in.ToModel()
	assert.Equal(t, botmodels.DefaultCurrency, tier.Currency)
	assert.Equal(t, botmodels.PricingIntervalMonth, tier.Interval)
	assert.Equal(t, 20.0, tier.Amount)
	assert.Equal(t, "Pro", tier.Plan.Pick(i18n.LangVI))
}

func TestBotCreateInput_ToModel(t *testing.T) {
	raw := `{
		"name": "ChatGPT",
		"title": {"vi":"Trợ lý AI đa năng","en":"General-purpose AI assistant"},
		"features": ["Chat", "Code"],
		"tags": ["  Chatbot", "chatbot", "NLP", ""],
		"foundedYear": "2015",
		"pricing": [{"plan":"Free"}]
	}`
	var in BotCreateInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	bot := in.ToModel()
	assert.Equal(t, "ChatGPT", bot.Name.Pick(i18n.LangVI))
	assert.Equal(t, "Trợ lý AI đa năng", bot.Title.Pick(i18n.LangVI))
	assert.Equal(t, "General-purpose AI assistant", bot.Title.Pick(i18n.LangEN))
	assert.Equal(t, []string{"chatbot", "nlp"}, bot.Tags)
	assert.Equal(t, 2015, bot.FoundedYear)
	assert.Equal(t, botmodels.BotStatusActive, bot.Status)
	require.Len(t, bot.Pricing, 1)
	assert.Equal(t, botmodels.DefaultCurrency, bot.Pricing[0].Currency)
}

func TestBotUpdateInput_PointerPresence(t *testing.T) {
	var in BotUpdateInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":{"en":"New title"},"lang":"en","keepSlug":true}`), &in))

	require.NotNil(t, in.Title)
	assert.Equal(t, "New title", in.Title.Text().Pick(i18n.LangEN))
	assert.Nil(t, in.Name)
	assert.Nil(t, in.Tags)
	assert.Equal(t, "en", in.Lang)
	assert.True(t, in.KeepSlug)
}
