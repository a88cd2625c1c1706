package database

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

type tierFixture struct {
	Plan   i18n.Text `bson:"plan" index:"text:2"`
	Amount float64   `bson:"amount"`
}

type modelFixture struct {
	Name     i18n.Text     `bson:"name" index:"text:10"`
	Content  i18n.RichText `bson:"content" index:"text:4"`
	Slug     string        `bson:"slug" index:"unique"`
	External string        `bson:"externalKey,omitempty" index:"unique,sparse"`
	Views    int64         `bson:"views" index:"single:-1"`
	Category string        `bson:"category" index:"single:1"`
	Tags     []string      `bson:"tags" index:"text:2"`
	Pricing  []tierFixture `bson:"pricing"`
	hidden   string        `bson:"hidden" index:"single:1"` //nolint:unused
	Skipped  string        `bson:"-" index:"single:1"`
}

func specsByPath(specs []indexSpec) map[string]indexSpec {
	m := map[string]indexSpec{}
	for _, s := range specs {
		m[s.Path] = s
	}
	return m
}

func TestCollectIndexSpecs(t *testing.T) {
	specs := collectIndexSpecs(reflect.TypeOf(modelFixture{}), "")
	byPath := specsByPath(specs)

	// i18n.Text mở rộng thành .vi/.en, giữ nguyên trọng số
	require.Contains(t, byPath, "name.vi")
	require.Contains(t, byPath, "name.en")
	assert.Equal(t, 10, byPath["name.vi"].TextWeight)

	// i18n.RichText trỏ vào biến thể plain text
	require.Contains(t, byPath, "content.vi.text")
	require.Contains(t, byPath, "content.en.text")
	assert.Equal(t, 4, byPath["content.en.text"].TextWeight)

	// Slice field thường giữ nguyên path
	require.Contains(t, byPath, "tags")
	assert.Equal(t, "text", byPath["tags"].Kind)

	// Đệ quy vào slice-of-struct với prefix bson path
	require.Contains(t, byPath, "pricing.plan.vi")
	assert.Equal(t, 2, byPath["pricing.plan.vi"].TextWeight)

	assert.Equal(t, "unique", byPath["slug"].Kind)
	assert.False(t, byPath["slug"].Sparse)

	assert.Equal(t, "unique", byPath["externalKey"].Kind)
	assert.True(t, byPath["externalKey"].Sparse)

	assert.Equal(t, -1, byPath["views"].Order)
	assert.Equal(t, 1, byPath["category"].Order)

	// Field không export và field bson:"-" bị bỏ qua
	assert.NotContains(t, byPath, "hidden")
	assert.NotContains(t, byPath, "Skipped")
}

func TestParseIndexTagMultipleGroups(t *testing.T) {
	specs := parseIndexTag("single:1;text:3", "status", reflect.TypeOf(""))
	byPath := specsByPath(specs)
	require.Len(t, specs, 2)
	assert.Equal(t, 3, byPath["status"].TextWeight)
}
