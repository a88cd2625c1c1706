package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want []string
	}{
		{"empty", "", nil},
		{"single term", "chatgpt", []string{"chatgpt"}},
		{"multiple terms", "ai   writing tool", []string{"ai", "writing", "tool"}},
		{"quoted phrase", `"customer support" ai`, []string{"customer support", "ai"}},
		{"quoted only", `"viết nội dung"`, []string{"viết nội dung"}},
		{"mixed order", `ai "growth marketing"`, []string{"ai", "growth marketing"}},
		{"unbalanced quote stripped", `"abc`, []string{"abc"}},
		{"embedded quote stripped", `ab"c def"`, []string{"abc", "def"}},
		{"lone quote dropped", `"`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.q))
		})
	}
}

func TestBuildPatternEscapesMetacharacters(t *testing.T) {
	pattern := BuildPattern([]string{"c++", "a.b"})
	re, err := Compile(pattern)
	require.NoError(t, err)

	assert.True(t, re.MatchString("learn c++ today"))
	assert.True(t, re.MatchString("the a.b module"))
	// Dấu chấm phải match theo nghĩa đen, không phải wildcard
	assert.False(t, re.MatchString("aXb"))
	assert.False(t, re.MatchString("ccc"))
}

func TestBuildPatternEmpty(t *testing.T) {
	assert.Equal(t, "", BuildPattern(nil))
	re, err := Compile("")
	require.NoError(t, err)
	assert.Nil(t, re)
}

func TestPatternCaseInsensitive(t *testing.T) {
	_, re, err := FromQuery("ChatGPT")
	require.NoError(t, err)
	assert.True(t, re.MatchString("dùng chatgpt để viết"))
	assert.True(t, re.MatchString("CHATGPT"))
}

func TestSnippetEmpty(t *testing.T) {
	_, re, _ := FromQuery("x")
	assert.Equal(t, "", Snippet("", re))
	assert.Equal(t, "", Snippet("   ", re))
}

func TestSnippetNoMatchTruncates(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := Snippet(long, nil)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, 200+1, len([]rune(got)))

	short := "ngắn thôi"
	assert.Equal(t, short, Snippet(short, nil))
}

func TestSnippetEscapesSource(t *testing.T) {
	_, re, _ := FromQuery("tool")
	raw := `a <script>bad()</script> tool & "more"`
	got := Snippet(raw, re)

	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
	assert.Contains(t, got, "&amp;")
	assert.Contains(t, got, "<mark>tool</mark>")
}

func TestSnippetWindowAroundMatch(t *testing.T) {
	// Match nằm sâu trong text: cửa sổ phải có ellipsis hai đầu
	raw := strings.Repeat("x", 150) + " target " + strings.Repeat("y", 200)
	_, re, _ := FromQuery("target")
	got := Snippet(raw, re)

	assert.True(t, strings.HasPrefix(got, "…"))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Contains(t, got, "<mark>target</mark>")

	// Cửa sổ tối đa 80 trước + 120 sau match, cộng mark tags và ellipsis
	assert.Less(t, len([]rune(got)), 80+120+40)
}

func TestSnippetMatchAtStart(t *testing.T) {
	raw := "target ngay đầu chuỗi"
	_, re, _ := FromQuery("target")
	got := Snippet(raw, re)
	assert.False(t, strings.HasPrefix(got, "…"))
	assert.Contains(t, got, "<mark>target</mark>")
}

func TestSnippetHighlightsAllOccurrencesInWindow(t *testing.T) {
	raw := "ai tool for ai teams"
	_, re, _ := FromQuery("ai")
	got := Snippet(raw, re)
	assert.Equal(t, 2, strings.Count(got, "<mark>"))
}

func TestPickSource(t *testing.T) {
	_, re, _ := FromQuery("writing")
	candidates := []string{"", "chat assistant", "a writing helper", "writing again"}

	// Candidate đầu tiên match pattern thắng
	assert.Equal(t, "a writing helper", PickSource(candidates, re))

	// Không candidate nào match → candidate khác rỗng đầu tiên
	_, re2, _ := FromQuery("zzz")
	assert.Equal(t, "chat assistant", PickSource(candidates, re2))

	assert.Equal(t, "", PickSource([]string{"", "  "}, re))
}

func TestMergeFirstWins(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	primary := []Result{
		{ID: a, Snippet: "text-a"},
		{ID: b, Snippet: "text-b"},
	}
	secondary := []Result{
		{ID: b, Snippet: "regex-b"}, // trùng → bị loại
		{ID: c, Snippet: "regex-c"},
	}

	got := Merge(primary, secondary, 10)
	require.Len(t, got, 3)
	assert.Equal(t, []primitive.ObjectID{a, b, c}, []primitive.ObjectID{got[0].ID, got[1].ID, got[2].ID})
	// Bản từ pha $text được giữ
	assert.Equal(t, "text-b", got[1].Snippet)
}

func TestMergeTruncatesToLimit(t *testing.T) {
	var primary []Result
	for i := 0; i < 5; i++ {
		primary = append(primary, Result{ID: primitive.NewObjectID()})
	}
	got := Merge(primary, nil, 3)
	assert.Len(t, got, 3)

	assert.Empty(t, Merge(primary, nil, 0))
}

func TestMergedTotal(t *testing.T) {
	assert.Equal(t, int64(10), MergedTotal(10, 7))
	assert.Equal(t, int64(7), MergedTotal(0, 7))
}
