package slug

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ChatGPT", "chatgpt"},
		{"Công cụ viết nội dung", "cong-cu-viet-noi-dung"},
		{"Đào tạo AI", "dao-tao-ai"},
		{"  Hello,   World!  ", "hello-world"},
		{"C++ & Go", "c-go"},
		{"---", ""},
		{"", ""},
		{"100% tự động", "100-tu-dong"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestEnsureUniqueFree(t *testing.T) {
	taken := func(ctx context.Context, c string) (bool, error) { return false, nil }
	got, err := EnsureUnique(context.Background(), "chatgpt", "", taken)
	require.NoError(t, err)
	assert.Equal(t, "chatgpt", got)
}

func TestEnsureUniqueSuffixes(t *testing.T) {
	used := map[string]bool{"chatgpt": true, "chatgpt-2": true}
	taken := func(ctx context.Context, c string) (bool, error) { return used[c], nil }

	got, err := EnsureUnique(context.Background(), "chatgpt", "", taken)
	require.NoError(t, err)
	assert.Equal(t, "chatgpt-3", got)
}

func TestEnsureUniqueFallback(t *testing.T) {
	taken := func(ctx context.Context, c string) (bool, error) { return false, nil }
	got, err := EnsureUnique(context.Background(), "", "65f0c2ab12de34f567890abc", taken)
	require.NoError(t, err)
	assert.Equal(t, "65f0c2ab12de34f567890abc", got)
}

func TestEnsureUniqueBothEmpty(t *testing.T) {
	taken := func(ctx context.Context, c string) (bool, error) { return false, nil }
	_, err := EnsureUnique(context.Background(), "", "", taken)
	assert.Error(t, err)
}
