package searchsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTab(t *testing.T) {
	assert.Equal(t, TabBots, NormalizeTab("bots"))
	assert.Equal(t, TabBots, NormalizeTab(" Bots "))
	assert.Equal(t, TabBlogs, NormalizeTab("blogs"))
	assert.Equal(t, TabAll, NormalizeTab("all"))
	assert.Equal(t, TabAll, NormalizeTab(""))
	assert.Equal(t, TabAll, NormalizeTab("users"))
}
