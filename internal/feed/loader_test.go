package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocalSource(t *testing.T) {
	assert.True(t, isLocalSource("./testdata/feed.zip"))
	assert.True(t, isLocalSource("/data/feed.zip"))
	assert.False(t, isLocalSource("https://example.com/feed.zip"))
	assert.False(t, isLocalSource("http://example.com/feed.zip"))
}
