package swagval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result)
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestCommit(t *testing.T) {
	assert.NotEmpty(t, Commit())
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()

	assert.True(t, strings.HasPrefix(ua, "swagval/"))
	assert.Equal(t, "swagval/"+Version(), ua)
}
