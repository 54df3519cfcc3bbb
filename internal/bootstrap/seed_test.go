package bootstrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBadgeDefinitions(t *testing.T) {
	defs := DefaultBadgeDefinitions()
	require.NotEmpty(t, defs)

	seen := map[string]bool{}
	for _, d := range defs {
		assert.False(t, seen[d.BadgeKey], "duplicate key %s", d.BadgeKey)
		seen[d.BadgeKey] = true
		assert.NotEmpty(t, d.BadgeName)
		require.NotNil(t, d.BadgeIcon)
	}

	for _, tier := range []string{"Bronze", "Silver", "Gold", "Platinum", "Diamond", "Master"} {
		assert.True(t, seen[strings.ToLower(tier)+"_tier"], "missing badge for tier %s", tier)
	}
	assert.True(t, seen["streak_7"])
	assert.True(t, seen["streak_30"])
}
