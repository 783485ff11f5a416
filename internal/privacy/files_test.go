// AngelaMos | 2026
// files_test.go

package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermittedLevelsMonotonicity(t *testing.T) {
	for i := 0; i < len(tierOrder)-1; i++ {
		lower := PermittedLevels(tierOrder[i])
		higher := PermittedLevels(tierOrder[i+1])

		for _, level := range lower {
			assert.Contains(t, higher, level,
				"%s level visible to %s must stay visible to %s",
				level, tierOrder[i], tierOrder[i+1],
			)
		}
	}
}

func TestPermittedLevelsPerTier(t *testing.T) {
	assert.ElementsMatch(t,
		[]AccessLevel{AccessPublic},
		PermittedLevels(TierAnonymous),
	)
	assert.ElementsMatch(t,
		[]AccessLevel{AccessPublic},
		PermittedLevels(TierRegistered),
	)
	assert.ElementsMatch(t,
		[]AccessLevel{AccessPublic, AccessRegistered},
		PermittedLevels(TierVerified),
	)
	assert.ElementsMatch(t,
		[]AccessLevel{AccessPublic, AccessRegistered, AccessPaidOnly},
		PermittedLevels(TierPaid),
	)
}

func TestPermittedLevelsUnknownTierFailsClosed(t *testing.T) {
	assert.ElementsMatch(t,
		[]AccessLevel{AccessPublic},
		PermittedLevels(Tier(99)),
	)
}

func TestCanAccessFileOwnerOverride(t *testing.T) {
	// Owner access ignores tier entirely, including unknown tiers.
	for _, tier := range append(tierOrder, Tier(99)) {
		assert.True(t, CanAccessFile(tier, AccessPaidOnly, true),
			"owner at %s", tier)
	}
}

func TestCanAccessFileByTier(t *testing.T) {
	assert.True(t, CanAccessFile(TierAnonymous, AccessPublic, false))
	assert.False(t, CanAccessFile(TierAnonymous, AccessRegistered, false))
	assert.False(t, CanAccessFile(TierRegistered, AccessRegistered, false))
	assert.True(t, CanAccessFile(TierVerified, AccessRegistered, false))
	assert.False(t, CanAccessFile(TierVerified, AccessPaidOnly, false))
	assert.True(t, CanAccessFile(TierPaid, AccessPaidOnly, false))
}
