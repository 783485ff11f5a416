// AngelaMos | 2026
// disclosure_test.go

package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var tierOrder = []Tier{TierAnonymous, TierRegistered, TierVerified, TierPaid}

// includes reports whether b exposes everything a exposes.
func includes(a, b FieldSet) bool {
	if a.FounderContact && !b.FounderContact {
		return false
	}
	if a.CompanyWebsite && !b.CompanyWebsite {
		return false
	}
	if a.CompanyDescription && !b.CompanyDescription {
		return false
	}
	return true
}

func TestFieldsForMonotonicity(t *testing.T) {
	for i := 0; i < len(tierOrder)-1; i++ {
		lower := FieldsFor(tierOrder[i])
		higher := FieldsFor(tierOrder[i+1])
		assert.True(t, includes(lower, higher),
			"%s fields must be a subset of %s fields",
			tierOrder[i], tierOrder[i+1],
		)
	}
}

func TestFieldsForMasksOnlyAnonymous(t *testing.T) {
	assert.True(t, FieldsFor(TierAnonymous).MaskNames)
	assert.False(t, FieldsFor(TierRegistered).MaskNames)
	assert.False(t, FieldsFor(TierVerified).MaskNames)
	assert.False(t, FieldsFor(TierPaid).MaskNames)
}

func TestFieldsForUnknownTierFailsClosed(t *testing.T) {
	got := FieldsFor(Tier(42))
	assert.Equal(t, FieldsFor(TierAnonymous), got)
}

func TestOwnerFieldsEqualPaidUnmasked(t *testing.T) {
	owner := OwnerFields()
	paid := FieldsFor(TierPaid)

	assert.False(t, owner.MaskNames)
	assert.Equal(t, paid.FounderContact, owner.FounderContact)
	assert.Equal(t, paid.CompanyWebsite, owner.CompanyWebsite)
	assert.Equal(t, paid.CompanyDescription, owner.CompanyDescription)
}

func TestParseTierFailsClosed(t *testing.T) {
	assert.Equal(t, TierAnonymous, ParseTier(""))
	assert.Equal(t, TierAnonymous, ParseTier("platinum"))
	assert.Equal(t, TierRegistered, ParseTier("registered"))
	assert.Equal(t, TierVerified, ParseTier("verified"))
	assert.Equal(t, TierPaid, ParseTier("paid"))
}

func TestResolveTier(t *testing.T) {
	assert.Equal(t, TierRegistered, ResolveTier(false, false))
	assert.Equal(t, TierVerified, ResolveTier(true, false))
	assert.Equal(t, TierPaid, ResolveTier(true, true))
	assert.Equal(t, TierPaid, ResolveTier(false, true))
}
