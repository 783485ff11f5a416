// AngelaMos | 2026
// files.go

package privacy

// AccessLevel labels an uploaded file with the minimum tier required to see
// or download it.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "public"
	AccessRegistered AccessLevel = "registered"
	AccessPaidOnly   AccessLevel = "paid_only"
)

// Permitted sets are nested: public ⊂ verified's set ⊂ paid's set. A
// registered-but-unverified account sees only public files.
var fileAccessTable = map[Tier][]AccessLevel{
	TierAnonymous:  {AccessPublic},
	TierRegistered: {AccessPublic},
	TierVerified:   {AccessPublic, AccessRegistered},
	TierPaid:       {AccessPublic, AccessRegistered, AccessPaidOnly},
}

// PermittedLevels returns the file access levels a tier may see. Unknown
// tiers fail closed to public-only.
func PermittedLevels(tier Tier) []AccessLevel {
	levels, ok := fileAccessTable[tier]
	if !ok {
		return fileAccessTable[TierAnonymous]
	}
	return levels
}

// CanAccessFile is the single download/visibility gate. The owner override
// comes before the tier lookup so a tier downgrade never hides a user's own
// uploads.
func CanAccessFile(tier Tier, level AccessLevel, isOwner bool) bool {
	if isOwner {
		return true
	}

	for _, permitted := range PermittedLevels(tier) {
		if level == permitted {
			return true
		}
	}

	return false
}
