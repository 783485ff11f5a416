// AngelaMos | 2026
// tier.go

package privacy

// Tier is a viewer's access level. Higher tiers are strict supersets of the
// visibility rights below them.
type Tier int

const (
	TierAnonymous Tier = iota
	TierRegistered
	TierVerified
	TierPaid
)

const (
	tierAnonymousName  = "anonymous"
	tierRegisteredName = "registered"
	tierVerifiedName   = "verified"
	tierPaidName       = "paid"
)

func (t Tier) String() string {
	switch t {
	case TierAnonymous:
		return tierAnonymousName
	case TierRegistered:
		return tierRegisteredName
	case TierVerified:
		return tierVerifiedName
	case TierPaid:
		return tierPaidName
	default:
		return tierAnonymousName
	}
}

// ParseTier fails closed: anything unrecognized resolves to the most
// restrictive tier so an unknown value can never widen disclosure.
func ParseTier(s string) Tier {
	switch s {
	case tierRegisteredName:
		return TierRegistered
	case tierVerifiedName:
		return TierVerified
	case tierPaidName:
		return TierPaid
	default:
		return TierAnonymous
	}
}

// Viewer is the per-request access context. A zero Viewer is an anonymous
// visitor.
type Viewer struct {
	UserID string
	Tier   Tier
}

func (v Viewer) IsAnonymous() bool {
	return v.UserID == ""
}

// ResolveTier derives the viewer tier from account state at token-issue
// time: any authenticated account is at least registered, email verification
// lifts it to verified, and a paid subscription to paid.
func ResolveTier(emailVerified, paidSubscriber bool) Tier {
	switch {
	case paidSubscriber:
		return TierPaid
	case emailVerified:
		return TierVerified
	default:
		return TierRegistered
	}
}
