// AngelaMos | 2026
// disclosure.go

package privacy

// FieldSet describes which tier-gated listing fields are exposed to a viewer
// and whether person/company names must be masked. Base public fields (title,
// pitch, industry, stage, location, funding ask, counters) are always
// included and are not represented here.
type FieldSet struct {
	// MaskNames requires the masking function on founder and company names.
	MaskNames bool
	// FounderContact exposes the founder's email and phone.
	FounderContact bool
	// CompanyWebsite exposes the company's website URL.
	CompanyWebsite bool
	// CompanyDescription exposes the extended company description.
	CompanyDescription bool
}

var disclosureTable = map[Tier]FieldSet{
	TierAnonymous: {
		MaskNames: true,
	},
	TierRegistered: {
		FounderContact: true,
		CompanyWebsite: true,
	},
	TierVerified: {
		FounderContact: true,
		CompanyWebsite: true,
	},
	TierPaid: {
		FounderContact:     true,
		CompanyWebsite:     true,
		CompanyDescription: true,
	},
}

// FieldsFor returns the field set for a tier. Unknown tiers fail closed to
// the anonymous set; withholding is always the safe direction.
func FieldsFor(tier Tier) FieldSet {
	fs, ok := disclosureTable[tier]
	if !ok {
		return disclosureTable[TierAnonymous]
	}
	return fs
}

// OwnerFields is the maximal field set, used when the viewer owns the
// listing regardless of their tier. Names are never masked for the owner.
func OwnerFields() FieldSet {
	fs := disclosureTable[TierPaid]
	fs.MaskNames = false
	return fs
}
