// AngelaMos | 2026
// threadid.go

package message

// ThreadID derives the deterministic conversation key for a participant
// pair: ids sorted so the key is the same no matter who writes first, with a
// listing suffix keeping conversations about different listings apart.
func ThreadID(userA, userB, listingID string) string {
	first, second := userA, userB
	if second < first {
		first, second = second, first
	}

	id := first + "-" + second
	if listingID != "" {
		id += "-listing-" + listingID
	}

	return id
}
