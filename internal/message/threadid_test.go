// AngelaMos | 2026
// threadid_test.go

package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadIDSymmetric(t *testing.T) {
	a := ThreadID("user-b", "user-a", "")
	b := ThreadID("user-a", "user-b", "")

	assert.Equal(t, a, b)
	assert.Equal(t, "user-a-user-b", a)
}

func TestThreadIDListingScoped(t *testing.T) {
	plain := ThreadID("user-a", "user-b", "")
	scoped := ThreadID("user-a", "user-b", "lst-1")
	other := ThreadID("user-a", "user-b", "lst-2")

	assert.Equal(t, "user-a-user-b-listing-lst-1", scoped)
	assert.NotEqual(t, plain, scoped)
	assert.NotEqual(t, scoped, other)
}

func TestThreadIDSymmetricWithListing(t *testing.T) {
	assert.Equal(t,
		ThreadID("zed", "ada", "lst-9"),
		ThreadID("ada", "zed", "lst-9"),
	)
}
