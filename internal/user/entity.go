// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/isowebtech/fundify-api/internal/privacy"
)

type User struct {
	ID            string     `db:"id"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	FullName      string     `db:"full_name"`
	Phone         string     `db:"phone"`
	Role          string     `db:"role"`
	Subscription  string     `db:"subscription"`
	EmailVerified bool       `db:"email_verified"`
	AccountStatus string     `db:"account_status"`
	TokenVersion  int        `db:"token_version"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.AccountStatus == StatusActive && !u.IsDeleted()
}

// Tier derives the viewer tier from account state. Authenticated accounts
// start at registered; email verification and a paid subscription lift it.
func (u *User) Tier() privacy.Tier {
	return privacy.ResolveTier(
		u.EmailVerified,
		u.Subscription == SubscriptionPaid,
	)
}

const (
	RoleEntrepreneur = "entrepreneur"
	RoleInvestor     = "investor"
	RoleAdmin        = "admin"
)

const (
	SubscriptionFree = "free"
	SubscriptionPaid = "paid"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)
