// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/isowebtech/fundify-api/internal/auth"
	"github.com/isowebtech/fundify-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	params auth.CreateUserParams,
) (*auth.UserInfo, error) {
	role := params.Role
	if role != RoleEntrepreneur && role != RoleInvestor {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:            uuid.New().String(),
		Email:         strings.ToLower(params.Email),
		PasswordHash:  params.PasswordHash,
		FullName:      params.FullName,
		Phone:         params.Phone,
		Role:          role,
		Subscription:  SubscriptionFree,
		AccountStatus: StatusActive,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateAccountStatus(
	ctx context.Context,
	id, status string,
) (*User, error) {
	if status != StatusActive && status != StatusSuspended {
		return nil, fmt.Errorf(
			"update status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.AccountStatus = status

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateSubscription flips the paid flag that feeds tier resolution. The
// actual billing flow lives outside this service.
func (s *Service) UpdateSubscription(
	ctx context.Context,
	id, subscription string,
) (*User, error) {
	if subscription != SubscriptionFree && subscription != SubscriptionPaid {
		return nil, fmt.Errorf(
			"update subscription: invalid subscription %q: %w",
			subscription,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Subscription = subscription

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Existing access tokens keep their old tier until they expire; the
	// version bump forces a refresh on the next request.
	if err := s.repo.IncrementTokenVersion(ctx, id); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyEmail flips the verified flag that lifts the account to verified
// tier. Token delivery happens at the notification boundary; the version
// bump makes the tier change visible on the next token refresh.
func (s *Service) VerifyEmail(ctx context.Context, id string) error {
	if err := s.repo.MarkEmailVerified(ctx, id); err != nil {
		return err
	}

	return s.repo.IncrementTokenVersion(ctx, id)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	return s.UpdateUser(ctx, userID, req)
}

func (s *Service) DeleteMe(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete me: %w", core.ErrUnauthorized)
	}

	return s.repo.SoftDelete(ctx, userID)
}

// ExistsActive reports whether the account exists, is active and not
// deleted. The messaging service uses it to validate participants.
func (s *Service) ExistsActive(
	ctx context.Context,
	userID string,
) (bool, error) {
	return s.repo.ExistsActive(ctx, userID)
}

func (s *Service) DisplayName(
	ctx context.Context,
	userID string,
) (string, error) {
	return s.repo.DisplayName(ctx, userID)
}

// GetContact returns the minimal identity needed for message notifications.
func (s *Service) GetContact(
	ctx context.Context,
	userID string,
) (name, email string, err error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	return user.FullName, user.Email, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Tier:         u.Tier().String(),
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
