package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

// UserUseCase manages accounts from the back office.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// List returns all registered accounts.
func (u *UserUseCase) List(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}

// SetRole changes account role. Admins cannot demote themselves.
func (u *UserUseCase) SetRole(ctx context.Context, actorID, userID int64, role model.Role) error {
	if !role.Valid() {
		return domainErrors.ErrInvalidRole
	}
	if actorID == userID && role != model.RoleAdmin {
		return domainErrors.ErrForbidden
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return u.users.UpdateRole(ctx, userID, role)
}
