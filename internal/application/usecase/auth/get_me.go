package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// GetMeUseCase resolves the authenticated user's profile.
type GetMeUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetMeUseCase creates a new GetMeUseCase instance.
func NewGetMeUseCase(userRepo adapter.UserRepository) *GetMeUseCase {
	return &GetMeUseCase{userRepo: userRepo}
}

// Execute returns the user for the given ID.
func (uc *GetMeUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"usuário não encontrado",
			domainerror.ErrUserNotFound,
		)
	}
	return user, nil
}
