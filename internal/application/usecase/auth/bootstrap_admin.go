package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// BootstrapAdminInput carries the seed credentials, normally read from env.
type BootstrapAdminInput struct {
	Email    string
	Name     string
	Password string
}

// BootstrapAdminUseCase seeds the first user at startup. There is no open
// registration; when the users table already has rows this is a no-op.
type BootstrapAdminUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	logger          *slog.Logger
}

// NewBootstrapAdminUseCase creates a new BootstrapAdminUseCase instance.
func NewBootstrapAdminUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	logger *slog.Logger,
) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		logger:          logger,
	}
}

// Execute seeds the admin user when the table is empty. Returns the created
// user, or nil when nothing was seeded.
func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, input BootstrapAdminInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, nil
	}

	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	hash, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing bootstrap password: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Admin"
	}

	user := entity.NewUser(email, name, hash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating bootstrap user: %w", err)
	}

	uc.logger.InfoContext(ctx, "bootstrap admin created", slog.String("email", email))
	return user, nil
}
