package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/huskytracks/huskytracks-api/internal/models"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
)

type seedUser struct {
	Email    string
	Password string
	Role     models.UserRole
	Location string
}

// Fixture roster for demos and local development. Location is kept only on
// supervisor accounts, same as the create-user flow.
var seedRoster = []seedUser{
	{Email: "alice@northeastern.edu", Password: "alice123", Role: models.RoleStudent},
	{Email: "bob@northeastern.edu", Password: "bob123", Role: models.RoleStudent},
	{Email: "charlie@northeastern.edu", Password: "charlie123", Role: models.RoleStudent},
	{Email: "admin@northeastern.edu", Password: "admin123", Role: models.RoleAdmin},
	{Email: "curry-admin@northeastern.edu", Password: "curry123", Role: models.RoleAdmin},
	{Email: "isec-admin@northeastern.edu", Password: "isec123", Role: models.RoleAdmin},
	{Email: "supervisor@northeastern.edu", Password: "super123", Role: models.RoleSupervisor, Location: "Snell Library"},
	{Email: "curry-supervisor@northeastern.edu", Password: "curry123", Role: models.RoleSupervisor, Location: "Curry Student Center"},
	{Email: "isec-supervisor@northeastern.edu", Password: "isec123", Role: models.RoleSupervisor, Location: "ISEC"},
}

// SeedService provisions the fixture accounts. Safe to call repeatedly:
// existing accounts are left untouched.
type SeedService struct {
	repo   userRepository
	logger *zap.Logger
}

// NewSeedService creates a SeedService.
func NewSeedService(repo userRepository, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{repo: repo, logger: logger}
}

// Register creates every missing fixture account and returns how many were
// created on this call.
func (s *SeedService) Register(ctx context.Context) (int, error) {
	created := 0
	for _, fixture := range seedRoster {
		_, err := s.repo.FindByEmail(ctx, fixture.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return created, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check fixture account")
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(fixture.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash fixture password")
		}

		user := &models.User{
			ID:           uuid.NewString(),
			Email:        strings.ToLower(fixture.Email),
			PasswordHash: string(passwordHash),
			Role:         fixture.Role,
			Location:     fixture.Location,
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return created, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fixture account")
		}
		created++
		s.logger.Info("fixture account created", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	}
	return created, nil
}
