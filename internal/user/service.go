package user

import (
	"log/slog"

	userDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/user"
)

// Repository is the full data access surface for user rows. The auth
// package consumes a narrower view of the same implementation.
type Repository interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByShareCode(code string) (*userDatamodel.User, error)
	ShareCodeExists(code string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByShareCode resolves a share code to the owning user's public summary.
func (s *Service) GetByShareCode(code string) (*User, error) {
	u, err := s.repo.GetByShareCode(code)
	if err != nil {
		return nil, err
	}
	return FromDataModel(u), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(u), nil
}
