package category

import (
	"log/slog"

	categoryDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	List(contextFilter string) ([]*categoryDatamodel.Category, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	Create(c *categoryDatamodel.Category) error
	Update(c *categoryDatamodel.Category) error
	Delete(id int64) error
	UpsertByName(c *categoryDatamodel.Category) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns categories ordered by name. When a context filter is given,
// BOTH-context rows are always included alongside it.
func (s *Service) List(contextFilter string) ([]*Category, error) {
	rows, err := s.repo.List(contextFilter)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Create(dto CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &categoryDatamodel.Category{
		Name:    dto.Name,
		Context: dto.Context,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("category created", "category_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

// Update is a full replace of name and context.
func (s *Service) Update(id int64, dto CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	row.Name = dto.Name
	row.Context = dto.Context
	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}

	return FromDataModel(row), nil
}

// Delete removes the row and returns it so clients can show what was lost.
func (s *Service) Delete(id int64) (*Category, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return nil, err
	}

	return FromDataModel(row), nil
}

// Seed upserts the default category list by name. Idempotent.
func (s *Service) Seed() (int, error) {
	for i := range DefaultCategories {
		row := ToDataModel(&DefaultCategories[i])
		row.ID = 0
		if err := s.repo.UpsertByName(row); err != nil {
			s.logger.Error("failed to seed category", "error", err, "name", row.Name)
			return 0, err
		}
	}

	s.logger.Info("seeded default categories", "count", len(DefaultCategories))
	return len(DefaultCategories), nil
}
