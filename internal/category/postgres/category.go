package postgres

import (
	"errors"

	"github.com/frahmantamala/finance-dashboard/internal/category"
	categoryDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/category"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

// List returns all rows, or BOTH-context rows unioned with the requested
// context when a filter is given. Ordered by name.
func (r *CategoryRepository) List(contextFilter string) ([]*categoryDatamodel.Category, error) {
	var rows []*categoryDatamodel.Category
	q := r.db.Order("name ASC")
	if contextFilter != "" {
		q = q.Where("context IN ?", []string{categoryDatamodel.ContextBoth, contextFilter})
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	var row categoryDatamodel.Category
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *CategoryRepository) Create(c *categoryDatamodel.Category) error {
	err := r.db.Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return category.ErrDuplicateName
	}
	return err
}

func (r *CategoryRepository) Update(c *categoryDatamodel.Category) error {
	err := r.db.Save(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return category.ErrDuplicateName
	}
	return err
}

func (r *CategoryRepository) Delete(id int64) error {
	res := r.db.Delete(&categoryDatamodel.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return category.ErrNotFound
	}
	return nil
}

// UpsertByName creates the row if the name is free and leaves existing rows
// untouched, mirroring an upsert with an empty update set.
func (r *CategoryRepository) UpsertByName(c *categoryDatamodel.Category) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(c).Error
}
