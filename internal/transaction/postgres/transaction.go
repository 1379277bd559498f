package postgres

import (
	"errors"

	txDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-dashboard/internal/transaction"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.Repository {
	return &TransactionRepository{db: db}
}

// Create inserts the row and its tag links in one database transaction.
// Tags are upserted by name so concurrent creates sharing a tag both land
// on the same row.
func (r *TransactionRepository) Create(row *txDatamodel.Transaction, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := upsertTags(tx, tagNames)
		if err != nil {
			return err
		}
		row.Tags = tags
		return tx.Create(row).Error
	})
}

func (r *TransactionRepository) GetByID(id int64) (*txDatamodel.Transaction, error) {
	var row txDatamodel.Transaction
	err := r.db.Preload("Tags").Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *TransactionRepository) List(userID int64, q transaction.Query) ([]*txDatamodel.Transaction, error) {
	query := r.db.Preload("Tags").Where("user_id = ?", userID)

	if q.DateFrom != nil {
		query = query.Where("date >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("date < ?", *q.DateTo)
	}
	if q.Context != "" {
		query = query.Where("context = ?", q.Context)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}

	var rows []*txDatamodel.Transaction
	err := query.Order("date DESC").Find(&rows).Error
	return rows, err
}

// Update saves the row and replaces its tag link set atomically. Tag rows
// themselves are never deleted, only unlinked.
func (r *TransactionRepository) Update(row *txDatamodel.Transaction, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := upsertTags(tx, tagNames)
		if err != nil {
			return err
		}

		row.Tags = nil
		if err := tx.Save(row).Error; err != nil {
			return err
		}

		if err := tx.Model(row).Association("Tags").Replace(tags); err != nil {
			return err
		}
		row.Tags = tags
		return nil
	})
}

func (r *TransactionRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		row := txDatamodel.Transaction{ID: id}
		if err := tx.Model(&row).Association("Tags").Clear(); err != nil {
			return err
		}

		res := tx.Delete(&txDatamodel.Transaction{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return transaction.ErrNotFound
		}
		return nil
	})
}

func upsertTags(tx *gorm.DB, names []string) ([]*txDatamodel.Tag, error) {
	tags := make([]*txDatamodel.Tag, 0, len(names))
	for _, name := range names {
		tag := &txDatamodel.Tag{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
