package transaction

import (
	"errors"
	"log/slog"
	"time"

	txDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/transaction"
	userDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-dashboard/internal/user"
)

// Repository is the data access surface for transactions. Create and Update
// run the tag upsert and link replacement inside one database transaction.
type Repository interface {
	Create(row *txDatamodel.Transaction, tagNames []string) error
	GetByID(id int64) (*txDatamodel.Transaction, error)
	List(userID int64, q Query) ([]*txDatamodel.Transaction, error)
	Update(row *txDatamodel.Transaction, tagNames []string) error
	Delete(id int64) error
}

// Query is the resolved filter set handed to the repository.
type Query struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Context  string
	Type     string
}

// ShareCodeLookup resolves share codes to their owning user.
type ShareCodeLookup interface {
	GetByShareCode(code string) (*userDatamodel.User, error)
}

// OwnerVia records which branch resolved the listing target.
type OwnerVia string

const (
	ViaSession   OwnerVia = "session"
	ViaShareCode OwnerVia = "share_code"
)

// ResolvedOwner is the explicit result of the two-branch owner resolution:
// share code wins when supplied, the session otherwise.
type ResolvedOwner struct {
	Via    OwnerVia
	UserID int64
}

type Service struct {
	repo   Repository
	users  ShareCodeLookup
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, users ShareCodeLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// ResolveOwner picks the listing target. A supplied share code is resolved
// first and a bad one fails even when a session exists; without one the
// session user is required.
func (s *Service) ResolveOwner(sessionUser *user.User, shareCode string) (ResolvedOwner, error) {
	if shareCode != "" {
		owner, err := s.users.GetByShareCode(shareCode)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ResolvedOwner{}, ErrShareCodeInvalid
			}
			return ResolvedOwner{}, err
		}
		return ResolvedOwner{Via: ViaShareCode, UserID: owner.ID}, nil
	}

	if sessionUser != nil {
		return ResolvedOwner{Via: ViaSession, UserID: sessionUser.ID}, nil
	}

	return ResolvedOwner{}, ErrNotAuthenticated
}

// List returns the owner's transactions, date descending. The month window
// applies only when month or year is supplied; the missing half defaults to
// the current one.
func (s *Service) List(owner ResolvedOwner, f ListFilters) ([]*Transaction, error) {
	q := Query{
		Context: f.Context,
		Type:    f.Type,
	}

	if f.Month != 0 || f.Year != 0 {
		now := s.now()
		month := f.Month
		if month == 0 {
			month = int(now.Month())
		}
		year := f.Year
		if year == 0 {
			year = now.Year()
		}

		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)
		q.DateFrom = &from
		q.DateTo = &to
	}

	rows, err := s.repo.List(owner.UserID, q)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err, "user_id", owner.UserID, "via", owner.Via)
		return nil, err
	}

	return FromDataModelSlice(rows), nil
}

// Get fetches by id. Rows are readable without a session; a session that
// does not match the owner is rejected.
func (s *Service) Get(id int64, sessionUser *user.User) (*Transaction, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if sessionUser != nil && row.UserID != sessionUser.ID {
		s.logger.Warn("transaction access denied", "transaction_id", id, "user_id", sessionUser.ID, "owner_id", row.UserID)
		return nil, ErrNotOwner
	}

	return FromDataModel(row), nil
}

func (s *Service) Create(userID int64, dto TransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("transaction validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	row := &txDatamodel.Transaction{
		Label:       dto.Label,
		Type:        dto.Type,
		Context:     dto.Context,
		Category:    dto.Category,
		Amount:      dto.Amount.Decimal,
		Date:        dto.Date.Time,
		IsRecurring: dto.Recurring(),
		Status:      dto.NormalizedStatus(),
		UserID:      userID,
	}

	if err := s.repo.Create(row, dto.NormalizedTags()); err != nil {
		s.logger.Error("failed to create transaction", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("transaction created",
		"transaction_id", row.ID,
		"user_id", userID,
		"type", row.Type,
		"amount", row.Amount.String())

	return FromDataModel(row), nil
}

// Update replaces all fields and the tag link set. Only the owner may
// update.
func (s *Service) Update(id, userID int64, dto TransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("transaction validation failed", "error", err, "transaction_id", id)
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row.UserID != userID {
		s.logger.Warn("transaction update denied", "transaction_id", id, "user_id", userID, "owner_id", row.UserID)
		return nil, ErrNotOwner
	}

	row.Label = dto.Label
	row.Type = dto.Type
	row.Context = dto.Context
	row.Category = dto.Category
	row.Amount = dto.Amount.Decimal
	row.Date = dto.Date.Time
	row.IsRecurring = dto.Recurring()
	row.Status = dto.NormalizedStatus()

	if err := s.repo.Update(row, dto.NormalizedTags()); err != nil {
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", id)
		return nil, err
	}

	return FromDataModel(row), nil
}

// Delete removes the row and returns it. Only the owner may delete.
func (s *Service) Delete(id, userID int64) (*Transaction, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row.UserID != userID {
		s.logger.Warn("transaction delete denied", "transaction_id", id, "user_id", userID, "owner_id", row.UserID)
		return nil, ErrNotOwner
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete transaction", "error", err, "transaction_id", id)
		return nil, err
	}

	s.logger.Info("transaction deleted", "transaction_id", id, "user_id", userID)
	return FromDataModel(row), nil
}
