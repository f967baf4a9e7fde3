package repository

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/models"
)

// AccountRepository handles data access operations for customer accounts.
// Notifications are embedded in their account, so notification mutations go
// through Mutate as well.
type AccountRepository struct {
	mu   sync.Mutex
	path string
}

// NewAccountRepository creates a new repository backed by dataDir/accounts.json
func NewAccountRepository(dataDir string) *AccountRepository {
	return &AccountRepository{path: filepath.Join(dataDir, accountsFile)}
}

func (r *AccountRepository) load() []models.Account {
	var list []models.Account
	if !readJSONFile(r.path, &list) || list == nil {
		return []models.Account{}
	}
	return list
}

func (r *AccountRepository) save(list []models.Account) error {
	if err := writeJSONFile(r.path, list); err != nil {
		slog.Error("Failed to write accounts file", "path", r.path, "error", err)
		return errors.NewStorageError("failed to persist accounts", err)
	}
	return nil
}

// FindAll retrieves every account in the collection
func (r *AccountRepository) FindAll() ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(), nil
}

// FindByID retrieves a single account by its id
func (r *AccountRepository) FindByID(id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, acct := range r.load() {
		if acct.ID == id {
			found := acct
			return &found, nil
		}
	}
	return nil, errors.NewNotFoundError("account not found")
}

// Create appends a new account. The precheck runs against the current
// collection under the same lock as the write, so the email-uniqueness check
// cannot race with a concurrent create.
func (r *AccountRepository) Create(acct *models.Account, precheck func(existing []models.Account) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.load()
	if precheck != nil {
		if err := precheck(list); err != nil {
			return err
		}
	}

	list = append(list, *acct)
	return r.save(list)
}

// Mutate applies fn to the account with the given id and persists the
// collection. Returns the updated account.
func (r *AccountRepository) Mutate(id string, fn func(acct *models.Account) error) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.load()
	for i := range list {
		if list[i].ID == id {
			if err := fn(&list[i]); err != nil {
				return nil, err
			}
			if err := r.save(list); err != nil {
				return nil, err
			}
			updated := list[i]
			return &updated, nil
		}
	}
	return nil, errors.NewNotFoundError("account not found")
}

// Delete removes the account with the given id along with its embedded
// notifications (one unit, no separate cascade step)
func (r *AccountRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.load()
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return r.save(list)
		}
	}
	return errors.NewNotFoundError("account not found")
}
