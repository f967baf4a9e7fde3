package service

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/models"
	"github.com/David-Van-Dyne/pickup-scheduler/pkg/validation"
)

// AccountService handles customer account business logic
type AccountService struct {
	repo     AccountRepositoryInterface
	apptRepo AppointmentRepositoryInterface
}

// NewAccountService creates a new account service
func NewAccountService(repo AccountRepositoryInterface, apptRepo AppointmentRepositoryInterface) *AccountService {
	return &AccountService{
		repo:     repo,
		apptRepo: apptRepo,
	}
}

// CreateFromAppointment derives an account from an existing appointment,
// copying its contact fields and seeding the pickup history from it
func (s *AccountService) CreateFromAppointment(appointmentID, notes string) (*models.Account, error) {
	appt, err := s.apptRepo.FindByID(appointmentID)
	if err != nil {
		return nil, err
	}

	lastPickup := appt.Date
	acct := &models.Account{
		ID:            "acc_" + uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Company:       appt.CompanyName,
		Name:          appt.Name,
		Email:         appt.Email,
		Phone:         appt.Phone,
		Address:       appt.Address,
		City:          appt.City,
		State:         appt.State,
		Zip:           appt.Zip,
		TotalPickups:  1,
		LastPickup:    &lastPickup,
		Notifications: []models.Notification{},
		Notes:         notes,
	}

	if err := s.create(acct); err != nil {
		return nil, err
	}

	slog.Info("Account created from appointment", "accountId", acct.ID, "appointmentId", appointmentID)
	return acct, nil
}

// CreatePublic registers an account submitted through the public form
func (s *AccountService) CreatePublic(req *models.AccountRequest) (*models.Account, error) {
	if err := validateAccountRequest(req); err != nil {
		return nil, err
	}

	acct := &models.Account{
		ID:            "acc_" + uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Company:       req.Company,
		Name:          req.ContactName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		TotalPickups:  0,
		LastPickup:    nil,
		Notifications: []models.Notification{},
	}

	if err := s.create(acct); err != nil {
		return nil, err
	}

	slog.Info("Account created from public form", "accountId", acct.ID)
	return acct, nil
}

// create persists the account, rejecting a duplicate non-empty email under
// the collection's create lock
func (s *AccountService) create(acct *models.Account) error {
	return s.repo.Create(acct, func(existing []models.Account) error {
		if acct.Email == "" {
			return nil
		}
		for _, other := range existing {
			if strings.EqualFold(other.Email, acct.Email) {
				return errors.NewAlreadyExistsError("an account with this email already exists")
			}
		}
		return nil
	})
}

// List returns all customer accounts
func (s *AccountService) List() ([]models.Account, error) {
	return s.repo.FindAll()
}

// Get returns a single account by id
func (s *AccountService) Get(id string) (*models.Account, error) {
	return s.repo.FindByID(id)
}

// Patch applies allow-listed contact fields to an account. Email edits are
// not re-checked for uniqueness; the constraint holds at creation only.
func (s *AccountService) Patch(id string, fields map[string]any) (*models.Account, error) {
	return s.repo.Mutate(id, func(acct *models.Account) error {
		applyAccountFields(acct, fields)
		return nil
	})
}

// Delete removes an account and its embedded notifications permanently
func (s *AccountService) Delete(id string) error {
	return s.repo.Delete(id)
}

func validateAccountRequest(req *models.AccountRequest) error {
	if !validation.IsNotEmpty(req.Company) ||
		!validation.IsNotEmpty(req.ContactName) ||
		!validation.IsNotEmpty(req.Phone) ||
		!validation.IsNotEmpty(req.Address) ||
		!validation.IsNotEmpty(req.City) ||
		!validation.IsNotEmpty(req.State) ||
		!validation.IsNotEmpty(req.Zip) {
		return errors.NewValidationError("missing required fields")
	}
	if req.Email != "" && !validation.IsValidEmail(req.Email) {
		return errors.NewValidationError("invalid email address")
	}
	return nil
}

func applyAccountFields(acct *models.Account, fields map[string]any) {
	set := func(target *string, key string) {
		if v, ok := fields[key].(string); ok {
			*target = v
		}
	}
	set(&acct.Company, "company")
	set(&acct.Name, "name")
	set(&acct.Email, "email")
	set(&acct.Phone, "phone")
	set(&acct.Address, "address")
	set(&acct.City, "city")
	set(&acct.State, "state")
	set(&acct.Zip, "zip")
	set(&acct.Notes, "notes")
}
