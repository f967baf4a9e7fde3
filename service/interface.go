package service

import (
	"github.com/David-Van-Dyne/pickup-scheduler/models"
)

// ConfigServiceInterface exposes the business configuration
type ConfigServiceInterface interface {
	Get() (*models.BusinessConfig, error)
}

// AppointmentServiceInterface defines the interface for appointment operations
type AppointmentServiceInterface interface {
	Create(req *models.AppointmentRequest) (*models.Appointment, error)
	List(filter models.AppointmentFilter) ([]models.Appointment, error)
	Patch(id string, fields map[string]any) (*models.Appointment, error)
	Delete(id string) error
}

// AccountServiceInterface defines the interface for customer account operations
type AccountServiceInterface interface {
	CreateFromAppointment(appointmentID, notes string) (*models.Account, error)
	CreatePublic(req *models.AccountRequest) (*models.Account, error)
	List() ([]models.Account, error)
	Get(id string) (*models.Account, error)
	Patch(id string, fields map[string]any) (*models.Account, error)
	Delete(id string) error
}

// NotificationServiceInterface defines the interface for account reminder operations
type NotificationServiceInterface interface {
	Add(accountID string, req *models.NotificationRequest) (*models.Notification, error)
	Update(accountID, notificationID string, req *models.NotificationRequest) (*models.Notification, error)
	Delete(accountID, notificationID string) error
}

// AppointmentRepositoryInterface defines the interface for appointment data operations
type AppointmentRepositoryInterface interface {
	FindAll() ([]models.Appointment, error)
	FindByID(id string) (*models.Appointment, error)
	Create(appt *models.Appointment, precheck func(existing []models.Appointment) error) error
	Mutate(id string, fn func(appt *models.Appointment) error) (*models.Appointment, error)
	Delete(id string) error
}

// AccountRepositoryInterface defines the interface for account data operations
type AccountRepositoryInterface interface {
	FindAll() ([]models.Account, error)
	FindByID(id string) (*models.Account, error)
	Create(acct *models.Account, precheck func(existing []models.Account) error) error
	Mutate(id string, fn func(acct *models.Account) error) (*models.Account, error)
	Delete(id string) error
}

// ConfigRepositoryInterface defines the interface for business config persistence
type ConfigRepositoryInterface interface {
	Load() (*models.BusinessConfig, error)
	Save(cfg *models.BusinessConfig) error
}

// Ensure implementations satisfy interfaces
var _ ConfigServiceInterface = (*ConfigService)(nil)
var _ AppointmentServiceInterface = (*AppointmentService)(nil)
var _ AccountServiceInterface = (*AccountService)(nil)
var _ NotificationServiceInterface = (*NotificationService)(nil)
