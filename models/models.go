// Package models defines data structures used throughout the application
package models

import "time"

// Appointment statuses. Capacity counting ignores cancelled appointments.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// BusinessConfig holds the business rules the admin tunes: pickup capacity,
// offered time windows and blackout dates. Persisted as a single JSON object.
type BusinessConfig struct {
	BusinessName   string   `json:"businessName"`
	BusinessPhone  string   `json:"businessPhone"`
	CapacityPerDay int      `json:"capacityPerDay"`
	TimeWindows    []string `json:"timeWindows"`
	BlackoutDates  []string `json:"blackoutDates"`
	Timezone       string   `json:"timezone"`
}

// DefaultBusinessConfig returns the configuration written on first use.
func DefaultBusinessConfig() *BusinessConfig {
	return &BusinessConfig{
		BusinessName:   "Used Tire Pickup Co.",
		BusinessPhone:  "(555) 123-4567",
		CapacityPerDay: 15,
		TimeWindows:    []string{"8-11 AM", "11 AM-2 PM", "2-5 PM"},
		BlackoutDates:  []string{},
		Timezone:       "America/New_York",
	}
}

// Appointment represents a scheduled tire pickup
type Appointment struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`
	CompanyName string    `json:"companyName"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Zip         string    `json:"zip"`
	Date        string    `json:"date"`
	TimeWindow  string    `json:"timeWindow"`
	TiresCount  int       `json:"tiresCount"`
	Notes       string    `json:"notes"`
}

// Notification is a dated reminder attached to an account. Recurring
// notifications carry the id of the entry they were generated from.
type Notification struct {
	ID              string    `json:"id"`
	Message         string    `json:"message"`
	Date            string    `json:"date"`
	CreatedAt       time.Time `json:"createdAt"`
	Sent            bool      `json:"sent"`
	Recurring       bool      `json:"recurring"`
	RecurrenceWeeks int       `json:"recurrenceWeeks"`
	ParentID        string    `json:"parentId,omitempty"`
}

// Account represents a repeat customer with pickup history and reminders
type Account struct {
	ID            string         `json:"id"`
	CreatedAt     time.Time      `json:"createdAt"`
	Company       string         `json:"company"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Zip           string         `json:"zip"`
	TotalPickups  int            `json:"totalPickups"`
	LastPickup    *string        `json:"lastPickup"`
	Notifications []Notification `json:"notifications"`
	Notes         string         `json:"notes"`
}

// AppointmentRequest represents data submitted through the public pickup form.
// TiresCount is untyped because the form may post it as a string; it is
// coerced to a non-negative integer.
type AppointmentRequest struct {
	CompanyName string `json:"companyName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Date        string `json:"date"`
	TimeWindow  string `json:"timeWindow"`
	TiresCount  any    `json:"tiresCount"`
	Notes       string `json:"notes"`
}

// AppointmentFilter narrows an appointment listing to a single date or an
// inclusive date range. Zero value means no filtering.
type AppointmentFilter struct {
	Date      string
	StartDate string
	EndDate   string
}

// AccountRequest represents data submitted through the public self-registration form
type AccountRequest struct {
	Company     string `json:"company"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

// AccountFromAppointmentRequest asks for an account derived from an existing appointment
type AccountFromAppointmentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Notes         string `json:"notes"`
}

// NotificationRequest carries a reminder to create or the replacement fields
// for an existing one
type NotificationRequest struct {
	Message         string `json:"message"`
	Date            string `json:"date"`
	Recurring       bool   `json:"recurring"`
	RecurrenceWeeks int    `json:"recurrenceWeeks"`
}

// LoginRequest carries the shared admin password
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
