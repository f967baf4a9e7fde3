package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/metrics"
	"github.com/David-Van-Dyne/pickup-scheduler/models"
	"github.com/David-Van-Dyne/pickup-scheduler/pkg/validation"
)

// AppointmentService handles pickup appointment business logic
type AppointmentService struct {
	repo       AppointmentRepositoryInterface
	configRepo ConfigRepositoryInterface
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo AppointmentRepositoryInterface, configRepo ConfigRepositoryInterface) *AppointmentService {
	return &AppointmentService{
		repo:       repo,
		configRepo: configRepo,
	}
}

// Create validates a public pickup request against the business rules and
// persists it. The capacity check runs inside the repository's create lock so
// a burst of submissions cannot overbook a date.
func (s *AppointmentService) Create(req *models.AppointmentRequest) (*models.Appointment, error) {
	if err := validateAppointmentRequest(req); err != nil {
		metrics.RecordRejection(metrics.ReasonValidation)
		return nil, err
	}

	cfg, err := s.configRepo.Load()
	if err != nil {
		return nil, err
	}

	if req.TimeWindow != "" && !containsString(cfg.TimeWindows, req.TimeWindow) {
		metrics.RecordRejection(metrics.ReasonTimeWindow)
		return nil, errors.NewValidationError("invalid time window")
	}

	if containsString(cfg.BlackoutDates, req.Date) {
		metrics.RecordRejection(metrics.ReasonBlackout)
		return nil, errors.NewDateUnavailableError("selected date is unavailable")
	}

	appt := &models.Appointment{
		ID:          "apt_" + uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Status:      models.StatusScheduled,
		CompanyName: req.CompanyName,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Date:        req.Date,
		TimeWindow:  req.TimeWindow,
		TiresCount:  validation.CoerceCount(req.TiresCount),
		Notes:       req.Notes,
	}

	err = s.repo.Create(appt, func(existing []models.Appointment) error {
		if countActiveOnDate(existing, req.Date) >= cfg.CapacityPerDay {
			metrics.RecordRejection(metrics.ReasonCapacity)
			return errors.NewCapacityError("no availability on selected date")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().AppointmentsCreated.Inc()
	slog.Info("Appointment created", "id", appt.ID, "date", appt.Date, "timeWindow", appt.TimeWindow)
	return appt, nil
}

// List returns appointments, optionally narrowed to one date or an inclusive
// date range. Malformed filter values are ignored, matching the behavior of
// an unfiltered listing.
func (s *AppointmentService) List(filter models.AppointmentFilter) ([]models.Appointment, error) {
	appts, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	if validation.IsValidDate(filter.Date) {
		filtered := make([]models.Appointment, 0)
		for _, appt := range appts {
			if appt.Date == filter.Date {
				filtered = append(filtered, appt)
			}
		}
		return filtered, nil
	}

	if validation.IsValidDate(filter.StartDate) && validation.IsValidDate(filter.EndDate) {
		filtered := make([]models.Appointment, 0)
		for _, appt := range appts {
			if appt.Date >= filter.StartDate && appt.Date <= filter.EndDate {
				filtered = append(filtered, appt)
			}
		}
		return filtered, nil
	}

	return appts, nil
}

// Patch applies allow-listed fields to an appointment. Date, time window and
// capacity are not re-validated here: edits are an admin override, and the
// stored record keeps whatever the admin set.
func (s *AppointmentService) Patch(id string, fields map[string]any) (*models.Appointment, error) {
	return s.repo.Mutate(id, func(appt *models.Appointment) error {
		applyAppointmentFields(appt, fields)
		return nil
	})
}

// Delete removes an appointment permanently
func (s *AppointmentService) Delete(id string) error {
	return s.repo.Delete(id)
}

func validateAppointmentRequest(req *models.AppointmentRequest) error {
	hasContact := validation.IsNotEmpty(req.Email) || validation.IsNotEmpty(req.Phone)
	if !validation.IsNotEmpty(req.CompanyName) ||
		!validation.IsNotEmpty(req.Name) ||
		!hasContact ||
		!validation.IsNotEmpty(req.Address) ||
		!validation.IsNotEmpty(req.Zip) {
		return errors.NewValidationError("missing required fields")
	}
	if !validation.IsValidDate(req.Date) {
		return errors.NewValidationError("date must be formatted YYYY-MM-DD")
	}
	return nil
}

func applyAppointmentFields(appt *models.Appointment, fields map[string]any) {
	set := func(target *string, key string) {
		if v, ok := fields[key].(string); ok {
			*target = v
		}
	}
	set(&appt.Status, "status")
	set(&appt.Notes, "notes")
	set(&appt.CompanyName, "companyName")
	set(&appt.Name, "name")
	set(&appt.Email, "email")
	set(&appt.Phone, "phone")
	set(&appt.Address, "address")
	set(&appt.City, "city")
	set(&appt.State, "state")
	set(&appt.Zip, "zip")
	set(&appt.Date, "date")
	set(&appt.TimeWindow, "timeWindow")

	if v, ok := fields["tiresCount"]; ok {
		appt.TiresCount = validation.CoerceCount(v)
	}
}

// countActiveOnDate counts non-cancelled appointments on a date; cancelled
// slots are free again.
func countActiveOnDate(appts []models.Appointment, date string) int {
	count := 0
	for _, appt := range appts {
		if appt.Date == date && appt.Status != models.StatusCancelled {
			count++
		}
	}
	return count
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
