package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/models"
	"github.com/David-Van-Dyne/pickup-scheduler/repository"
)

func newAppointmentFixture(t *testing.T) (*AppointmentService, *repository.ConfigRepository) {
	t.Helper()
	dir := t.TempDir()
	apptRepo := repository.NewAppointmentRepository(dir)
	configRepo := repository.NewConfigRepository(dir)
	return NewAppointmentService(apptRepo, configRepo), configRepo
}

func validRequest(date string) *models.AppointmentRequest {
	return &models.AppointmentRequest{
		CompanyName: "Acme Tires",
		Name:        "Jordan Smith",
		Email:       "jordan@acme.test",
		Phone:       "555-0100",
		Address:     "1 Main St",
		City:        "Springfield",
		State:       "IL",
		Zip:         "62701",
		Date:        date,
		TimeWindow:  "8-11 AM",
		TiresCount:  float64(8),
	}
}

func requireErrorType(t *testing.T, err error, expected apperrors.ErrorType) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expected, appErr.Type)
}

func TestAppointmentService_Create(t *testing.T) {
	svc, _ := newAppointmentFixture(t)

	appt, err := svc.Create(validRequest("2025-06-02"))

	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, 8, appt.TiresCount)
	assert.False(t, appt.CreatedAt.IsZero())

	listed, err := svc.List(models.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, appt.ID, listed[0].ID)
}

func TestAppointmentService_CreateRequiredFields(t *testing.T) {
	svc, _ := newAppointmentFixture(t)

	tests := []struct {
		name   string
		mutate func(req *models.AppointmentRequest)
	}{
		{"MissingCompanyName", func(r *models.AppointmentRequest) { r.CompanyName = "" }},
		{"MissingName", func(r *models.AppointmentRequest) { r.Name = "" }},
		{"MissingEmailAndPhone", func(r *models.AppointmentRequest) { r.Email = ""; r.Phone = "" }},
		{"MissingAddress", func(r *models.AppointmentRequest) { r.Address = "" }},
		{"MissingZip", func(r *models.AppointmentRequest) { r.Zip = "" }},
		{"MissingDate", func(r *models.AppointmentRequest) { r.Date = "" }},
		{"MalformedDate", func(r *models.AppointmentRequest) { r.Date = "06/02/2025" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("2025-06-02")
			tt.mutate(req)

			_, err := svc.Create(req)
			requireErrorType(t, err, apperrors.ValidationError)
		})
	}
}

func TestAppointmentService_CreateEmailOrPhoneSuffices(t *testing.T) {
	svc, _ := newAppointmentFixture(t)

	emailOnly := validRequest("2025-06-02")
	emailOnly.Phone = ""
	_, err := svc.Create(emailOnly)
	assert.NoError(t, err)

	phoneOnly := validRequest("2025-06-03")
	phoneOnly.Email = ""
	_, err = svc.Create(phoneOnly)
	assert.NoError(t, err)
}

func TestAppointmentService_CreateTimeWindow(t *testing.T) {
	svc, _ := newAppointmentFixture(t)

	t.Run("UnknownWindowRejected", func(t *testing.T) {
		req := validRequest("2025-06-02")
		req.TimeWindow = "6-9 PM"

		_, err := svc.Create(req)
		requireErrorType(t, err, apperrors.ValidationError)
	})

	t.Run("EmptyWindowAccepted", func(t *testing.T) {
		req := validRequest("2025-06-02")
		req.TimeWindow = ""

		_, err := svc.Create(req)
		assert.NoError(t, err)
	})
}

func TestAppointmentService_CreateBlackoutDate(t *testing.T) {
	svc, configRepo := newAppointmentFixture(t)

	cfg, err := configRepo.Load()
	require.NoError(t, err)
	cfg.BlackoutDates = []string{"2025-07-04"}
	require.NoError(t, configRepo.Save(cfg))

	_, err = svc.Create(validRequest("2025-07-04"))
	requireErrorType(t, err, apperrors.DateUnavailableError)
}

func TestAppointmentService_CreateCapacity(t *testing.T) {
	svc, configRepo := newAppointmentFixture(t)

	cfg, err := configRepo.Load()
	require.NoError(t, err)
	cfg.CapacityPerDay = 2
	require.NoError(t, configRepo.Save(cfg))

	first, err := svc.Create(validRequest("2025-06-02"))
	require.NoError(t, err)
	_, err = svc.Create(validRequest("2025-06-02"))
	require.NoError(t, err)

	// Third booking on a full date fails
	_, err = svc.Create(validRequest("2025-06-02"))
	requireErrorType(t, err, apperrors.CapacityError)

	// Another date is unaffected
	_, err = svc.Create(validRequest("2025-06-03"))
	assert.NoError(t, err)

	// Cancelling one frees exactly one slot
	_, err = svc.Patch(first.ID, map[string]any{"status": models.StatusCancelled})
	require.NoError(t, err)

	_, err = svc.Create(validRequest("2025-06-02"))
	assert.NoError(t, err)
	_, err = svc.Create(validRequest("2025-06-02"))
	requireErrorType(t, err, apperrors.CapacityError)
}

func TestAppointmentService_CreateCoercesTiresCount(t *testing.T) {
	svc, _ := newAppointmentFixture(t)

	tests := []struct {
		name     string
		input    any
		expected int
	}{
		{"NumericString", "6", 6},
		{"NonNumeric", "many", 0},
		{"Missing", nil, 0},
		{"Negative", float64(-2), 0},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(fmt.Sprintf("2025-06-%02d", 10+i))
			req.TiresCount = tt.input

			appt, err := svc.Create(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, appt.TiresCount)
		})
	}
}

func TestAppointmentService_ListFilters(t *testing.T) {
	svc, _ := newAppointmentFixture(t)

	for _, date := range []string{"2025-06-01", "2025-06-02", "2025-06-02", "2025-06-15"} {
		_, err := svc.Create(validRequest(date))
		require.NoError(t, err)
	}

	t.Run("SingleDate", func(t *testing.T) {
		listed, err := svc.List(models.AppointmentFilter{Date: "2025-06-02"})
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("DateRange", func(t *testing.T) {
		listed, err := svc.List(models.AppointmentFilter{StartDate: "2025-06-01", EndDate: "2025-06-02"})
		require.NoError(t, err)
		assert.Len(t, listed, 3)
	})

	t.Run("MalformedFilterIgnored", func(t *testing.T) {
		listed, err := svc.List(models.AppointmentFilter{Date: "not-a-date"})
		require.NoError(t, err)
		assert.Len(t, listed, 4)
	})
}

func TestAppointmentService_Patch(t *testing.T) {
	svc, _ := newAppointmentFixture(t)

	appt, err := svc.Create(validRequest("2025-06-02"))
	require.NoError(t, err)

	t.Run("AllowListedFields", func(t *testing.T) {
		updated, err := svc.Patch(appt.ID, map[string]any{
			"status":     models.StatusCompleted,
			"notes":      "picked up early",
			"tiresCount": "12",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)
		assert.Equal(t, "picked up early", updated.Notes)
		assert.Equal(t, 12, updated.TiresCount)
	})

	t.Run("UnknownFieldsSilentlyIgnored", func(t *testing.T) {
		updated, err := svc.Patch(appt.ID, map[string]any{
			"id":        "apt_forged",
			"createdAt": "2020-01-01T00:00:00Z",
			"bogus":     true,
		})
		require.NoError(t, err)
		assert.Equal(t, appt.ID, updated.ID)
		assert.Equal(t, appt.CreatedAt.Unix(), updated.CreatedAt.Unix())
	})

	t.Run("DateNotRevalidated", func(t *testing.T) {
		// Admin edits bypass blackout/capacity checks on purpose
		updated, err := svc.Patch(appt.ID, map[string]any{"date": "2025-12-25"})
		require.NoError(t, err)
		assert.Equal(t, "2025-12-25", updated.Date)
	})

	t.Run("UnknownID", func(t *testing.T) {
		_, err := svc.Patch("apt_missing", map[string]any{"notes": "x"})
		requireErrorType(t, err, apperrors.NotFoundError)
	})
}

func TestAppointmentService_Delete(t *testing.T) {
	svc, _ := newAppointmentFixture(t)

	appt, err := svc.Create(validRequest("2025-06-02"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(appt.ID))
	requireErrorType(t, svc.Delete(appt.ID), apperrors.NotFoundError)
}
