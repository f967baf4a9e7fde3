package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/models"
	"github.com/David-Van-Dyne/pickup-scheduler/repository"
)

type accountFixture struct {
	accounts      *AccountService
	appointments  *AppointmentService
	notifications *NotificationService
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	dir := t.TempDir()
	apptRepo := repository.NewAppointmentRepository(dir)
	acctRepo := repository.NewAccountRepository(dir)
	configRepo := repository.NewConfigRepository(dir)
	return &accountFixture{
		accounts:      NewAccountService(acctRepo, apptRepo),
		appointments:  NewAppointmentService(apptRepo, configRepo),
		notifications: NewNotificationService(acctRepo),
	}
}

func validAccountRequest(email string) *models.AccountRequest {
	return &models.AccountRequest{
		Company:     "Acme Tires",
		ContactName: "Jordan Smith",
		Email:       email,
		Phone:       "555-0100",
		Address:     "1 Main St",
		City:        "Springfield",
		State:       "IL",
		Zip:         "62701",
	}
}

func TestAccountService_CreateFromAppointment(t *testing.T) {
	fx := newAccountFixture(t)

	appt, err := fx.appointments.Create(validRequest("2025-06-02"))
	require.NoError(t, err)

	acct, err := fx.accounts.CreateFromAppointment(appt.ID, "regular customer")
	require.NoError(t, err)

	assert.Equal(t, appt.CompanyName, acct.Company)
	assert.Equal(t, appt.Name, acct.Name)
	assert.Equal(t, appt.Email, acct.Email)
	assert.Equal(t, 1, acct.TotalPickups)
	require.NotNil(t, acct.LastPickup)
	assert.Equal(t, appt.Date, *acct.LastPickup)
	assert.Empty(t, acct.Notifications)
	assert.Equal(t, "regular customer", acct.Notes)
}

func TestAccountService_CreateFromAppointmentUnknownID(t *testing.T) {
	fx := newAccountFixture(t)

	_, err := fx.accounts.CreateFromAppointment("apt_missing", "")
	requireErrorType(t, err, apperrors.NotFoundError)
}

func TestAccountService_CreateFromAppointmentDuplicateEmail(t *testing.T) {
	fx := newAccountFixture(t)

	appt, err := fx.appointments.Create(validRequest("2025-06-02"))
	require.NoError(t, err)

	_, err = fx.accounts.CreatePublic(validAccountRequest("JORDAN@ACME.TEST"))
	require.NoError(t, err)

	// Appointment's email matches case-insensitively
	_, err = fx.accounts.CreateFromAppointment(appt.ID, "")
	requireErrorType(t, err, apperrors.AlreadyExistsError)
}

func TestAccountService_CreatePublic(t *testing.T) {
	fx := newAccountFixture(t)

	acct, err := fx.accounts.CreatePublic(validAccountRequest("jordan@acme.test"))
	require.NoError(t, err)

	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, 0, acct.TotalPickups)
	assert.Nil(t, acct.LastPickup)
	assert.Empty(t, acct.Notifications)
}

func TestAccountService_CreatePublicRequiredFields(t *testing.T) {
	fx := newAccountFixture(t)

	tests := []struct {
		name   string
		mutate func(req *models.AccountRequest)
	}{
		{"MissingCompany", func(r *models.AccountRequest) { r.Company = "" }},
		{"MissingContactName", func(r *models.AccountRequest) { r.ContactName = "" }},
		{"MissingPhone", func(r *models.AccountRequest) { r.Phone = "" }},
		{"MissingAddress", func(r *models.AccountRequest) { r.Address = "" }},
		{"MissingCity", func(r *models.AccountRequest) { r.City = "" }},
		{"MissingState", func(r *models.AccountRequest) { r.State = "" }},
		{"MissingZip", func(r *models.AccountRequest) { r.Zip = "" }},
		{"MalformedEmail", func(r *models.AccountRequest) { r.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAccountRequest("jordan@acme.test")
			tt.mutate(req)

			_, err := fx.accounts.CreatePublic(req)
			requireErrorType(t, err, apperrors.ValidationError)
		})
	}
}

func TestAccountService_EmailUniqueness(t *testing.T) {
	fx := newAccountFixture(t)

	t.Run("CaseInsensitiveConflict", func(t *testing.T) {
		_, err := fx.accounts.CreatePublic(validAccountRequest("sales@acme.test"))
		require.NoError(t, err)

		_, err = fx.accounts.CreatePublic(validAccountRequest("Sales@Acme.Test"))
		requireErrorType(t, err, apperrors.AlreadyExistsError)
	})

	t.Run("EmptyEmailNeverConflicts", func(t *testing.T) {
		_, err := fx.accounts.CreatePublic(validAccountRequest(""))
		require.NoError(t, err)

		_, err = fx.accounts.CreatePublic(validAccountRequest(""))
		require.NoError(t, err)
	})
}

func TestAccountService_Patch(t *testing.T) {
	fx := newAccountFixture(t)

	acct, err := fx.accounts.CreatePublic(validAccountRequest("jordan@acme.test"))
	require.NoError(t, err)

	updated, err := fx.accounts.Patch(acct.ID, map[string]any{
		"company":      "Acme Tire & Wheel",
		"notes":        "prefers morning pickups",
		"totalPickups": 99, // not allow-listed
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Tire & Wheel", updated.Company)
	assert.Equal(t, "prefers morning pickups", updated.Notes)
	assert.Equal(t, 0, updated.TotalPickups)

	_, err = fx.accounts.Patch("acc_missing", map[string]any{"notes": "x"})
	requireErrorType(t, err, apperrors.NotFoundError)
}

func TestAccountService_DeleteCascadesNotifications(t *testing.T) {
	fx := newAccountFixture(t)

	acct, err := fx.accounts.CreatePublic(validAccountRequest("jordan@acme.test"))
	require.NoError(t, err)

	_, err = fx.notifications.Add(acct.ID, &models.NotificationRequest{Message: "call back", Date: "2025-07-01"})
	require.NoError(t, err)

	require.NoError(t, fx.accounts.Delete(acct.ID))

	_, err = fx.accounts.Get(acct.ID)
	requireErrorType(t, err, apperrors.NotFoundError)

	// Same email is usable again after the hard delete
	_, err = fx.accounts.CreatePublic(validAccountRequest("jordan@acme.test"))
	assert.NoError(t, err)
}
