package repository

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/models"
)

// AppointmentRepository handles data access operations for appointments
type AppointmentRepository struct {
	mu   sync.Mutex
	path string
}

// NewAppointmentRepository creates a new repository backed by dataDir/appointments.json
func NewAppointmentRepository(dataDir string) *AppointmentRepository {
	return &AppointmentRepository{path: filepath.Join(dataDir, appointmentsFile)}
}

func (r *AppointmentRepository) load() []models.Appointment {
	var list []models.Appointment
	if !readJSONFile(r.path, &list) || list == nil {
		return []models.Appointment{}
	}
	return list
}

func (r *AppointmentRepository) save(list []models.Appointment) error {
	if err := writeJSONFile(r.path, list); err != nil {
		slog.Error("Failed to write appointments file", "path", r.path, "error", err)
		return errors.NewStorageError("failed to persist appointments", err)
	}
	return nil
}

// FindAll retrieves every appointment in the collection
func (r *AppointmentRepository) FindAll() ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(), nil
}

// FindByID retrieves a single appointment by its id
func (r *AppointmentRepository) FindByID(id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, appt := range r.load() {
		if appt.ID == id {
			found := appt
			return &found, nil
		}
	}
	return nil, errors.NewNotFoundError("appointment not found")
}

// Create appends a new appointment. The precheck runs against the current
// collection under the same lock as the write, so validation that depends on
// existing appointments (capacity) cannot race with a concurrent create.
func (r *AppointmentRepository) Create(appt *models.Appointment, precheck func(existing []models.Appointment) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.load()
	if precheck != nil {
		if err := precheck(list); err != nil {
			return err
		}
	}

	list = append(list, *appt)
	return r.save(list)
}

// Mutate applies fn to the appointment with the given id and persists the
// collection. Returns the updated appointment.
func (r *AppointmentRepository) Mutate(id string, fn func(appt *models.Appointment) error) (*models.Appointment, error) {
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
	return nil, errors.NewNotFoundError("appointment not found")
}

// Delete removes the appointment with the given id
func (r *AppointmentRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.load()
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return r.save(list)
		}
	}
	return errors.NewNotFoundError("appointment not found")
}
