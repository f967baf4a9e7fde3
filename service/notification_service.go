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

const (
	dateLayout = "2006-01-02"

	// A recurring reminder is expanded into this many future occurrences at
	// creation, in addition to the root entry.
	recurringOccurrences = 12
)

// NotificationService manages the dated reminders embedded in accounts
type NotificationService struct {
	repo AccountRepositoryInterface
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo AccountRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

// Add attaches a reminder to an account. A recurring reminder is expanded
// immediately: the root entry plus twelve future copies spaced recurrenceWeeks
// apart, each pointing back at the root through parentId. All entries are
// appended in one persist; only the root is returned.
func (s *NotificationService) Add(accountID string, req *models.NotificationRequest) (*models.Notification, error) {
	if err := validateNotificationRequest(req); err != nil {
		return nil, err
	}

	weeks := req.RecurrenceWeeks
	if weeks < 1 {
		weeks = 1
	}

	root := models.Notification{
		ID:              "not_" + uuid.NewString(),
		Message:         req.Message,
		Date:            req.Date,
		CreatedAt:       time.Now().UTC(),
		Sent:            false,
		Recurring:       req.Recurring,
		RecurrenceWeeks: weeks,
	}

	entries := []models.Notification{root}
	if req.Recurring {
		start, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, errors.NewValidationError("date must be formatted YYYY-MM-DD")
		}
		for i := 1; i <= recurringOccurrences; i++ {
			entries = append(entries, models.Notification{
				ID:              "not_" + uuid.NewString(),
				Message:         req.Message,
				Date:            start.AddDate(0, 0, i*weeks*7).Format(dateLayout),
				CreatedAt:       root.CreatedAt,
				Sent:            false,
				Recurring:       true,
				RecurrenceWeeks: weeks,
				ParentID:        root.ID,
			})
		}
	}

	_, err := s.repo.Mutate(accountID, func(acct *models.Account) error {
		acct.Notifications = append(acct.Notifications, entries...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().NotificationsScheduled.Add(float64(len(entries)))
	slog.Info("Notification scheduled", "accountId", accountID, "notificationId", root.ID, "entries", len(entries))
	return &root, nil
}

// Update replaces the editable fields on exactly one entry. Changing the
// recurrence settings does not touch previously generated siblings.
func (s *NotificationService) Update(accountID, notificationID string, req *models.NotificationRequest) (*models.Notification, error) {
	if err := validateNotificationRequest(req); err != nil {
		return nil, err
	}

	weeks := req.RecurrenceWeeks
	if weeks < 1 {
		weeks = 1
	}

	var updated models.Notification
	_, err := s.repo.Mutate(accountID, func(acct *models.Account) error {
		for i := range acct.Notifications {
			if acct.Notifications[i].ID == notificationID {
				acct.Notifications[i].Message = req.Message
				acct.Notifications[i].Date = req.Date
				acct.Notifications[i].Recurring = req.Recurring
				acct.Notifications[i].RecurrenceWeeks = weeks
				updated = acct.Notifications[i]
				return nil
			}
		}
		return errors.NewNotFoundError("notification not found")
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes exactly one entry by id. Roots and generated occurrences are
// deleted independently; there is no cascade through parentId.
func (s *NotificationService) Delete(accountID, notificationID string) error {
	_, err := s.repo.Mutate(accountID, func(acct *models.Account) error {
		for i := range acct.Notifications {
			if acct.Notifications[i].ID == notificationID {
				acct.Notifications = append(acct.Notifications[:i], acct.Notifications[i+1:]...)
				return nil
			}
		}
		return errors.NewNotFoundError("notification not found")
	})
	return err
}

func validateNotificationRequest(req *models.NotificationRequest) error {
	if !validation.IsNotEmpty(req.Message) || !validation.IsNotEmpty(req.Date) {
		return errors.NewValidationError("message and date are required")
	}
	return nil
}
