// Package validate provides field-level checks for untrusted payloads.
// Callers attribute the returned errors to the specific input field.
package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/nhle/crm/internal/model"
)

// Maximum field lengths.
const (
	MaxClientNameLength  = 100
	MaxProjectNameLength = 200
	MaxTaskTitleLength   = 200
)

// phonePattern accepts digits with optional leading +, separators, and
// parentheses, between 3 and 32 characters.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().\-]{1,30}$`)

// ClientName checks that a client name is present and within length.
func ClientName(name string) error {
	return requiredName(name, MaxClientNameLength)
}

// ProjectName checks that a project name is present and within length.
func ProjectName(name string) error {
	return requiredName(name, MaxProjectNameLength)
}

// TaskTitle checks that a task title is present and within length.
func TaskTitle(title string) error {
	return requiredName(title, MaxTaskTitleLength)
}

func requiredName(s string, max int) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	if len(s) > max {
		return fmt.Errorf("must be at most %d characters", max)
	}
	return nil
}

// Email checks that an email address is well formed. Empty is allowed;
// the field is optional.
func Email(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("must be a valid email address")
	}
	return nil
}

// Phone checks that a phone number is well formed. Empty is allowed;
// the field is optional.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return errors.New("must be a valid phone number")
	}
	return nil
}

// ProjectStatus checks that status is one of the known values.
func ProjectStatus(status string) error {
	switch status {
	case model.ProjectStatusNotStarted, model.ProjectStatusInProgress,
		model.ProjectStatusOnHold, model.ProjectStatusCompleted,
		model.ProjectStatusCancelled:
		return nil
	}
	return fmt.Errorf("unknown status %q", status)
}

// TaskPriority checks that priority is within the known range.
func TaskPriority(p int) error {
	if p < model.TaskPriorityLow || p > model.TaskPriorityUrgent {
		return fmt.Errorf("priority %d out of range", p)
	}
	return nil
}

// ProjectDates checks that the end date, when present, is not before the
// start date.
func ProjectDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return errors.New("must not be before start date")
	}
	return nil
}
