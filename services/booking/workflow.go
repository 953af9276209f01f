package booking

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"stayhive/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// phonePattern accepts an optional leading + followed by 1 to 15 digits,
// no leading zero (E.164).
var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,14}$`)

type guestValidator struct {
	v *validator.Validate
}

func newGuestValidator() *guestValidator {
	v := validator.New()
	_ = v.RegisterValidation("guestphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &guestValidator{v: v}
}

// Validate checks the guest-info slice and reports the first offending
// field with a message suitable for inline display.
func (g *guestValidator) Validate(guest models.GuestInfo) error {
	err := g.v.Struct(guest)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return NewValidationError("guest", "invalid guest details")
	}
	fe := errs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return NewValidationError(field, fmt.Sprintf("%s is required", field))
	case "email":
		return NewValidationError(field, "enter a valid email address")
	case "guestphone":
		return NewValidationError(field, "enter a valid phone number")
	default:
		return NewValidationError(field, fmt.Sprintf("%s is invalid", field))
	}
}

// SetGuestInfo stores the guest details on the draft. Validation happens on
// the forward transition out of the guest-info step, so partial edits are
// accepted here.
func (s *DefaultBookingSessionService) SetGuestInfo(ctx context.Context, sessionID string, guest models.GuestInfo) (*models.BookingDraft, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	draft.Guest = guest
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GoToStep moves the workflow. Backward moves are always allowed and lose
// nothing. A forward move, including a skip past intermediate steps,
// validates every step between the current one and the target.
func (s *DefaultBookingSessionService) GoToStep(ctx context.Context, sessionID string, target models.WorkflowStep) (*models.BookingDraft, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if target < models.StepBookingDetails || target > models.StepPayment {
		return nil, NewValidationError("step", "unknown checkout step")
	}

	if target > draft.Step {
		for st := draft.Step; st < target; st++ {
			if err := s.validateStep(draft, st); err != nil {
				return nil, err
			}
		}
	}

	if target != draft.Step {
		s.Logger.Debug("workflow step change",
			zap.String("sessionID", sessionID),
			zap.Int("from", int(draft.Step)),
			zap.Int("to", int(target)))
		draft.Step = target
		if err := s.save(ctx, draft); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

// validateStep checks that one step's slice of the draft is complete enough
// to leave it behind.
func (s *DefaultBookingSessionService) validateStep(draft *models.BookingDraft, step models.WorkflowStep) error {
	switch step {
	case models.StepBookingDetails:
		if !draft.Range.Complete() {
			return NewValidationError("dates", "select your check-in and check-out dates")
		}
		if !draft.Range.CheckOut.After(*draft.Range.CheckIn) {
			return NewValidationError("dates", "check-out must be after check-in")
		}
		if draft.Pricing == nil {
			return NewValidationError("dates", "pricing is not ready, reselect your dates")
		}
	case models.StepGuestInfo:
		return s.validate.Validate(draft.Guest)
	}
	// The payment step has no exit validation; the gateway is the judge.
	return nil
}
