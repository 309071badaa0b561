package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/internal/pkg/metrics"
)

// Store is the persistence boundary shared by intake and moderation.
type Store interface {
	Create(ctx context.Context, app *models.PaymentApplication) error
	GetByID(ctx context.Context, id string) (*models.PaymentApplication, error)
	List(ctx context.Context, status string) ([]models.PaymentApplication, error)
	UpdateStatusIfPending(ctx context.Context, id string, status string) (bool, error)
}

// Notifier is told about stored and decided applications. Failures never
// affect the outcome of the operation that triggered them.
type Notifier interface {
	ApplicationReceived(ctx context.Context, app *models.PaymentApplication) error
	ApplicationDecided(ctx context.Context, app *models.PaymentApplication, actor string) error
}

// NopNotifier drops all notifications
type NopNotifier struct{}

func (NopNotifier) ApplicationReceived(context.Context, *models.PaymentApplication) error {
	return nil
}

func (NopNotifier) ApplicationDecided(context.Context, *models.PaymentApplication, string) error {
	return nil
}

// IntakeService performs the single write at the end of the wizard.
type IntakeService struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

func NewIntakeService(store Store, notifier Notifier) *IntakeService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &IntakeService{store: store, notifier: notifier, now: time.Now}
}

// Submit validates the reviewed wizard once more, stores exactly one pending
// application and moves the wizard to Submitted. On any failure the wizard
// is returned unchanged at Review.
func (s *IntakeService) Submit(ctx context.Context, w Wizard) (Wizard, *models.PaymentApplication, error) {
	if w.Step != Review {
		return w, nil, ErrInvalidTransition
	}

	form := w.Form().Normalize()
	if err := form.Validate(); err != nil {
		return w, nil, &StepError{Step: Review, Message: err.Error(), Err: err}
	}

	app := &models.PaymentApplication{
		FullName:        form.FullName,
		ContactNumber:   form.ContactNumber,
		Email:           form.Email,
		ReferenceNumber: form.ReferenceNumber,
		Amount:          form.Amount,
		PaymentMethod:   form.PaymentMethod,
		Plan:            w.PlanName(),
		Status:          models.PaymentStatusPending,
		EmergencyContact: models.EmergencyContact{
			Person:        form.EmergencyPerson,
			ContactNumber: form.EmergencyContactNumber,
			Address:       form.EmergencyAddress,
		},
	}

	if err := s.store.Create(ctx, app); err != nil {
		metrics.ApplicationsFailed.Inc()
		log.Errorf("[Intake] Failed to store application (ref %s): %v", app.ReferenceNumber, err)
		return w, nil, &StepError{
			Step:    Review,
			Message: SubmitFailedMessage,
			Err:     fmt.Errorf("%w: %v", ErrSubmitFailed, err),
		}
	}

	done, err := Transition(w, SubmittedEvent{
		Receipt: Receipt{
			ApplicationID:   app.ID,
			Plan:            app.PlanLabel(),
			ReferenceNumber: app.ReferenceNumber,
			Amount:          app.Amount.String(),
		},
		At: s.now(),
	})
	if err != nil {
		return w, nil, err
	}

	metrics.ApplicationsSubmitted.WithLabelValues(app.Plan, app.PaymentMethod).Inc()
	log.Infof("[Intake] Stored application %s for plan %s (%s)", app.ID, app.Plan, app.PaymentMethod)

	if err := s.notifier.ApplicationReceived(ctx, app); err != nil {
		log.Warnf("[Intake] Notification for application %s failed: %v", app.ID, err)
	}

	return done, app, nil
}
