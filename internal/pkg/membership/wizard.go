package membership

import (
	"strconv"
	"time"
)

// Step is the position of a wizard instance.
type Step int

const (
	ChoosePlan Step = iota + 1
	ChoosePaymentMethod
	EnterDetails
	Review
	Submitted
)

// ConfirmationWindow is how long the receipt stays visible after a submit.
const ConfirmationWindow = 3 * time.Second

func (s Step) String() string {
	switch s {
	case ChoosePlan:
		return "choose_plan"
	case ChoosePaymentMethod:
		return "choose_payment_method"
	case EnterDetails:
		return "enter_details"
	case Review:
		return "review"
	case Submitted:
		return "submitted"
	}
	return "unknown"
}

// Details holds the applicant and emergency contact fields of step 3.
type Details struct {
	FullName               string `json:"full_name" form:"full_name"`
	ContactNumber          string `json:"contact_number" form:"contact_number"`
	Email                  string `json:"email" form:"email"`
	ReferenceNumber        string `json:"reference_number" form:"reference_number"`
	EmergencyPerson        string `json:"emergency_person" form:"emergency_person"`
	EmergencyContactNumber string `json:"emergency_contact_number" form:"emergency_contact_number"`
	EmergencyAddress       string `json:"emergency_address" form:"emergency_address"`
}

// Receipt is the confirmation summary shown after a successful submit.
type Receipt struct {
	ApplicationID   string `json:"application_id"`
	Plan            string `json:"plan"`
	ReferenceNumber string `json:"reference_number"`
	Amount          string `json:"amount"`
}

// Wizard is the complete state of one intake session. It is a plain value;
// every change goes through Transition.
type Wizard struct {
	Step          Step          `json:"step"`
	Plan          *PlanSnapshot `json:"plan,omitempty"`
	Amount        string        `json:"amount"`
	PaymentMethod string        `json:"payment_method"`
	Details       Details       `json:"details"`
	Receipt       *Receipt      `json:"receipt,omitempty"`
	SubmittedAt   time.Time     `json:"submitted_at,omitempty"`
}

// NewWizard opens a wizard. A preselected plan skips straight to the payment method.
func NewWizard(preselected *PlanSnapshot) Wizard {
	if preselected == nil {
		return Wizard{Step: ChoosePlan}
	}
	plan := *preselected
	return Wizard{
		Step:   ChoosePaymentMethod,
		Plan:   &plan,
		Amount: strconv.FormatInt(plan.Price, 10),
	}
}

// Form collects the wizard data in validation order
func (w Wizard) Form() IntakeForm {
	return IntakeForm{
		FullName:               w.Details.FullName,
		ContactNumber:          w.Details.ContactNumber,
		Email:                  w.Details.Email,
		ReferenceNumber:        w.Details.ReferenceNumber,
		Amount:                 ParseAmount(w.Amount),
		PaymentMethod:          w.PaymentMethod,
		EmergencyPerson:        w.Details.EmergencyPerson,
		EmergencyContactNumber: w.Details.EmergencyContactNumber,
		EmergencyAddress:       w.Details.EmergencyAddress,
	}
}

// PlanName is the plan snapshot label with the custom fallback
func (w Wizard) PlanName() string {
	if w.Plan == nil || w.Plan.Name == "" {
		return "Custom"
	}
	return w.Plan.Name
}

// Expired reports whether a submitted wizard has shown its receipt long enough.
func (w Wizard) Expired(now time.Time) bool {
	return w.Step == Submitted && !now.Before(w.SubmittedAt.Add(ConfirmationWindow))
}

// Event is an input to Transition.
type Event interface {
	event()
}

type (
	// SelectPlan picks a plan on step 1.
	SelectPlan struct{ Plan PlanSnapshot }
	// ChooseMethod records the payment provider on step 2.
	ChooseMethod struct{ Method string }
	// UpdateDetails stores the step 3 form as entered.
	UpdateDetails struct{ Details Details }
	// Next advances one step if the current step's guard passes.
	Next struct{}
	// Back returns to the previous step without touching data.
	Back struct{}
	// SubmittedEvent marks the application as persisted. Only IntakeService emits it.
	SubmittedEvent struct {
		Receipt Receipt
		At      time.Time
	}
	// Close abandons the wizard and drops all data.
	Close struct{}
)

func (SelectPlan) event()     {}
func (ChooseMethod) event()   {}
func (UpdateDetails) event()  {}
func (Next) event()           {}
func (Back) event()           {}
func (SubmittedEvent) event() {}
func (Close) event()          {}

// Transition applies ev to w. On a guard failure the unchanged wizard is
// returned together with a *StepError; events that make no sense at the
// current step return ErrInvalidTransition.
func Transition(w Wizard, ev Event) (Wizard, error) {
	switch e := ev.(type) {
	case Close:
		return NewWizard(nil), nil

	case SelectPlan:
		if w.Step != ChoosePlan {
			return w, ErrInvalidTransition
		}
		plan := e.Plan
		w.Plan = &plan
		return w, nil

	case ChooseMethod:
		if w.Step != ChoosePaymentMethod {
			return w, ErrInvalidTransition
		}
		w.PaymentMethod = e.Method
		return w, nil

	case UpdateDetails:
		if w.Step != EnterDetails {
			return w, ErrInvalidTransition
		}
		w.Details = e.Details
		return w, nil

	case Next:
		return next(w)

	case Back:
		switch w.Step {
		case ChoosePaymentMethod, EnterDetails, Review:
			w.Step--
			return w, nil
		}
		return w, ErrInvalidTransition

	case SubmittedEvent:
		if w.Step != Review {
			return w, ErrInvalidTransition
		}
		receipt := e.Receipt
		return Wizard{Step: Submitted, Receipt: &receipt, SubmittedAt: e.At}, nil
	}
	return w, ErrInvalidTransition
}

func next(w Wizard) (Wizard, error) {
	switch w.Step {
	case ChoosePlan:
		if w.Plan == nil {
			return w, &StepError{Step: ChoosePlan, Message: "Please select a membership plan"}
		}
		w.Amount = strconv.FormatInt(w.Plan.Price, 10)
		w.Step = ChoosePaymentMethod
		return w, nil

	case ChoosePaymentMethod:
		if !isKnownMethod(w.PaymentMethod) {
			return w, &StepError{Step: ChoosePaymentMethod, Message: "Payment method is required"}
		}
		w.Step = EnterDetails
		return w, nil

	case EnterDetails:
		if err := w.Form().Validate(); err != nil {
			return w, &StepError{Step: EnterDetails, Message: err.Error(), Err: err}
		}
		w.Step = Review
		return w, nil
	}
	// leaving Review is only possible through a submit
	return w, ErrInvalidTransition
}
