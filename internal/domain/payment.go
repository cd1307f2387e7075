package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo lists the allowed payment status moves. Only a pending
// payment can complete, so completion happens at most once per payment.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed
	case PaymentStatusCompleted:
		return next == PaymentStatusRefunded
	}
	return false
}

type MembershipPayment struct {
	ID                   int32         `json:"id"`
	OrgID                int32         `json:"organization"`
	OrganizationName     string        `json:"organization_name"`
	AmountCents          int64         `json:"amount_cents"`
	PaymentDate          time.Time     `json:"payment_date"`
	TransactionReference string        `json:"transaction_reference"`
	PaymentMethod        string        `json:"payment_method"`
	Status               PaymentStatus `json:"status"`
	ReceiptKey           string        `json:"receipt"`
	Notes                string        `json:"notes"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}
