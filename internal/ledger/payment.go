package ledger

import (
	"time"
)

// Payment statuses. Only paid rows are ever stored; "unpaid" is inferred by
// the absence of a row for a tenant and month.
const StatusPaid = "paid"

// Payment methods
const (
	MethodCash  = "cash"
	MethodUPI   = "upi"
	MethodBank  = "bank"
	MethodOther = "other"
)

// DueDay is the calendar day of the month rent is due by, end of day.
// Fixed policy, not configurable.
const DueDay = 3

// Payment is one rent collection event. At most one exists per
// (tenant, month); the ledger is append-only.
type Payment struct {
	ID       string    `json:"id"`
	OwnerID  string    `json:"owner_id"`
	TenantID string    `json:"tenant_id"`
	Month    string    `json:"month"` // YYYY-MM
	Amount   int64     `json:"amount"`
	Status   string    `json:"status"`
	Method   string    `json:"method"`
	PaidOn   time.Time `json:"paid_on"`
}

// Entry is a payment joined with tenant identity for display.
type Entry struct {
	Payment
	TenantName string `json:"tenant_name"`
	RoomName   string `json:"room_name"`
	BedNumber  int    `json:"bed_number"`
}

// MonthKey formats a point in time as its YYYY-MM ledger key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DueDate returns the on-time cutoff for a month key: the 3rd calendar day
// at 23:59:59 local time.
func DueDate(month string) (time.Time, error) {
	m, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(m.Year(), m.Month(), DueDay, 23, 59, 59, 0, time.Local), nil
}

// OnTime reports whether a payment made at paidOn counts as on-time for its
// month. The boundary is inclusive: paying at the cutoff second is on-time.
func OnTime(paidOn time.Time, month string) bool {
	due, err := DueDate(month)
	if err != nil {
		return false
	}
	return !paidOn.After(due)
}
