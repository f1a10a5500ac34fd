package loan

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusPaid     Status = "Paid"
	StatusUnpaid   Status = "Unpaid"
	StatusRejected Status = "Rejected"
)

// ValidStatus reports whether s is one of the five allowed statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusUnpaid, StatusRejected:
		return true
	}
	return false
}

var (
	ErrNotFound             = errors.New("loan application not found")
	ErrCreditLimitExceeded  = errors.New("credit limit exceeded")
	ErrDuplicateApplication = errors.New("user already has a loan application")
	ErrInvalidStatus        = errors.New("invalid loan status")
)

// CropItem is one financed line item. A zero Price is valid (a price missing
// at submission time counts as 0 toward the total).
type CropItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CropItems is stored as a JSON column in the SQL backend.
type CropItems []CropItem

func (c CropItems) Value() (driver.Value, error) {
	if c == nil {
		c = CropItems{}
	}
	return json.Marshal(c)
}

func (c *CropItems) Scan(src any) error {
	if src == nil {
		*c = CropItems{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("crop items: unsupported scan type %T", src)
	}
	return json.Unmarshal(b, c)
}

// Total sums the line-item prices.
func (c CropItems) Total() float64 {
	var sum float64
	for _, it := range c {
		sum += it.Price
	}
	return sum
}

type LoanApplication struct {
	ID                 uint64    `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID      string    `gorm:"size:32;uniqueIndex:ux_loan_applications_app_id" json:"application_id"`
	UserID             string    `gorm:"size:32;index:idx_loan_applications_user" json:"user_id"`
	ApplicantName      string    `gorm:"size:191" json:"applicant_name"`
	Phone              string    `gorm:"size:32" json:"phone"`
	CropName           string    `gorm:"size:191" json:"crop_name"`
	CropItems          CropItems `gorm:"type:json" json:"crop_items"`
	TotalAmount        float64   `gorm:"type:decimal(18,2)" json:"total_amount"`
	PaidAmount         float64   `gorm:"type:decimal(18,2)" json:"paid_amount"`
	RemainingAmount    float64   `gorm:"type:decimal(18,2)" json:"remaining_amount"`
	ProgressPercentage float64   `gorm:"type:decimal(6,2)" json:"progress_percentage"`
	Status             Status    `gorm:"size:16;default:'Pending'" json:"status"`
	NextPaymentDate    string    `gorm:"size:32" json:"next_payment_date"`
	MonthlyPayment     float64   `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanApplication) TableName() string { return "loan_applications" }
