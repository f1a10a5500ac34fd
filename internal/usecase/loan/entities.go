package loan

import (
	"time"

	domain "agrifund-backend/internal/domain/loan"
	"agrifund-backend/internal/notify"
)

type SubmitInput struct {
	UserID        string
	ApplicantName string
	Phone         string
	CropName      string
	CropItems     []domain.CropItem
	// CreditLimit <= 0 means the caller did not supply one; the ledger
	// falls back to its configured default.
	CreditLimit float64
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Status             *domain.Status `json:"status"`
	PaidAmount         *float64       `json:"paid_amount"`
	RemainingAmount    *float64       `json:"remaining_amount"`
	ProgressPercentage *float64       `json:"progress_percentage"`
	NextPaymentDate    *string        `json:"next_payment_date"`
	MonthlyPayment     *float64       `json:"monthly_payment"`
}

type ApplicationDTO struct {
	ApplicationID      string            `json:"application_id"`
	UserID             string            `json:"user_id"`
	ApplicantName      string            `json:"applicant_name"`
	Phone              string            `json:"phone"`
	CropName           string            `json:"crop_name"`
	CropItems          []domain.CropItem `json:"crop_items"`
	TotalAmount        float64           `json:"total_amount"`
	PaidAmount         float64           `json:"paid_amount"`
	RemainingAmount    float64           `json:"remaining_amount"`
	ProgressPercentage float64           `json:"progress_percentage"`
	Status             string            `json:"status"`
	NextPaymentDate    string            `json:"next_payment_date"`
	MonthlyPayment     float64           `json:"monthly_payment"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type SubmitResult struct {
	Application        ApplicationDTO        `json:"loan"`
	NotificationStatus notify.DeliveryStatus `json:"notification_status"`
}

func toDTO(l *domain.LoanApplication) ApplicationDTO {
	return ApplicationDTO{
		ApplicationID:      l.ApplicationID,
		UserID:             l.UserID,
		ApplicantName:      l.ApplicantName,
		Phone:              l.Phone,
		CropName:           l.CropName,
		CropItems:          l.CropItems,
		TotalAmount:        l.TotalAmount,
		PaidAmount:         l.PaidAmount,
		RemainingAmount:    l.RemainingAmount,
		ProgressPercentage: l.ProgressPercentage,
		Status:             string(l.Status),
		NextPaymentDate:    l.NextPaymentDate,
		MonthlyPayment:     l.MonthlyPayment,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}
