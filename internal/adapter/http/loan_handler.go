package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrifund-backend/internal/adapter/middleware"
	domain "agrifund-backend/internal/domain/loan"
	"agrifund-backend/internal/usecase/loan"
)

type LoanHandler struct {
	led *loan.Ledger
	log *zap.Logger
}

func NewLoanHandler(led *loan.Ledger, log *zap.Logger) *LoanHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoanHandler{led: led, log: log}
}

type cropItemReq struct {
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price" validate:"gte=0,dec2"`
}

type submitLoanReq struct {
	ApplicantName string        `json:"applicant_name" validate:"required"`
	Phone         string        `json:"phone"`
	CropName      string        `json:"crop_name"      validate:"required"`
	CropItems     []cropItemReq `json:"crop_items"     validate:"required,min=1,dive"`
	// CreditLimit comes from the credit-advisory service; 0 means
	// "use the server default".
	CreditLimit float64 `json:"credit_limit" validate:"gte=0"`
}

type loanEnvelope struct {
	HasLoan bool                 `json:"has_loan"`
	Loan    *loan.ApplicationDTO `json:"loan"`
}

type submitResponse struct {
	HasLoan            bool                `json:"has_loan"`
	Loan               loan.ApplicationDTO `json:"loan"`
	NotificationStatus string              `json:"notification_status"`
}

type historyResponse struct {
	Count int                   `json:"count"`
	Loans []loan.ApplicationDTO `json:"loans"`
}

func (h *LoanHandler) SubmitLoan(c echo.Context) error {
	var req submitLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	items := make([]domain.CropItem, 0, len(req.CropItems))
	for _, it := range req.CropItems {
		items = append(items, domain.CropItem{Name: it.Name, Price: it.Price})
	}

	res, err := h.led.Submit(c.Request().Context(), loan.SubmitInput{
		UserID:        middleware.UserID(c),
		ApplicantName: req.ApplicantName,
		Phone:         req.Phone,
		CropName:      req.CropName,
		CropItems:     items,
		CreditLimit:   req.CreditLimit,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateApplication):
			hasLoan := true
			return c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "an application already exists for this user",
				HasLoan: &hasLoan,
			})
		case errors.Is(err, domain.ErrCreditLimitExceeded):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "requested amount exceeds credit limit"})
		default:
			h.log.Error("submit loan failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, submitResponse{
		HasLoan:            true,
		Loan:               res.Application,
		NotificationStatus: string(res.NotificationStatus),
	})
}

func (h *LoanHandler) GetLatestLoan(c echo.Context) error {
	dto, err := h.led.Latest(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusOK, loanEnvelope{HasLoan: false, Loan: nil})
		}
		h.log.Error("get latest loan failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, loanEnvelope{HasLoan: true, Loan: dto})
}

func (h *LoanHandler) UpdateLatestLoan(c echo.Context) error {
	var patch loan.Patch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	dto, err := h.led.UpdateLatest(c.Request().Context(), middleware.UserID(c), patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no application to update"})
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid status value"})
		default:
			h.log.Error("update latest loan failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"loan": dto})
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	loans, err := h.led.History(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("list loans failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, historyResponse{Count: len(loans), Loans: loans})
}
