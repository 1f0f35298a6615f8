package http

import (
	"net/http"
	"time"

	"moneylending-backend/internal/adapter/middleware"
	loanDomain "moneylending-backend/internal/domain/loan"
	loanUC "moneylending-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loanUC.Usecase }

func NewLoanHandler(uc *loanUC.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerName string    `json:"borrower_name" validate:"required,max=255"`
	Principal    float64   `json:"principal" validate:"required,gt=0,dec2"`
	InterestRate float64   `json:"interest_rate" validate:"gte=0,dec2"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	DueDate      time.Time `json:"due_date" validate:"required"`
	Description  string    `json:"description"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationErr(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), actor, loanUC.CreateLoanInput{
		BorrowerName: req.BorrowerName,
		Principal:    decimal.NewFromFloat(req.Principal),
		InterestRate: decimal.NewFromFloat(req.InterestRate),
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		Description:  req.Description,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListLoans returns the caller's full history, both roles merged.
func (h *LoanHandler) ListLoans(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	entries, err := h.uc.HistoryFor(c.Request().Context(), actor)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": entries})
}

type updateLoanReq struct {
	BorrowerName *string    `json:"borrower_name" validate:"omitempty,min=1,max=255"`
	Principal    *float64   `json:"principal" validate:"omitempty,gt=0,dec2"`
	InterestRate *float64   `json:"interest_rate" validate:"omitempty,gte=0,dec2"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status" validate:"omitempty,oneof=pending active completed overdue defaulted"`
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationErr(c, err)
	}
	patch := loanUC.UpdatePatch{
		BorrowerName: req.BorrowerName,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		Description:  req.Description,
	}
	if req.Principal != nil {
		p := decimal.NewFromFloat(*req.Principal)
		patch.Principal = &p
	}
	if req.InterestRate != nil {
		r := decimal.NewFromFloat(*req.InterestRate)
		patch.InterestRate = &r
	}
	if req.Status != nil {
		s := loanDomain.Status(*req.Status)
		patch.Status = &s
	}
	dto, err := h.uc.UpdateFields(c.Request().Context(), actor, c.Param("loan_id"), patch)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	if err := h.uc.Delete(c.Request().Context(), actor, c.Param("loan_id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addPaymentReq struct {
	Amount float64   `json:"amount" validate:"required,gt=0,dec2"`
	Date   time.Time `json:"date" validate:"required"`
	Notes  string    `json:"notes"`
}

func (h *LoanHandler) AddPayment(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req addPaymentReq
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationErr(c, err)
	}
	dto, err := h.uc.AddPayment(c.Request().Context(), actor, c.Param("loan_id"), loanUC.AddPaymentInput{
		Amount: decimal.NewFromFloat(req.Amount),
		Date:   req.Date,
		Notes:  req.Notes,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type forceStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending active completed overdue defaulted"`
}

// ForceStatus is the administrative status override; the next payment
// mutation re-derives and can overwrite it.
func (h *LoanHandler) ForceStatus(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req forceStatusReq
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationErr(c, err)
	}
	dto, err := h.uc.ForceStatus(c.Request().Context(), actor, c.Param("loan_id"), loanDomain.Status(req.Status))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
