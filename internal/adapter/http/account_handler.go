package http

import (
	"net/http"
	"strings"

	accountUC "moneylending-backend/internal/usecase/account"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct{ uc *accountUC.Usecase }

func NewAccountHandler(uc *accountUC.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

type registerReq struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AccountHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationErr(c, err)
	}
	dto, err := h.uc.Register(c.Request().Context(), accountUC.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AccountHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationErr(c, err)
	}
	dto, err := h.uc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing bearer token"})
	}
	if err := h.uc.Logout(c.Request().Context(), strings.TrimSpace(token)); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type sendVerifyReq struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AccountHandler) SendVerification(c echo.Context) error {
	var req sendVerifyReq
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationErr(c, err)
	}
	if err := h.uc.SendVerification(c.Request().Context(), req.Email); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "code sent"})
}

type confirmVerifyReq struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

func (h *AccountHandler) ConfirmVerification(c echo.Context) error {
	var req confirmVerifyReq
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationErr(c, err)
	}
	dto, err := h.uc.ConfirmVerification(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
