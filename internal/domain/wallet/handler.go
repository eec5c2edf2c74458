package wallet

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthconnect/healthconnect/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/wallets/:ownerType/:ownerId", h.Get, auth.RequireSelfOrAdmin("ownerId"))
	api.GET("/wallets/:ownerType/:ownerId/earnings", h.Earnings, auth.RequireSelfOrAdmin("ownerId"))
	api.POST("/wallets/:ownerType/:ownerId/withdraw", h.Withdraw, auth.RequireSelfOrAdmin("ownerId"))
}

func (h *Handler) Get(c echo.Context) error {
	view, err := h.svc.Get(c.Request().Context(), c.Param("ownerType"), c.Param("ownerId"))
	if err != nil {
		if errors.Is(err, ErrInvalidOwnerType) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Earnings(c echo.Context) error {
	earnings, err := h.svc.Earnings(c.Request().Context(), c.Param("ownerType"), c.Param("ownerId"))
	if err != nil {
		if errors.Is(err, ErrInvalidOwnerType) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, earnings)
}

func (h *Handler) Withdraw(c echo.Context) error {
	var req WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w, err := h.svc.Withdraw(c.Request().Context(), c.Param("ownerType"), c.Param("ownerId"), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOwnerType),
			errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrBelowMinimum):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInsufficientBalance):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, w)
}
