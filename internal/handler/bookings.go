package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/booking"
	"github.com/dharmasatrya/ticketkini/internal/history"
	"github.com/dharmasatrya/ticketkini/internal/models"
)

// BookingAPI is the booking and payment surface of the remote API.
type BookingAPI interface {
	history.Source
	Me(ctx context.Context) (*models.User, error)
	Booking(ctx context.Context, bookingID int64) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64, reason string) (*models.CancelResult, error)
}

type BookingHandler struct {
	api    BookingAPI
	loader *history.Loader
	logger *slog.Logger
}

type BookingDetail struct {
	booking.View
	PaymentsUnavailable bool `json:"payments_unavailable"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func NewBookingHandler(api BookingAPI, cfg history.Config, logger *slog.Logger) *BookingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg = history.DefaultConfig()
	}
	return &BookingHandler{
		api:    api,
		loader: history.NewLoader(api, cfg, logger),
		logger: logger,
	}
}

// List is the booking history page: the caller's bookings joined with
// their payments.
func (h *BookingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	query := api.BookingQuery{Status: models.BookingStatus(c.QueryParam("status"))}
	var err error
	if query.Limit, err = intParam(c, "limit", 50); err != nil {
		return badRequest(c, err.Error())
	}
	if query.Offset, err = intParam(c, "offset", 0); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.api.Me(ctx)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.loader.Load(ctx, user.ID, query)
	if err != nil {
		return writeError(c, err)
	}
	if res.Views == nil {
		res.Views = []booking.View{}
	}
	return c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) Detail(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	detail, err := h.detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req cancelRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Failed to parse request body: "+err.Error())
		}
	}
	if req.Reason == "" {
		req.Reason = c.QueryParam("reason")
	}

	res, err := h.api.CancelBooking(c.Request().Context(), id, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	h.logger.Info("booking cancelled", "booking_id", id, "freed_seats", len(res.FreedSeats))
	return c.JSON(http.StatusOK, res)
}

// Ticket renders the booking as a downloadable PDF.
func (h *BookingHandler) Ticket(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	detail, err := h.detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	pdf, err := booking.TicketPDF(detail.View)
	if err != nil {
		h.logger.Error("ticket render failed", "booking_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "ticket_error",
			Message: "Could not generate the ticket",
			Code:    http.StatusInternalServerError,
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ticket-%d.pdf"`, id))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// detail fetches a booking and its best payment. A payments failure only
// costs the payment block.
func (h *BookingHandler) detail(ctx context.Context, id int64) (*BookingDetail, error) {
	b, err := h.api.Booking(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &BookingDetail{}
	payments, err := h.api.PaymentHistory(ctx)
	if err != nil {
		h.logger.Warn("payment history unavailable", "booking_id", id, "error", err)
		out.PaymentsUnavailable = true
	}
	out.View = booking.NewView(*b, booking.MatchPayment(*b, payments))
	return out, nil
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking id %q", c.Param("id"))
	}
	return id, nil
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", name)
	}
	return n, nil
}
