package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hirostaff/reservations/internal/cache"
	"github.com/hirostaff/reservations/internal/dateutil"
	"github.com/hirostaff/reservations/internal/model"
	"github.com/hirostaff/reservations/internal/queue"
	"github.com/hirostaff/reservations/internal/repository"
	"github.com/hirostaff/reservations/internal/validate"
)

// ReservationStore is the minimal data-access surface the reservation
// endpoints need.  repository.ReservationRepo is the production
// implementation; tests substitute a mock.
type ReservationStore interface {
	ListByDate(ctx context.Context, ymd string) ([]model.Reservation, error)
	ListDates(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	Insert(ctx context.Context, res *model.Reservation) error
	Update(ctx context.Context, id uint64, p repository.ReservationPatch) error
	Delete(ctx context.Context, id uint64) error
}

// ReservationHandler serves the day view, the highlighted-date set, the
// slot sequence and all three mutations.  Every mutation re-validates
// the lock policy against the stored date immediately before dispatch,
// independent of whatever the client had enabled: the day boundary may
// have crossed while an edit dialog sat open.
type ReservationHandler struct {
	Store ReservationStore
	Slots []string // authoritative selectable time labels

	Dates *cache.Dates // highlighted-date cache, nil-safe

	// PastDatesUnselectable enables the stricter calendar variant where
	// the day view reports past dates as unselectable outright.
	PastDatesUnselectable bool

	// Publish sends the audit event after a successful mutation.  Nil
	// disables publishing; failures are ignored so a broker outage
	// never fails the request.
	Publish func(ctx context.Context, ev queue.ReservationChangedEvent) error
}

// NewReservationHandler constructs the handler.  Store must be non-nil.
func NewReservationHandler(store ReservationStore, slots []string, dates *cache.Dates) *ReservationHandler {
	if store == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{Store: store, Slots: slots, Dates: dates}
}

// ----- DTOs -----

type createReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Size  int    `json:"size"`
	Time  string `json:"time"`
	Date  string `json:"date"`
}

type patchReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Size  int    `json:"size"`
	Time  string `json:"time"`
}

type dayResp struct {
	Date         string              `json:"date"`
	Editable     bool                `json:"editable"`
	Selectable   bool                `json:"selectable"`
	Reservations []model.Reservation `json:"reservations"`
	Count        int                 `json:"count"`
	TotalSize    int                 `json:"total_size"`
}

// ListDay handles GET /v1/reservations?date=YYYY-MM-DD.  An empty day is
// a normal response with an empty list, not an error.
func (h *ReservationHandler) ListDay(c echo.Context) error {
	ymd := c.QueryParam("date")
	if !dateutil.Valid(ymd) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Store.ListByDate(ctx, ymd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load reservations."})
	}

	editable := dateutil.IsTodayOrFuture(ymd)
	return c.JSON(http.StatusOK, dayResp{
		Date:         ymd,
		Editable:     editable,
		Selectable:   editable || !h.PastDatesUnselectable,
		Reservations: list,
		Count:        len(list),
		TotalSize:    totalSize(list),
	})
}

// ListDates handles GET /v1/reservations/dates: the set of all dates
// with at least one reservation, for marking the calendar.  The set is
// date-independent, so it is served from cache until a mutation
// invalidates it.
func (h *ReservationHandler) ListDates(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if dates, ok := h.Dates.Get(ctx); ok {
		return c.JSON(http.StatusOK, echo.Map{"dates": dates})
	}
	dates, err := h.Store.ListDates(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load reservation dates."})
	}
	h.Dates.Set(ctx, dates)
	return c.JSON(http.StatusOK, echo.Map{"dates": dates})
}

// ListSlots handles GET /v1/reservations/slots: the authoritative slot
// sequence the form offers for the time field.
func (h *ReservationHandler) ListSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"slots": h.Slots})
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	res, err := validate.NewReservation(validate.ReservationInput{
		Name:  req.Name,
		Phone: req.Phone,
		Size:  req.Size,
		Time:  req.Time,
		Date:  req.Date,
	}, h.Slots)
	if err != nil {
		if errors.Is(err, validate.ErrDateLocked) {
			return c.JSON(http.StatusConflict, echo.Map{"error": validate.MsgLockedCreate})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Insert(ctx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save reservation."})
	}

	h.afterMutation(c, "created", res)
	return c.JSON(http.StatusCreated, res)
}

// Update handles PATCH /v1/reservations/:id.  The stored date decides
// the lock; the patch never carries a date, so the reservation's day and
// id are unchanged by design.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	stored, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load reservation."})
	}
	if err := validate.CheckMutable(stored.Date); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": validate.MsgLockedEdit})
	}

	var req patchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch, err := validate.Patch(validate.PatchInput{
		Name:  req.Name,
		Phone: req.Phone,
		Size:  req.Size,
		Time:  req.Time,
	}, h.Slots)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.Store.Update(ctx, id, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update reservation."})
	}

	updated, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load reservation."})
	}

	h.afterMutation(c, "updated", updated)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/reservations/:id.  The client's confirmation
// dialog lives client-side; here delete is its own explicit verb.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	stored, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load reservation."})
	}
	if err := validate.CheckMutable(stored.Date); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": validate.MsgLockedDelete})
	}

	if err := h.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete reservation."})
	}

	h.afterMutation(c, "deleted", stored)
	return c.NoContent(http.StatusNoContent)
}

// afterMutation invalidates the highlighted-date cache and publishes the
// audit event.  Both are best-effort: the mutation already succeeded.
func (h *ReservationHandler) afterMutation(c echo.Context, action string, res model.Reservation) {
	ctx := c.Request().Context()
	h.Dates.Invalidate(ctx)

	if h.Publish == nil {
		return
	}
	actor := ""
	if uid, err := getUserID(c); err == nil {
		actor = strconv.FormatUint(uid, 10)
	}
	_ = h.Publish(ctx, queue.ReservationChangedEvent{
		Action:        action,
		ReservationID: res.ID,
		Date:          res.Date,
		Name:          res.Name,
		Phone:         res.Phone,
		Size:          res.Size,
		Time:          res.Time,
		ActorID:       actor,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// totalSize sums party sizes for the day, treating nonsense values as 0
// rather than letting them poison the aggregate.
func totalSize(list []model.Reservation) int {
	sum := 0
	for _, r := range list {
		if r.Size > 0 {
			sum += r.Size
		}
	}
	return sum
}

func reservationID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
