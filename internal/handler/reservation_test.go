package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hirostaff/reservations/internal/cache"
	"github.com/hirostaff/reservations/internal/dateutil"
	"github.com/hirostaff/reservations/internal/model"
	"github.com/hirostaff/reservations/internal/queue"
	"github.com/hirostaff/reservations/internal/repository"
	"github.com/hirostaff/reservations/internal/timeslot"
	"github.com/hirostaff/reservations/internal/validate"
)

// MockStore mocks the ReservationStore interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListByDate(ctx context.Context, ymd string) ([]model.Reservation, error) {
	args := m.Called(ymd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockStore) ListDates(ctx context.Context) ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	args := m.Called(id)
	return args.Get(0).(model.Reservation), args.Error(1)
}

func (m *MockStore) Insert(ctx context.Context, res *model.Reservation) error {
	args := m.Called(res)
	return args.Error(0)
}

func (m *MockStore) Update(ctx context.Context, id uint64, p repository.ReservationPatch) error {
	args := m.Called(id, p)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

var testSlots = timeslot.Generate(11, 0, 21, 0, 30)

func newTestHandler(store *MockStore) *ReservationHandler {
	return NewReservationHandler(store, testSlots, cache.NewDates(nil, 0))
}

func doJSON(h echo.HandlerFunc, method, target string, body any, setup func(echo.Context)) *httptest.ResponseRecorder {
	e := echo.New()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	_ = h(c)
	return rec
}

func today() string     { return dateutil.Today() }
func yesterday() string { return dateutil.ToYMD(time.Now().AddDate(0, 0, -1)) }
func tomorrow() string  { return dateutil.ToYMD(time.Now().AddDate(0, 0, 1)) }

func strptr(s string) *string { return &s }

func TestListDayEmpty(t *testing.T) {
	store := new(MockStore)
	store.On("ListByDate", today()).Return([]model.Reservation{}, nil)
	h := newTestHandler(store)

	rec := doJSON(h.ListDay, http.MethodGet, "/v1/reservations?date="+today(), nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dayResp
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, 0, resp.TotalSize)
	assert.True(t, resp.Editable)
	assert.Empty(t, resp.Reservations)
}

func TestListDayTotalsAndLockFlags(t *testing.T) {
	store := new(MockStore)
	store.On("ListByDate", yesterday()).Return([]model.Reservation{
		{ID: 1, Date: yesterday(), Name: "Alice", Size: 2, Time: strptr("6:00 PM")},
		{ID: 2, Date: yesterday(), Name: "Bob", Size: 0}, // defensive: counts as 0
		{ID: 3, Date: yesterday(), Name: "Cara", Size: 4},
	}, nil)
	h := newTestHandler(store)

	rec := doJSON(h.ListDay, http.MethodGet, "/v1/reservations?date="+yesterday(), nil, nil)

	var resp dayResp
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 6, resp.TotalSize)
	assert.False(t, resp.Editable, "past day is read-only")
	assert.True(t, resp.Selectable, "read-only, not unselectable, by default")
}

func TestListDayStrictVariantMarksPastUnselectable(t *testing.T) {
	store := new(MockStore)
	store.On("ListByDate", yesterday()).Return([]model.Reservation{}, nil)
	h := newTestHandler(store)
	h.PastDatesUnselectable = true

	rec := doJSON(h.ListDay, http.MethodGet, "/v1/reservations?date="+yesterday(), nil, nil)

	var resp dayResp
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Selectable)
}

func TestListDayRejectsMalformedDate(t *testing.T) {
	h := newTestHandler(new(MockStore))
	rec := doJSON(h.ListDay, http.MethodGet, "/v1/reservations?date=08/29/2026", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateInsertsNormalizedRecord(t *testing.T) {
	store := new(MockStore)
	store.On("Insert", mock.AnythingOfType("*model.Reservation")).Run(func(args mock.Arguments) {
		res := args.Get(0).(*model.Reservation)
		res.ID = 7 // store assigns the id
	}).Return(nil)
	h := newTestHandler(store)

	var published []queue.ReservationChangedEvent
	h.Publish = func(_ context.Context, ev queue.ReservationChangedEvent) error {
		published = append(published, ev)
		return nil
	}

	rec := doJSON(h.Create, http.MethodPost, "/v1/reservations", createReq{
		Name: "Alice", Phone: "720-111-2222", Size: 2, Time: "6:00 PM", Date: today(),
	}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var res model.Reservation
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, uint64(7), res.ID)
	assert.Equal(t, "+1 720-111-2222", res.Phone)
	assert.Equal(t, today(), res.Date)

	store.AssertExpectations(t)
	if assert.Len(t, published, 1) {
		assert.Equal(t, "created", published[0].Action)
		assert.Equal(t, uint64(7), published[0].ReservationID)
	}
}

func TestCreatePastDateRefused(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(store)

	rec := doJSON(h.Create, http.MethodPost, "/v1/reservations", createReq{
		Name: "Alice", Phone: "720-111-2222", Size: 2, Time: "6:00 PM", Date: yesterday(),
	}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Past dates are locked")
	store.AssertNotCalled(t, "Insert", mock.Anything)
}

func TestCreateValidationFailureNeverDispatches(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(store)

	cases := []createReq{
		{Name: "", Phone: "7201234567", Size: 2, Time: "6:00 PM", Date: tomorrow()},
		{Name: "Bob", Phone: "123", Size: 2, Time: "6:00 PM", Date: tomorrow()},
		{Name: "Bob", Phone: "7201234567", Size: 0, Time: "6:00 PM", Date: tomorrow()},
		{Name: "Bob", Phone: "7201234567", Size: 2, Time: "", Date: tomorrow()},
		{Name: "Bob", Phone: "7201234567", Size: 2, Time: "6:00 PM", Date: "not-a-date"},
	}
	for _, body := range cases {
		rec := doJSON(h.Create, http.MethodPost, "/v1/reservations", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %+v", body)
	}
	store.AssertNotCalled(t, "Insert", mock.Anything)
}

func withID(id string) func(echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
}

func TestUpdateChangesOnlyMutableFields(t *testing.T) {
	stored := model.Reservation{ID: 5, Date: tomorrow(), Name: "Alice", Phone: "+1 720-111-2222", Size: 2, Time: strptr("6:00 PM")}
	updated := stored
	updated.Size = 5

	store := new(MockStore)
	store.On("GetByID", uint64(5)).Return(stored, nil).Once()
	store.On("Update", uint64(5), repository.ReservationPatch{
		Name: "Alice", Phone: "+1 720-111-2222", Size: 5, Time: strptr("6:00 PM"),
	}).Return(nil)
	store.On("GetByID", uint64(5)).Return(updated, nil).Once()
	h := newTestHandler(store)

	rec := doJSON(h.Update, http.MethodPatch, "/v1/reservations/5", patchReq{
		Name: "Alice", Phone: "+1 720-111-2222", Size: 5, Time: "6:00 PM",
	}, withID("5"))

	assert.Equal(t, http.StatusOK, rec.Code)
	var res model.Reservation
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, uint64(5), res.ID, "id unchanged")
	assert.Equal(t, tomorrow(), res.Date, "date unchanged")
	assert.Equal(t, 5, res.Size)
	store.AssertExpectations(t)
}

func TestUpdateLockedByStoredDate(t *testing.T) {
	store := new(MockStore)
	store.On("GetByID", uint64(5)).Return(model.Reservation{ID: 5, Date: yesterday()}, nil)
	h := newTestHandler(store)

	rec := doJSON(h.Update, http.MethodPatch, "/v1/reservations/5", patchReq{
		Name: "Alice", Phone: "7201112222", Size: 3,
	}, withID("5"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), validate.MsgLockedEdit)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteConfirmedFlow(t *testing.T) {
	store := new(MockStore)
	store.On("GetByID", uint64(9)).Return(model.Reservation{ID: 9, Date: today(), Name: "Alice"}, nil)
	store.On("Delete", uint64(9)).Return(nil)
	h := newTestHandler(store)

	var actions []string
	h.Publish = func(_ context.Context, ev queue.ReservationChangedEvent) error {
		actions = append(actions, ev.Action)
		return nil
	}

	rec := doJSON(h.Delete, http.MethodDelete, "/v1/reservations/9", nil, withID("9"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"deleted"}, actions)
	store.AssertExpectations(t)
}

func TestDeletePastDateRefused(t *testing.T) {
	store := new(MockStore)
	store.On("GetByID", uint64(9)).Return(model.Reservation{ID: 9, Date: yesterday()}, nil)
	h := newTestHandler(store)

	rec := doJSON(h.Delete, http.MethodDelete, "/v1/reservations/9", nil, withID("9"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), validate.MsgLockedDelete)
	store.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteMissingReservation(t *testing.T) {
	store := new(MockStore)
	store.On("GetByID", uint64(9)).Return(model.Reservation{}, repository.ErrReservationNotFound)
	h := newTestHandler(store)

	rec := doJSON(h.Delete, http.MethodDelete, "/v1/reservations/9", nil, withID("9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListDatesCoversAllDays(t *testing.T) {
	store := new(MockStore)
	store.On("ListDates").Return([]string{"2026-08-28", "2026-08-29", "2026-09-01"}, nil)
	h := newTestHandler(store)

	rec := doJSON(h.ListDates, http.MethodGet, "/v1/reservations/dates", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Dates []string `json:"dates"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2026-08-28", "2026-08-29", "2026-09-01"}, resp.Dates)
}

func TestListDatesBackendFailure(t *testing.T) {
	store := new(MockStore)
	store.On("ListDates").Return(nil, context.DeadlineExceeded)
	h := newTestHandler(store)

	rec := doJSON(h.ListDates, http.MethodGet, "/v1/reservations/dates", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListSlots(t *testing.T) {
	h := newTestHandler(new(MockStore))

	rec := doJSON(h.ListSlots, http.MethodGet, "/v1/reservations/slots", nil, nil)

	var resp struct {
		Slots []string `json:"slots"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Slots, 21)
	assert.Equal(t, "11:00 AM", resp.Slots[0])
	assert.Equal(t, "9:00 PM", resp.Slots[20])
}
