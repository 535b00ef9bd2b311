package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "fieldbook/database/repository/booking"
	fieldRepo "fieldbook/database/repository/field"
	"fieldbook/models"
	"fieldbook/services/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFieldID = "field-1"
	testUserID  = "user-a"
	testDate    = "2026-03-11"
)

// fixedClock pins "now" to the morning before the test date so every
// grid hour on testDate is in the future.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeFieldRepo struct {
	fields map[string]*models.Field
}

func (r *fakeFieldRepo) Create(ctx context.Context, field *models.Field) error {
	r.fields[field.ID] = field
	return nil
}

func (r *fakeFieldRepo) GetByID(ctx context.Context, id string) (*models.Field, error) {
	field, ok := r.fields[id]
	if !ok {
		return nil, fieldRepo.ErrFieldNotFound
	}
	copied := *field
	return &copied, nil
}

func (r *fakeFieldRepo) List(ctx context.Context) ([]models.Field, error) {
	out := make([]models.Field, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFieldRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	if f, ok := r.fields[id]; ok {
		f.IsAvailable = available
	}
	return nil
}

type fakeBookingRepo struct {
	active          []models.Booking
	createErr       error
	created         []*models.Booking
	snapshotFetches int
}

func (r *fakeBookingRepo) GetActiveByFieldAndDate(ctx context.Context, fieldID, date string) ([]models.Booking, error) {
	r.snapshotFetches++
	out := make([]models.Booking, 0, len(r.active))
	for _, b := range r.active {
		if b.FieldID == fieldID && b.Date == date && b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CreateConflictFree(ctx context.Context, booking *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, b := range r.active {
		if b.IsActive && schedule.Overlaps(booking.StartHour, booking.EndHour, b.StartHour, b.EndHour) {
			return bookingRepo.ErrBookingConflict
		}
	}
	r.active = append(r.active, *booking)
	r.created = append(r.created, booking)
	return nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range r.active {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id, userID string) (*models.Booking, error) {
	for i := range r.active {
		b := &r.active[i]
		if b.ID == id && b.UserID == userID && b.IsActive {
			b.IsActive = false
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type memSessionStore struct {
	sessions map[string]models.BookingSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]models.BookingSession)}
}

func (s *memSessionStore) Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error {
	s.sessions[session.SessionID] = *session
	return nil
}

func (s *memSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (s *memSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type recordingEnqueuer struct {
	calls []string
}

func (e *recordingEnqueuer) EnqueueFieldRefresh(fieldID, date string) error {
	e.calls = append(e.calls, fieldID+"/"+date)
	return nil
}

func newTestService(bookings *fakeBookingRepo) (*DefaultBookingSessionService, *memSessionStore, *recordingEnqueuer) {
	fields := &fakeFieldRepo{fields: map[string]*models.Field{
		testFieldID: {
			ID:           testFieldID,
			Name:         "Center Court",
			Sport:        "football",
			Capacity:     10,
			PricePerHour: 25,
			IsAvailable:  true,
		},
	}}
	store := newMemSessionStore()
	enqueuer := &recordingEnqueuer{}
	svc := &DefaultBookingSessionService{
		Fields:       fields,
		Bookings:     bookings,
		Sessions:     store,
		Clock:        fixedClock{now: time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)},
		Tasks:        enqueuer,
		DefaultHours: schedule.OperatingHours{Open: 9, Close: 21},
		SessionTTL:   10 * time.Minute,
	}
	return svc, store, enqueuer
}

func TestStartSession(t *testing.T) {
	svc, store, _ := newTestService(&fakeBookingRepo{})

	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)

	assert.Equal(t, models.SelectionIdle, result.Session.Selection.State)
	assert.Len(t, result.Slots, 12)
	for _, s := range result.Slots {
		assert.Equal(t, models.SlotAvailable, s.Status)
	}
	assert.Contains(t, store.sessions, result.Session.SessionID)
}

func TestStartSession_RejectsMalformedDate(t *testing.T) {
	svc, _, _ := newTestService(&fakeBookingRepo{})
	_, err := svc.StartSession(context.Background(), testUserID, testFieldID, "11-03-2026")
	assert.Error(t, err)
}

func TestStartSession_UnknownField(t *testing.T) {
	svc, _, _ := newTestService(&fakeBookingRepo{})
	_, err := svc.StartSession(context.Background(), testUserID, "missing", testDate)
	assert.ErrorIs(t, err, fieldRepo.ErrFieldNotFound)
}

func TestSessionOwnership(t *testing.T) {
	svc, _, _ := newTestService(&fakeBookingRepo{})
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)

	_, err = svc.RenderSession(context.Background(), result.Session.SessionID, "user-b")
	assert.ErrorIs(t, err, ErrSessionOwner)

	_, err = svc.RenderSession(context.Background(), "no-such-session", testUserID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSelectHour_FullFlowToQuote(t *testing.T) {
	svc, store, _ := newTestService(&fakeBookingRepo{})
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)
	sessionID := result.Session.SessionID

	result, err = svc.SelectHour(context.Background(), sessionID, testUserID, 10)
	require.NoError(t, err)
	assert.Equal(t, models.SelectionStartChosen, result.Session.Selection.State)
	assert.Nil(t, result.Quote)

	result, err = svc.SelectHour(context.Background(), sessionID, testUserID, 13)
	require.NoError(t, err)
	require.NotNil(t, result.Quote)
	assert.Equal(t, models.SelectionRangeChosen, result.Session.Selection.State)
	assert.Equal(t, 10, result.Quote.StartHour)
	assert.Equal(t, 14, result.Quote.EndHour)
	assert.Equal(t, 100.0, result.Quote.TotalPrice)

	// Selection survives in the store between requests.
	assert.Equal(t, models.SelectionRangeChosen, store.sessions[sessionID].Selection.State)
}

func TestSelectHour_IgnoresBookedHour(t *testing.T) {
	bookings := &fakeBookingRepo{active: []models.Booking{{
		ID: "bk-1", FieldID: testFieldID, UserID: "user-b", Date: testDate,
		StartHour: 10, EndHour: 12, IsActive: true,
	}}}
	svc, _, _ := newTestService(bookings)
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)

	result, err = svc.SelectHour(context.Background(), result.Session.SessionID, testUserID, 10)
	require.NoError(t, err)
	assert.Equal(t, models.SelectionIdle, result.Session.Selection.State)
}

func TestSelectHour_RangeSpanningBookedMiddleResets(t *testing.T) {
	// 13 and 15 are free to click but 14 is taken, so committing the
	// range [13, 16) is rejected and the selection resets.
	bookings := &fakeBookingRepo{active: []models.Booking{{
		ID: "bk-1", FieldID: testFieldID, UserID: "user-b", Date: testDate,
		StartHour: 14, EndHour: 15, IsActive: true,
	}}}
	svc, store, _ := newTestService(bookings)
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)
	sessionID := result.Session.SessionID

	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 13)
	require.NoError(t, err)
	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 15)

	rangeErr, ok := schedule.AsRangeError(err)
	require.True(t, ok)
	assert.Equal(t, schedule.ReasonOverlap, rangeErr.Reason)
	assert.Equal(t, models.SelectionIdle, store.sessions[sessionID].Selection.State)
}

func TestSelectHour_OverlapRejectionRefreshesSnapshot(t *testing.T) {
	// An overlap rejection forces a snapshot re-fetch so the next
	// render reflects the booking that blocked the range.
	bookings := &fakeBookingRepo{active: []models.Booking{{
		ID: "bk-1", FieldID: testFieldID, UserID: "user-b", Date: testDate,
		StartHour: 14, EndHour: 15, IsActive: true,
	}}}
	svc, store, _ := newTestService(bookings)
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)
	sessionID := result.Session.SessionID
	fetchesAfterStart := bookings.snapshotFetches

	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 13)
	require.NoError(t, err)
	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 15)
	_, ok := schedule.AsRangeError(err)
	require.True(t, ok)

	assert.Greater(t, bookings.snapshotFetches, fetchesAfterStart)
	saved := store.sessions[sessionID]
	require.Len(t, saved.Bookings, 1)
	assert.Equal(t, "bk-1", saved.Bookings[0].ID)
}

func TestConfirmBooking(t *testing.T) {
	bookings := &fakeBookingRepo{}
	svc, store, enqueuer := newTestService(bookings)
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)
	sessionID := result.Session.SessionID

	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 10)
	require.NoError(t, err)
	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 13)
	require.NoError(t, err)

	record, err := svc.ConfirmBooking(context.Background(), sessionID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, testUserID, record.UserID)
	assert.Equal(t, 10, record.StartHour)
	assert.Equal(t, 14, record.EndHour)
	assert.Equal(t, 100.0, record.TotalPrice)
	assert.True(t, record.IsActive)
	require.Len(t, bookings.created, 1)

	// The session is gone and the availability refresh is queued.
	assert.NotContains(t, store.sessions, sessionID)
	assert.Equal(t, []string{testFieldID + "/" + testDate}, enqueuer.calls)
}

func TestConfirmBooking_RequiresCommittedRange(t *testing.T) {
	svc, _, _ := newTestService(&fakeBookingRepo{})
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(context.Background(), result.Session.SessionID, testUserID)
	assert.ErrorIs(t, err, ErrNoRangeSelected)
}

func TestConfirmBooking_LostRaceResetsSelection(t *testing.T) {
	bookings := &fakeBookingRepo{}
	svc, store, enqueuer := newTestService(bookings)
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)
	sessionID := result.Session.SessionID

	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 10)
	require.NoError(t, err)
	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 13)
	require.NoError(t, err)

	// A competing booking lands between validation and submission.
	rival := models.Booking{
		ID: "bk-rival", FieldID: testFieldID, UserID: "user-b", Date: testDate,
		StartHour: 11, EndHour: 12, IsActive: true,
	}
	bookings.active = append(bookings.active, rival)

	_, err = svc.ConfirmBooking(context.Background(), sessionID, testUserID)
	rangeErr, ok := schedule.AsRangeError(err)
	require.True(t, ok)
	assert.Equal(t, schedule.ReasonOverlap, rangeErr.Reason)

	// Selection reset, snapshot refreshed with the rival booking, no
	// refresh task queued.
	saved := store.sessions[sessionID]
	assert.Equal(t, models.SelectionIdle, saved.Selection.State)
	require.Len(t, saved.Bookings, 1)
	assert.Equal(t, "bk-rival", saved.Bookings[0].ID)
	assert.Empty(t, enqueuer.calls)
}

func TestConfirmBooking_TransportFailurePreservesSelection(t *testing.T) {
	bookings := &fakeBookingRepo{}
	svc, store, _ := newTestService(bookings)
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)
	sessionID := result.Session.SessionID

	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 10)
	require.NoError(t, err)
	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 13)
	require.NoError(t, err)

	bookings.createErr = errors.New("connection reset")
	_, err = svc.ConfirmBooking(context.Background(), sessionID, testUserID)
	require.Error(t, err)
	_, ok := schedule.AsRangeError(err)
	assert.False(t, ok)

	// The committed range is still there for a retry.
	saved := store.sessions[sessionID]
	assert.Equal(t, models.SelectionRangeChosen, saved.Selection.State)
	assert.Equal(t, 10, saved.Selection.StartHour)
	assert.Equal(t, 14, saved.Selection.EndHour)

	// Retry succeeds once the transport recovers.
	bookings.createErr = nil
	record, err := svc.ConfirmBooking(context.Background(), sessionID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 10, record.StartHour)
}

func TestConfirmBooking_StaleSelectionAfterCancelledBooking(t *testing.T) {
	// A range committed while the snapshot was fresh stays valid on
	// confirm even if unrelated bookings were cancelled meanwhile.
	bookings := &fakeBookingRepo{active: []models.Booking{{
		ID: "bk-1", FieldID: testFieldID, UserID: "user-b", Date: testDate,
		StartHour: 18, EndHour: 19, IsActive: true,
	}}}
	svc, _, _ := newTestService(bookings)
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)
	sessionID := result.Session.SessionID

	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 9)
	require.NoError(t, err)
	_, err = svc.SelectHour(context.Background(), sessionID, testUserID, 10)
	require.NoError(t, err)

	bookings.active[0].IsActive = false

	record, err := svc.ConfirmBooking(context.Background(), sessionID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 9, record.StartHour)
	assert.Equal(t, 11, record.EndHour)
}

func TestCancelSession(t *testing.T) {
	svc, store, _ := newTestService(&fakeBookingRepo{})
	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)

	require.NoError(t, svc.CancelSession(context.Background(), result.Session.SessionID))
	assert.NotContains(t, store.sessions, result.Session.SessionID)
}

func TestCancelBooking(t *testing.T) {
	bookings := &fakeBookingRepo{active: []models.Booking{{
		ID: "bk-1", FieldID: testFieldID, UserID: testUserID, Date: testDate,
		StartHour: 10, EndHour: 12, IsActive: true,
	}}}
	svc, _, enqueuer := newTestService(bookings)

	record, err := svc.CancelBooking(context.Background(), "bk-1", testUserID)
	require.NoError(t, err)
	assert.False(t, record.IsActive)
	assert.Equal(t, []string{testFieldID + "/" + testDate}, enqueuer.calls)

	// Cancelling someone else's booking reads as not-found.
	_, err = svc.CancelBooking(context.Background(), "bk-1", "user-b")
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestListBookings(t *testing.T) {
	bookings := &fakeBookingRepo{active: []models.Booking{
		{ID: "bk-1", FieldID: testFieldID, UserID: testUserID, Date: testDate, StartHour: 10, EndHour: 12, IsActive: true},
		{ID: "bk-2", FieldID: testFieldID, UserID: "user-b", Date: testDate, StartHour: 13, EndHour: 14, IsActive: true},
	}}
	svc, _, _ := newTestService(bookings)

	mine, err := svc.ListBookings(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "bk-1", mine[0].ID)
}

func TestFieldOperatingHoursOverride(t *testing.T) {
	svc, _, _ := newTestService(&fakeBookingRepo{})
	fields := svc.Fields.(*fakeFieldRepo)
	fields.fields[testFieldID].OpenHour = 7
	fields.fields[testFieldID].CloseHour = 10

	result, err := svc.StartSession(context.Background(), testUserID, testFieldID, testDate)
	require.NoError(t, err)
	require.Len(t, result.Slots, 3)
	assert.Equal(t, 7, result.Slots[0].Hour)
	assert.Equal(t, 9, result.Slots[2].Hour)
}
