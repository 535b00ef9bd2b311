package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "fieldbook/database/repository/booking"
	"fieldbook/models"
	"fieldbook/services/schedule"
	"fieldbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// StartSession opens a scheduling session for one field+date: it takes
// the point-in-time snapshot of active bookings, stores it alongside an
// idle selection, and returns the first classified render.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context, userID, fieldID, date string) (*SessionResult, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	field, err := s.Fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch field: %w", err)
	}
	snapshot, err := s.Bookings.GetActiveByFieldAndDate(ctx, fieldID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking snapshot: %w", err)
	}

	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		FieldID:   fieldID,
		Date:      date,
		Field:     *field,
		Bookings:  snapshot,
		Selection: models.NewSelection(),
	}
	if err := s.Sessions.Save(ctx, session, s.SessionTTL); err != nil {
		return nil, err
	}

	return s.render(session), nil
}

// RenderSession re-fetches the booking snapshot and re-classifies the
// grid. The committed selection, if any, is kept; confirmation is where
// a selection invalidated by a concurrent booking gets caught.
func (s *DefaultBookingSessionService) RenderSession(ctx context.Context, sessionID, userID string) (*SessionResult, error) {
	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.Bookings.GetActiveByFieldAndDate(ctx, session.FieldID, session.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh booking snapshot: %w", err)
	}
	session.Bookings = snapshot
	if err := s.Sessions.Save(ctx, session, s.SessionTTL); err != nil {
		return nil, err
	}

	return s.render(session), nil
}

// SelectHour applies one click event. Clicks on non-selectable hours
// are a no-op. When the click commits a range, the range is pre-checked
// locally; an overlap (possible when the range spans hours between two
// selectable endpoints) resets the selection and refreshes the
// snapshot per the rejection contract.
func (s *DefaultBookingSessionService) SelectHour(ctx context.Context, sessionID, userID string, hour int) (*SessionResult, error) {
	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	slots := s.classify(session, now)
	selectable := schedule.SelectableHours(slots)
	session.Selection = schedule.ClickSlot(session.Selection, hour, selectable)

	result := &SessionResult{Session: session, Slots: slots}
	if session.Selection.State == models.SelectionRangeChosen {
		quote, err := schedule.ValidateRange(session.Selection, session.Date, now, session.Bookings, session.Field.PricePerHour)
		if rangeErr, ok := schedule.AsRangeError(err); ok {
			if rangeErr.Reason == schedule.ReasonOverlap {
				if fresh, ferr := s.Bookings.GetActiveByFieldAndDate(ctx, session.FieldID, session.Date); ferr == nil {
					session.Bookings = fresh
				}
			}
			s.rejectSelection(ctx, session, rangeErr.Reason)
			return nil, err
		}
		if err != nil {
			return nil, err
		}
		result.Quote = &quote
	}

	if err := s.Sessions.Save(ctx, session, s.SessionTTL); err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmBooking validates the committed range against a fresh snapshot
// and submits it through the transactional check-and-insert. Domain
// rejections (past, overlap) reset the selection; transport failures
// preserve it so the user can retry without re-selecting.
func (s *DefaultBookingSessionService) ConfirmBooking(ctx context.Context, sessionID, userID string) (*models.Booking, error) {
	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Selection.State != models.SelectionRangeChosen {
		return nil, ErrNoRangeSelected
	}

	snapshot, err := s.Bookings.GetActiveByFieldAndDate(ctx, session.FieldID, session.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh booking snapshot: %w", err)
	}
	session.Bookings = snapshot

	quote, err := schedule.ValidateRange(session.Selection, session.Date, s.Clock.Now(), session.Bookings, session.Field.PricePerHour)
	if rangeErr, ok := schedule.AsRangeError(err); ok {
		s.rejectSelection(ctx, session, rangeErr.Reason)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	record := &models.Booking{
		ID:         uuid.New().String(),
		FieldID:    session.FieldID,
		UserID:     session.UserID,
		Date:       session.Date,
		StartHour:  quote.StartHour,
		EndHour:    quote.EndHour,
		TotalPrice: quote.TotalPrice,
		IsActive:   true,
		CreatedAt:  s.Clock.Now(),
	}

	if err := s.Bookings.CreateConflictFree(ctx, record); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingConflict) {
			// The atomic re-check lost the race: surface the same
			// overlap shape as a local rejection.
			if fresh, ferr := s.Bookings.GetActiveByFieldAndDate(ctx, session.FieldID, session.Date); ferr == nil {
				session.Bookings = fresh
			}
			s.rejectSelection(ctx, session, schedule.ReasonOverlap)
			return nil, schedule.NewOverlapError()
		}
		return nil, fmt.Errorf("booking submission failed: %w", err)
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("failed to delete booking session after confirmation",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
	s.enqueueRefresh(session.FieldID, session.Date)

	return record, nil
}

func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *DefaultBookingSessionService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}

func (s *DefaultBookingSessionService) CancelBooking(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	booking, err := s.Bookings.Cancel(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	s.enqueueRefresh(booking.FieldID, booking.Date)
	return booking, nil
}

func (s *DefaultBookingSessionService) loadOwned(ctx context.Context, sessionID, userID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionOwner
	}
	return session, nil
}

func (s *DefaultBookingSessionService) operatingHours(field models.Field) schedule.OperatingHours {
	if field.CloseHour > field.OpenHour && field.CloseHour > 0 {
		return schedule.OperatingHours{Open: field.OpenHour, Close: field.CloseHour}
	}
	return s.DefaultHours
}

func (s *DefaultBookingSessionService) classify(session *models.BookingSession, now time.Time) []models.Slot {
	grid := schedule.BuildGrid(s.operatingHours(session.Field))
	return schedule.Classify(grid, session.Date, now, session.UserID, session.Bookings)
}

func (s *DefaultBookingSessionService) render(session *models.BookingSession) *SessionResult {
	return &SessionResult{
		Session: session,
		Slots:   s.classify(session, s.Clock.Now()),
	}
}

// rejectSelection applies the rejection contract: the selection resets
// to idle and the session is saved with whatever snapshot the caller
// left on it. Save failures are logged, not surfaced, so the rejection
// reason reaches the user.
func (s *DefaultBookingSessionService) rejectSelection(ctx context.Context, session *models.BookingSession, reason string) {
	session.Selection = models.NewSelection()
	if err := s.Sessions.Save(ctx, session, s.SessionTTL); err != nil {
		utils.GetLogger().Warn("failed to persist session after rejection",
			zap.String("sessionID", session.SessionID),
			zap.String("reason", reason),
			zap.Error(err))
	}
}

func (s *DefaultBookingSessionService) enqueueRefresh(fieldID, date string) {
	if s.Tasks == nil {
		return
	}
	if err := s.Tasks.EnqueueFieldRefresh(fieldID, date); err != nil {
		utils.GetLogger().Warn("failed to enqueue field availability refresh",
			zap.String("fieldID", fieldID), zap.Error(err))
	}
}
