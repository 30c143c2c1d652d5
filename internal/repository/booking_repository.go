package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// BookingRepo provides operations over bookings and their attendees.
// Seat availability is never stored: it is derived on demand by
// summing non-cancelled bookings against the event's capacity columns.
// Cancelling a booking therefore frees its seats implicitly.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction control.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// bookedCounts holds the per-category sums of non-cancelled bookings.
type bookedCounts struct {
	general int
	student int
	chairs  int
}

const sumBookedQuery = `SELECT COALESCE(SUM(general_seats), 0),
	   COALESCE(SUM(student_seats), 0),
	   COALESCE(SUM(chairs), 0)
  FROM bookings
 WHERE event_id = ? AND booking_status <> 'Cancelled'`

// AvailabilityForEvent derives the availability snapshot for an event.
// The caller supplies the event so its capacity columns need not be
// re-read.  Available counts are floored at zero; overbooking through
// an admin edit must not surface as a negative number.
func (r *BookingRepo) AvailabilityForEvent(ctx context.Context, ev *model.Event) (*model.SeatAvailability, error) {
	var b bookedCounts
	err := r.db.QueryRowContext(ctx, sumBookedQuery, ev.ID).Scan(&b.general, &b.student, &b.chairs)
	if err != nil {
		return nil, err
	}
	return buildAvailability(ev, b), nil
}

func buildAvailability(ev *model.Event, b bookedCounts) *model.SeatAvailability {
	floor := func(n int) int {
		if n < 0 {
			return 0
		}
		return n
	}
	return &model.SeatAvailability{
		EventID:               ev.ID,
		TotalSeats:            ev.TotalSeats(),
		GeneralSeatsTotal:     model.IntPtr(ev.GeneralSeatsTotal),
		GeneralSeatsBooked:    model.IntPtr(b.general),
		GeneralSeatsAvailable: model.IntPtr(floor(ev.GeneralSeatsTotal - b.general)),
		StudentSeatsTotal:     model.IntPtr(ev.StudentSeatsTotal),
		StudentSeatsBooked:    model.IntPtr(b.student),
		StudentSeatsAvailable: model.IntPtr(floor(ev.StudentSeatsTotal - b.student)),
		ChairsTotal:           model.IntPtr(ev.ChairsTotal),
		ChairsBooked:          model.IntPtr(b.chairs),
		ChairsAvailable:       model.IntPtr(floor(ev.ChairsTotal - b.chairs)),
	}
}

// Create inserts a booking and its attendees atomically.  The event
// row is locked FOR UPDATE and the booked sums are recomputed inside
// the transaction, so two concurrent submissions cannot both pass the
// capacity check.  On a capacity conflict a *CapacityError naming the
// exhausted category is returned and nothing is written.  The booking
// ID, timestamps and initial statuses are populated on b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, attendees []model.Attendee) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the event row for the duration of the capacity check.
	const lockQ = `SELECT general_seats_total, student_seats_total, chairs_total
					 FROM events WHERE id = ? FOR UPDATE`
	var genTotal, stuTotal, chairTotal int
	if err := tx.QueryRowContext(ctx, lockQ, b.EventID).Scan(&genTotal, &stuTotal, &chairTotal); err != nil {
		if err == sql.ErrNoRows {
			return ErrEventNotFound
		}
		return err
	}

	var booked bookedCounts
	if err := tx.QueryRowContext(ctx, sumBookedQuery, b.EventID).Scan(&booked.general, &booked.student, &booked.chairs); err != nil {
		return err
	}
	if left := genTotal - booked.general; b.GeneralSeats > left {
		return &CapacityError{Category: "general", Requested: b.GeneralSeats, Available: max0(left)}
	}
	if left := stuTotal - booked.student; b.StudentSeats > left {
		return &CapacityError{Category: "student", Requested: b.StudentSeats, Available: max0(left)}
	}
	if left := chairTotal - booked.chairs; b.Chairs > left {
		return &CapacityError{Category: "chairs", Requested: b.Chairs, Available: max0(left)}
	}

	b.ID = uuid.New().String()
	b.PaymentStatus = model.PaymentStatusPending
	b.BookingStatus = model.BookingStatusConfirmed
	b.CreatedAt = time.Now().UTC()

	const ins = `INSERT INTO bookings
		(id, booking_ref, transaction_id, event_id, general_seats, student_seats, chairs,
		 total_amount, booker_name, booker_whatsapp, booker_email, payment_status,
		 booking_status, payment_screenshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, ins,
		b.ID, b.BookingRef, b.TransactionID, b.EventID,
		b.GeneralSeats, b.StudentSeats, b.Chairs, b.TotalAmount,
		b.BookerName, b.BookerWhatsApp, b.BookerEmail,
		b.PaymentStatus, b.BookingStatus, b.PaymentScreenshot, b.CreatedAt,
	); err != nil {
		return err
	}

	if err := insertAttendeesTx(ctx, tx, b.ID, attendees); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// insertAttendeesTx bulk-inserts attendee rows in a single statement.
// Passing an empty slice has no effect and returns nil.
func insertAttendeesTx(ctx context.Context, tx *sql.Tx, bookingID string, attendees []model.Attendee) error {
	if len(attendees) == 0 {
		return nil
	}
	query := `INSERT INTO attendees (booking_id, name, whatsapp, email, seat_type, needs_chair, is_main) VALUES `
	args := make([]interface{}, 0, len(attendees)*7)
	for i, a := range attendees {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		args = append(args, bookingID, a.Name, a.WhatsApp, a.Email, a.SeatType, a.NeedsChair, a.IsMain)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByRef loads a booking by its client-facing reference together
// with its attendees.  ErrBookingNotFound when absent.
func (r *BookingRepo) GetByRef(ctx context.Context, ref string) (*model.Booking, []model.Attendee, error) {
	const q = `SELECT id, booking_ref, transaction_id, event_id, general_seats, student_seats,
					  chairs, total_amount, booker_name, booker_whatsapp, booker_email,
					  payment_status, booking_status, created_at, verified_at
				 FROM bookings WHERE booking_ref = ?`
	var b model.Booking
	var email sql.NullString
	var verifiedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, ref).Scan(
		&b.ID, &b.BookingRef, &b.TransactionID, &b.EventID,
		&b.GeneralSeats, &b.StudentSeats, &b.Chairs, &b.TotalAmount,
		&b.BookerName, &b.BookerWhatsApp, &email,
		&b.PaymentStatus, &b.BookingStatus, &b.CreatedAt, &verifiedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}
	if email.Valid {
		s := email.String
		b.BookerEmail = &s
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		b.VerifiedAt = &t
	}

	const aq = `SELECT id, booking_id, name, whatsapp, email, seat_type, needs_chair, is_main
				  FROM attendees WHERE booking_id = ? ORDER BY is_main DESC, id`
	rows, err := r.db.QueryContext(ctx, aq, b.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	attendees := make([]model.Attendee, 0)
	for rows.Next() {
		var a model.Attendee
		if err := rows.Scan(&a.ID, &a.BookingID, &a.Name, &a.WhatsApp, &a.Email, &a.SeatType, &a.NeedsChair, &a.IsMain); err != nil {
			return nil, nil, err
		}
		attendees = append(attendees, a)
	}
	return &b, attendees, rows.Err()
}

// SetPaymentVerified records the outcome of a payment check on an
// existing booking.  Verification is a status transition only; it
// never touches seat counts.
func (r *BookingRepo) SetPaymentVerified(ctx context.Context, ref string, verified bool) error {
	status := model.PaymentStatusNotVerified
	var verifiedAt interface{}
	if verified {
		status = model.PaymentStatusVerified
		verifiedAt = time.Now().UTC()
	}
	const q = `UPDATE bookings SET payment_status = ?, verified_at = ? WHERE booking_ref = ?`
	res, err := r.db.ExecContext(ctx, q, status, verifiedAt, ref)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Cancel marks a booking Cancelled.  The availability derivation
// excludes cancelled bookings, so the seats are freed by this single
// status write.  Cancelling twice is a no-op that still succeeds.
func (r *BookingRepo) Cancel(ctx context.Context, ref string) error {
	const q = `UPDATE bookings SET booking_status = 'Cancelled' WHERE booking_ref = ?`
	res, err := r.db.ExecContext(ctx, q, ref)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such booking" from "already cancelled".
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE booking_ref = ?`, ref).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return ErrBookingNotFound
			}
			return err
		}
	}
	return nil
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
