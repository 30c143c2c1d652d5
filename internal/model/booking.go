package model

import "time"

// Booking status and payment status values mirror the columns kept in
// the bookings table.  Cancelled bookings no longer count against
// seat availability.
const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"

	PaymentStatusPending     = "Pending Verification"
	PaymentStatusVerified    = "Verified"
	PaymentStatusNotVerified = "Not Verified"
)

// Booking records one submitted reservation for an event.  A booking
// groups one or more attendees under a single payment reference.
//
// Fields:
//  ID                – server-generated record identifier (UUID).
//  BookingRef        – client-facing reference ("LRB" + 4 digits).
//  TransactionID     – payment reference quoted to the booker; equals
//                      BookingRef in the current flow.
//  EventID           – event being booked.
//  GeneralSeats      – general seats requested.
//  StudentSeats      – student seats requested.
//  Chairs            – chairs requested.
//  TotalAmount       – amount in rupees for all seats.
//  BookerName        – main attendee's name.
//  BookerWhatsApp    – main attendee's WhatsApp number (+91...).
//  BookerEmail       – optional email of the main attendee.
//  PaymentStatus     – "Pending Verification", "Verified", "Not Verified".
//  BookingStatus     – "Confirmed" or "Cancelled".
//  PaymentScreenshot – optional proof of payment as a data URL.
//  CreatedAt         – creation timestamp.
//  VerifiedAt        – when payment was verified (nullable).
type Booking struct {
	ID                string     // bookings.id
	BookingRef        string     // bookings.booking_ref
	TransactionID     string     // bookings.transaction_id
	EventID           uint64     // bookings.event_id
	GeneralSeats      int        // bookings.general_seats
	StudentSeats      int        // bookings.student_seats
	Chairs            int        // bookings.chairs
	TotalAmount       int        // bookings.total_amount
	BookerName        string     // bookings.booker_name
	BookerWhatsApp    string     // bookings.booker_whatsapp
	BookerEmail       *string    // bookings.booker_email (nullable)
	PaymentStatus     string     // bookings.payment_status
	BookingStatus     string     // bookings.booking_status
	PaymentScreenshot *string    // bookings.payment_screenshot (nullable)
	CreatedAt         time.Time  // bookings.created_at
	VerifiedAt        *time.Time // bookings.verified_at (nullable)
}

// Attendee seat types.  A chair is an add-on request on top of a
// general or student seat, not a seat type of its own.
const (
	SeatTypeGeneral = "General"
	SeatTypeStudent = "Student"
)

// Attendee is one person covered by a booking.  The attendee at index
// zero is the main contact and the only one with WhatsApp/email
// captured.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – owning booking.
//  Name       – attendee name, title-cased.
//  WhatsApp   – contact number, main attendee only.
//  Email      – optional email, main attendee only.
//  SeatType   – "General" or "Student".
//  NeedsChair – whether a chair was requested for this person.
//  IsMain     – true for exactly one attendee per booking.
type Attendee struct {
	ID         uint64 `json:"-"`
	BookingID  string `json:"-"`
	Name       string `json:"name"`
	WhatsApp   string `json:"whatsapp"`
	Email      string `json:"email"`
	SeatType   string `json:"seatType"`
	NeedsChair bool   `json:"needsChair"`
	IsMain     bool   `json:"isMain"`
}
