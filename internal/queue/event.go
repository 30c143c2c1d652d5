// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingReceivedEvent is published when a booking is accepted and
// written to the store.  It carries enough for downstream consumers
// (booking log, admin notification hooks) to act without querying the
// primary database.  Payment verification state is deliberately
// absent: verification happens later and does not republish.
type BookingReceivedEvent struct {
	BookingRef   string `json:"booking_ref"`
	EventID      uint64 `json:"event_id"`
	EventTitle   string `json:"event_title"`
	EventDate    string `json:"event_date"`
	BookerName   string `json:"booker_name"`
	WhatsApp     string `json:"whatsapp"`
	GeneralSeats int    `json:"general_seats"`
	StudentSeats int    `json:"student_seats"`
	Chairs       int    `json:"chairs"`
	TotalAmount  int    `json:"total_amount"`
	CreatedAt    string `json:"created_at"`
}
