package repository

import (
	"context"
	"database/sql"

	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// EventRepo provides read access to events and their artist lineups.
// The events table is the system's single source of event data; the
// public feed, the wizard and the availability derivation all read
// from it.  All timestamp fields are assumed to be stored in UTC.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning events and bookings.
func (r *EventRepo) DB() *sql.DB { return r.db }

// EventRecord mirrors the schema of the events table.  It is used
// internally by the repository when scanning rows; business logic
// should use model.Event, which ListAll and GetByID return.
type EventRecord struct {
	ID                 uint64
	Title              string
	SubTitle           sql.NullString
	Date               string
	DisplayDate        sql.NullString
	ConcertTime        sql.NullString
	MealTime           sql.NullString
	MealType           sql.NullString
	MealOrder          sql.NullString
	EventStatus        string
	TicketPriceGeneral int
	TicketPriceStudent int
	GeneralSeatsTotal  int
	StudentSeatsTotal  int
	ChairsTotal        int
	Inclusions         sql.NullString
	ContributionNote   sql.NullString
	ImageHero          sql.NullString
	ImagePast          sql.NullString
	ImageAlt           sql.NullString
	GalleryLink        sql.NullString
	RecordingLink      sql.NullString
}

const eventColumns = `id, title, sub_title, date, display_date, concert_time, meal_time,
	meal_type, meal_order, event_status, ticket_price_general, ticket_price_student,
	general_seats_total, student_seats_total, chairs_total, inclusions, contribution_note,
	image_hero, image_past, image_alt, gallery_link, recording_link`

// ListAll returns every event with its artist lineup, upcoming
// events first and past events newest-first within their group.
// The page shell renders both groups from this single feed.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events
		  ORDER BY (event_status = 'upcoming') DESC, date DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var rec EventRecord
		if err := scanEvent(rows, &rec); err != nil {
			return nil, err
		}
		events = append(events, recordToEvent(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range events {
		artists, err := r.artistsForEvent(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].Artists = artists
	}
	return events, nil
}

// GetByID returns a single event with its lineup.  When no event with
// the given ID exists, ErrEventNotFound is returned.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	var rec EventRecord
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &rec); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	ev := recordToEvent(rec)
	artists, err := r.artistsForEvent(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	ev.Artists = artists
	return &ev, nil
}

// artistsForEvent loads the lineup in billing order.
func (r *EventRepo) artistsForEvent(ctx context.Context, eventID uint64) ([]model.Artist, error) {
	const q = `SELECT name, genre, category FROM artists WHERE event_id = ? ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	artists := make([]model.Artist, 0)
	for rows.Next() {
		var a model.Artist
		if err := rows.Scan(&a.Name, &a.Genre, &a.Category); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner, rec *EventRecord) error {
	return s.Scan(
		&rec.ID, &rec.Title, &rec.SubTitle, &rec.Date, &rec.DisplayDate,
		&rec.ConcertTime, &rec.MealTime, &rec.MealType, &rec.MealOrder,
		&rec.EventStatus, &rec.TicketPriceGeneral, &rec.TicketPriceStudent,
		&rec.GeneralSeatsTotal, &rec.StudentSeatsTotal, &rec.ChairsTotal,
		&rec.Inclusions, &rec.ContributionNote, &rec.ImageHero, &rec.ImagePast,
		&rec.ImageAlt, &rec.GalleryLink, &rec.RecordingLink,
	)
}

func recordToEvent(rec EventRecord) model.Event {
	return model.Event{
		ID:                 rec.ID,
		Title:              rec.Title,
		SubTitle:           nullStr(rec.SubTitle),
		Date:               rec.Date,
		DisplayDate:        nullStr(rec.DisplayDate),
		ConcertTime:        nullStr(rec.ConcertTime),
		MealTime:           nullStr(rec.MealTime),
		MealType:           nullStr(rec.MealType),
		MealOrder:          nullStr(rec.MealOrder),
		EventStatus:        rec.EventStatus,
		TicketPriceGeneral: rec.TicketPriceGeneral,
		TicketPriceStudent: rec.TicketPriceStudent,
		GeneralSeatsTotal:  rec.GeneralSeatsTotal,
		StudentSeatsTotal:  rec.StudentSeatsTotal,
		ChairsTotal:        rec.ChairsTotal,
		Inclusions:         nullStr(rec.Inclusions),
		ContributionNote:   nullStr(rec.ContributionNote),
		ImageHero:          nullStr(rec.ImageHero),
		ImagePast:          nullStr(rec.ImagePast),
		ImageAlt:           nullStr(rec.ImageAlt),
		GalleryLink:        nullStr(rec.GalleryLink),
		RecordingLink:      nullStr(rec.RecordingLink),
	}
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
