package model

// Artist is one performer billed on an event.  Category orders the
// billing: Primary artists are listed before Accompanists everywhere
// the lineup is displayed.
//
// Fields:
//  Name     – performer name as printed on the page.
//  Genre    – short genre label ("Hindustani Vocal", "Tabla", ...).
//  Category – "Primary" or "Accompanist".
type Artist struct {
	Name     string `json:"name"`     // artists[].name
	Genre    string `json:"genre"`    // artists[].genre
	Category string `json:"category"` // artists[].category
}

// Event status values as stored in the events table.  Exactly one
// event is expected to be "upcoming" at any time.
const (
	EventStatusUpcoming = "upcoming"
	EventStatusPast     = "past"
)

// Event describes one baithak as served by the event feed.  Field
// names mirror the feed contract; optional columns are pointers so a
// missing value is distinguishable from an empty string.
//
// Fields:
//  ID                 – primary key identifier.
//  Title              – event title.
//  SubTitle           – optional subtitle appended after the title.
//  Date               – ISO date of the event (YYYY-MM-DD).
//  DisplayDate        – optional pre-formatted date override.
//  ConcertTime        – 24h start time ("18:30"), optional.
//  MealTime           – 24h meal time, optional.
//  MealType           – "dinner", "lunch", ... optional.
//  MealOrder          – "before" or "after" the baithak, optional.
//  EventStatus        – "upcoming" or "past".
//  Artists            – billed lineup.
//  TicketPriceGeneral – price of one general seat in rupees.
//  TicketPriceStudent – price of one student seat in rupees.
//  GeneralSeatsTotal  – capacity of the general category.
//  StudentSeatsTotal  – capacity of the student category.
//  ChairsTotal        – number of chairs that can be provided.
//  Inclusions         – free-text "what's included" line, optional.
//  ContributionNote   – free-text note shown under the price, optional.
//  ImageHero          – hero image link, optional.
//  ImagePast          – past-gallery image link, optional.
//  ImageAlt           – alt text for images, optional.
//  GalleryLink        – link to the photo gallery, optional.
//  RecordingLink      – link to the recording, optional.
type Event struct {
	ID                 uint64   `json:"id"`
	Title              string   `json:"title"`
	SubTitle           *string  `json:"sub_title,omitempty"`
	Date               string   `json:"date"`
	DisplayDate        *string  `json:"display_date,omitempty"`
	ConcertTime        *string  `json:"concert_time,omitempty"`
	MealTime           *string  `json:"meal_time,omitempty"`
	MealType           *string  `json:"meal_type,omitempty"`
	MealOrder          *string  `json:"meal_order,omitempty"`
	EventStatus        string   `json:"event_status"`
	Artists            []Artist `json:"artists"`
	TicketPriceGeneral int      `json:"ticket_price_general"`
	TicketPriceStudent int      `json:"ticket_price_student"`
	GeneralSeatsTotal  int      `json:"general_seats_total"`
	StudentSeatsTotal  int      `json:"student_seats_total"`
	ChairsTotal        int      `json:"chairs_total"`
	Inclusions         *string  `json:"inclusions,omitempty"`
	ContributionNote   *string  `json:"contribution_note,omitempty"`
	ImageHero          *string  `json:"image_hero,omitempty"`
	ImagePast          *string  `json:"image_past,omitempty"`
	ImageAlt           *string  `json:"image_alt,omitempty"`
	GalleryLink        *string  `json:"event_gallery_link,omitempty"`
	RecordingLink      *string  `json:"event_recording_link,omitempty"`
}

// TotalSeats returns the combined general+student capacity.
func (e *Event) TotalSeats() int {
	return e.GeneralSeatsTotal + e.StudentSeatsTotal
}
