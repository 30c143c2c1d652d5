package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// BookingRequest is the submission payload posted at the wizard's
// final confirmation step.  Field names match the backend contract.
type BookingRequest struct {
	BookingID     string `json:"bookingId"`
	TransactionID string `json:"transactionId"`
	Timestamp     string `json:"timestamp"`
	Event         struct {
		ID uint64 `json:"id"`
	} `json:"event"`
	Seats struct {
		General int `json:"general"`
		Student int `json:"student"`
		Chairs  int `json:"chairs"`
	} `json:"seats"`
	TotalAmount       int              `json:"totalAmount"`
	Attendees         []model.Attendee `json:"attendees"`
	PaymentScreenshot *string          `json:"paymentScreenshot,omitempty"`
}

// BookingResult is the backend's accept/reject answer.  On rejection
// Error carries a human-readable reason suitable for direct display.
type BookingResult struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	Error     string `json:"error"`
}

// HTTPClient talks to the booking backend over its JSON API.  It
// implements Client and additionally exposes the event feed and the
// booking submission, so a single configured instance can back all
// three of the wizard's remote collaborators.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient builds an HTTPClient for the given base URL, e.g.
// "http://localhost:8080".  A short default timeout keeps a dead
// backend from hanging the wizard's flow-start poll.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Availability fetches the per-category seat counts for one event.
func (c *HTTPClient) Availability(ctx context.Context, eventID uint64) (*model.SeatAvailability, error) {
	var snap model.SeatAvailability
	url := fmt.Sprintf("%s/v1/events/%d/availability", c.BaseURL, eventID)
	if err := c.getJSON(ctx, url, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Events fetches the full event feed.  The wizard picks the single
// upcoming entry out of it; the page shell renders the rest.
func (c *HTTPClient) Events(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	url := c.BaseURL + "/v1/events"
	if err := c.getJSON(ctx, url, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Submit posts a completed booking.  A decodable rejection comes back
// as a BookingResult with Success=false and a nil error; only
// transport-level failures return a non-nil error.
func (c *HTTPClient) Submit(ctx context.Context, req BookingRequest) (BookingResult, error) {
	var result BookingResult

	body, err := json.Marshal(req)
	if err != nil {
		return result, fmt.Errorf("encode booking: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/bookings", bytes.NewReader(body))
	if err != nil {
		return result, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode booking response (status %d): %w", resp.StatusCode, err)
	}
	return result, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
