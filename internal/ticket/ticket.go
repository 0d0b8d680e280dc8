// Package ticket holds the ticket record shape shared with the ticket backend
// and bulk re-normalization of exported records.
package ticket

// Ticket is one logged attendance, as served by the ticket backend.
type Ticket struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`           // YYYY-MM-DD
	Time            string   `json:"time,omitempty"` // HH:MM:SS
	PerformanceName string   `json:"performanceName"`
	Genre           string   `json:"genre,omitempty"` // "연극" or "뮤지컬"
	IsChild         bool     `json:"isChild,omitempty"`
	Theater         string   `json:"theater"`
	Seat            string   `json:"seat,omitempty"`
	TicketPrice     int      `json:"ticketPrice,omitempty"`
	Companion       string   `json:"companion,omitempty"`
	MDPrice         int      `json:"mdPrice,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	Review          string   `json:"review,omitempty"`
	PosterURL       string   `json:"posterUrl,omitempty"`
	Casting         []string `json:"casting,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// Titles returns the performance names of tickets in order.
func Titles(tickets []Ticket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.PerformanceName
	}
	return out
}
