package ticket

import (
	"github.com/Another0Noob/stagelog/internal/normalize"
)

// Change records how re-normalization would rewrite one ticket.
type Change struct {
	Index      int    `json:"index"`
	ID         string `json:"id,omitempty"`
	OldTitle   string `json:"oldTitle"`
	NewTitle   string `json:"newTitle"`
	OldTheater string `json:"oldTheater"`
	NewTheater string `json:"newTheater"`
}

func (c Change) TitleChanged() bool   { return c.OldTitle != c.NewTitle }
func (c Change) TheaterChanged() bool { return c.OldTheater != c.NewTheater }

// References maps each title key to the first bracket-free spelling seen in
// tickets. Those spellings become the reference for every other ticket of the
// same show.
func References(tickets []Ticket) map[string]string {
	refs := make(map[string]string)
	for _, t := range tickets {
		if t.PerformanceName == "" || normalize.HasTag(t.PerformanceName) {
			continue
		}
		k := normalize.Key(t.PerformanceName)
		if k == "" {
			continue
		}
		if _, ok := refs[k]; !ok {
			refs[k] = t.PerformanceName
		}
	}
	return refs
}

// Renormalize runs both normalizers over tickets and returns the records that
// would change, in input order.
func Renormalize(tickets []Ticket) []Change {
	refs := References(tickets)

	var changes []Change
	for i, t := range tickets {
		c := Change{
			Index:      i,
			ID:         t.ID,
			OldTitle:   t.PerformanceName,
			NewTitle:   normalize.Title(t.PerformanceName, refs[normalize.Key(t.PerformanceName)]),
			OldTheater: t.Theater,
			NewTheater: normalize.Venue(t.Theater),
		}
		if c.TitleChanged() || c.TheaterChanged() {
			changes = append(changes, c)
		}
	}
	return changes
}

// Apply returns a copy of tickets with changes written back. Changes whose
// index is out of range are ignored.
func Apply(tickets []Ticket, changes []Change) []Ticket {
	out := make([]Ticket, len(tickets))
	copy(out, tickets)
	for _, c := range changes {
		if c.Index < 0 || c.Index >= len(out) {
			continue
		}
		out[c.Index].PerformanceName = c.NewTitle
		out[c.Index].Theater = c.NewTheater
	}
	return out
}
