package kopisapi

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const (
	defaultRows     = 20
	defaultKidState = "N"

	// maxSearchSpan is the widest window KOPIS accepts for a listing.
	maxSearchSpan = 31 * 24 * time.Hour
	// boxOfficeSpan is the default lookback of the weekly box office.
	boxOfficeSpan = 7 * 24 * time.Hour
)

// FormatDate renders t as the YYYYMMDD form KOPIS expects.
func FormatDate(t time.Time) string {
	return t.Format("20060102")
}

// searchWindow resolves the stdate/eddate pair of a search.
//
// Without a start date the window opens a year ago. An explicit end date is
// used as given. Otherwise the window closes at today, or 31 days after an
// explicit start date if that comes first.
func searchWindow(q SearchQuery, now time.Time) (start, end time.Time) {
	start = q.Start
	if start.IsZero() {
		start = now.AddDate(-1, 0, 0)
	}

	switch {
	case !q.End.IsZero():
		end = q.End
	case !q.Start.IsZero():
		end = q.Start.Add(maxSearchSpan)
		if now.Before(end) {
			end = now
		}
	default:
		end = now
	}
	return start, end
}

func (q SearchQuery) params(now time.Time) listParams {
	start, end := searchWindow(q, now)
	p := listParams{
		StartDate: FormatDate(start),
		EndDate:   FormatDate(end),
		Page:      q.Page,
		Rows:      q.Rows,
		Title:     q.Title,
		Genre:     q.Genre,
		KidState:  q.KidState,
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Rows < 1 {
		p.Rows = defaultRows
	}
	if p.KidState == "" {
		p.KidState = defaultKidState
	}
	return p
}

// Search lists performances whose title matches q.Title.
//
// Page defaults to 1, Rows to 20, and KidState to "N" (adult listings only).
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]Performance, error) {
	var list performanceList
	if err := c.doXML(ctx, "/pblprfr", toValues(q.params(c.now())), &list); err != nil {
		return nil, fmt.Errorf("search %q: %w", q.Title, err)
	}
	return list.Items, nil
}

// Detail fetches the full record of a single performance.
func (c *Client) Detail(ctx context.Context, id string) (*PerformanceDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("detail: empty performance id")
	}

	var list detailList
	if err := c.doXML(ctx, "/pblprfr/"+url.PathEscape(id), nil, &list); err != nil {
		return nil, fmt.Errorf("detail %s: %w", id, err)
	}
	if len(list.Items) == 0 {
		return nil, fmt.Errorf("detail %s: %w", id, ErrNotFound)
	}
	return &list.Items[0], nil
}

// BoxOffice returns the ranked box office for genre between start and end.
// A zero end means today and a zero start means seven days before end.
func (c *Client) BoxOffice(ctx context.Context, genre Genre, start, end time.Time) ([]BoxOfficeEntry, error) {
	if end.IsZero() {
		end = c.now()
	}
	if start.IsZero() {
		start = end.Add(-boxOfficeSpan)
	}

	p := boxOfficeParams{
		StartDate: FormatDate(start),
		EndDate:   FormatDate(end),
		Genre:     genre,
	}

	var list boxOfficeList
	if err := c.doXML(ctx, "/boxoffice", toValues(p), &list); err != nil {
		return nil, fmt.Errorf("box office: %w", err)
	}

	out := make([]BoxOfficeEntry, len(list.Items))
	for i, row := range list.Items {
		out[i] = row.entry()
	}
	return out, nil
}
