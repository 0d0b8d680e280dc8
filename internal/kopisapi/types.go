package kopisapi

import (
	"fmt"
	"strings"
	"time"
)

// Genre is a KOPIS genre code.
type Genre string

const (
	GenreTheater Genre = "AAAA" // 연극
	GenreMusical Genre = "GGGA" // 뮤지컬
)

// Name returns the Korean genre label used on tickets.
func (g Genre) Name() string {
	switch g {
	case GenreTheater:
		return "연극"
	case GenreMusical:
		return "뮤지컬"
	default:
		return ""
	}
}

// ParseGenre accepts a genre code, its Korean label or its English name.
// An empty string yields an empty Genre (no filter).
func ParseGenre(s string) (Genre, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "aaaa", "연극", "play", "theater", "theatre":
		return GenreTheater, nil
	case "ggga", "뮤지컬", "musical":
		return GenreMusical, nil
	default:
		return "", fmt.Errorf("unknown genre %q", s)
	}
}

// SearchQuery describes a performance search. Zero values fall back to the
// defaults documented on Client.Search.
type SearchQuery struct {
	Title    string
	Start    time.Time
	End      time.Time
	Genre    Genre
	Page     int
	Rows     int
	KidState string
}

// listParams is the wire form of a search. Fields are encoded by their url tag.
type listParams struct {
	StartDate string `url:"stdate"`
	EndDate   string `url:"eddate"`
	Page      int    `url:"cpage"`
	Rows      int    `url:"rows"`
	Title     string `url:"shprfnm"`
	Genre     Genre  `url:"shcate,omitempty"`
	KidState  string `url:"kidstate,omitempty"`
}

type boxOfficeParams struct {
	StartDate string `url:"stdate"`
	EndDate   string `url:"eddate"`
	Genre     Genre  `url:"catecode,omitempty"`
}

// Performance is one row of a KOPIS performance listing.
type Performance struct {
	ID      string `xml:"mt20id" json:"id"`
	Title   string `xml:"prfnm" json:"title"`
	From    string `xml:"prfpdfrom" json:"from"`
	To      string `xml:"prfpdto" json:"to"`
	Venue   string `xml:"fcltynm" json:"venue"`
	Poster  string `xml:"poster" json:"poster"`
	Area    string `xml:"area" json:"area"`
	Genre   string `xml:"genrenm" json:"genre"`
	OpenRun string `xml:"openrun" json:"openRun"`
	State   string `xml:"prfstate" json:"state"`
}

// PerformanceDetail is the full record returned for a single performance.
type PerformanceDetail struct {
	Performance

	Cast     string `xml:"prfcast" json:"cast,omitempty"`
	Crew     string `xml:"prfcrew" json:"crew,omitempty"`
	Runtime  string `xml:"prfruntime" json:"runtime,omitempty"`
	Age      string `xml:"prfage" json:"age,omitempty"`
	Price    string `xml:"pcseguidance" json:"price,omitempty"`
	Schedule string `xml:"dtguidance" json:"schedule,omitempty"`
	VenueID  string `xml:"mt10id" json:"venueId,omitempty"`
	Child    string `xml:"child" json:"child,omitempty"`
}

// IsChild reports whether KOPIS flags the performance as a children's show.
func (d PerformanceDetail) IsChild() bool {
	return strings.EqualFold(strings.TrimSpace(d.Child), "Y")
}

// BoxOfficeEntry is one ranked row of the weekly box office.
type BoxOfficeEntry struct {
	Rank int `json:"rank"`
	Performance
}

type performanceList struct {
	Items []Performance `xml:"db"`
}

type detailList struct {
	Items []PerformanceDetail `xml:"db"`
}

// boxOfficeRow is the raw boxof element. Its field names differ from the
// listing endpoint.
type boxOfficeRow struct {
	Rank   int    `xml:"rnum"`
	ID     string `xml:"mt20id"`
	Title  string `xml:"prfnm"`
	Period string `xml:"prfpd"`
	Venue  string `xml:"prfplcnm"`
	Poster string `xml:"poster"`
	Area   string `xml:"area"`
	Genre  string `xml:"cate"`
}

type boxOfficeList struct {
	Items []boxOfficeRow `xml:"boxof"`
}

func (r boxOfficeRow) entry() BoxOfficeEntry {
	from, to := splitPeriod(r.Period)
	return BoxOfficeEntry{
		Rank: r.Rank,
		Performance: Performance{
			ID:     r.ID,
			Title:  r.Title,
			From:   from,
			To:     to,
			Venue:  r.Venue,
			Poster: r.Poster,
			Area:   r.Area,
			Genre:  r.Genre,
		},
	}
}

// splitPeriod turns "2023.07.21~2023.11.19" into "20230721", "20231119".
func splitPeriod(period string) (from, to string) {
	parts := strings.Split(period, "~")
	if len(parts) != 2 {
		return "", ""
	}
	from = strings.ReplaceAll(strings.TrimSpace(parts[0]), ".", "")
	to = strings.ReplaceAll(strings.TrimSpace(parts[1]), ".", "")
	return from, to
}
