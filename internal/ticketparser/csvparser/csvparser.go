package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Another0Noob/stagelog/internal/ticket"
)

// ParseFile parses a ticket CSV export from disk.
func ParseFile(path string) ([]ticket.Ticket, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// defaults are the column positions of the backend's CSV export, used when a
// header is missing:
//
//	date,time,performanceName,theater,genre,seat,ticketPrice,companion,mdPrice,rating,review
var defaults = map[string]int{
	"date":            0,
	"time":            1,
	"performancename": 2,
	"theater":         3,
}

var aliases = map[string]string{
	"title":   "performancename",
	"공연명":     "performancename",
	"venue":   "theater",
	"극장":      "theater",
	"poster":  "posterurl",
	"price":   "ticketprice",
	"child":   "ischild",
	"cast":    "casting",
	"날짜":      "date",
	"시간":      "time",
	"좌석":      "seat",
	"동행":      "companion",
	"별점":      "rating",
	"리뷰":      "review",
	"장르":      "genre",
}

// ParseReader parses ticket CSV data. Columns are mapped by header name,
// matched case-insensitively and ignoring spaces, dashes and underscores.
// Rows without a performance name are skipped.
func ParseReader(reader io.Reader) ([]ticket.Ticket, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if a, ok := aliases[name]; ok {
			name = a
		}
		if _, dup := headerMap[name]; !dup {
			headerMap[name] = i
		}
	}

	_, named := headerMap["performancename"]
	getIndex := func(name string) int {
		if i, ok := headerMap[name]; ok {
			return i
		}
		if named {
			return -1
		}
		if d, ok := defaults[name]; ok {
			return d
		}
		return -1
	}

	idx := map[string]int{}
	for _, name := range []string{
		"id", "date", "time", "performancename", "genre", "ischild", "theater", "seat",
		"ticketprice", "companion", "mdprice", "rating", "review", "posterurl", "casting",
	} {
		idx[name] = getIndex(name)
	}

	var out []ticket.Ticket
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}

		get := func(name string) string {
			i := idx[name]
			if i < 0 || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		title := get("performancename")
		if title == "" {
			continue
		}

		t := ticket.Ticket{
			ID:              get("id"),
			Date:            get("date"),
			Time:            get("time"),
			PerformanceName: title,
			Genre:           get("genre"),
			IsChild:         parseBool(get("ischild")),
			Theater:         get("theater"),
			Seat:            get("seat"),
			Companion:       get("companion"),
			Review:          get("review"),
			PosterURL:       get("posterurl"),
			Casting:         splitList(get("casting")),
		}

		if t.TicketPrice, err = parseAmount(get("ticketprice")); err != nil {
			return nil, fmt.Errorf("line %d: ticketPrice: %w", line, err)
		}
		if t.MDPrice, err = parseAmount(get("mdprice")); err != nil {
			return nil, fmt.Errorf("line %d: mdPrice: %w", line, err)
		}
		if s := get("rating"); s != "" {
			if t.Rating, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("line %d: rating: %w", line, err)
			}
		}

		out = append(out, t)
	}

	return out, nil
}

// normalizeHeader lowercases h and drops spaces, dashes, underscores, dots and
// quotes so that "Performance Name", "performance_name" and "performanceName"
// compare equal.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.', '"', '`':
			return -1
		}
		return r
	}, h)
}

// parseAmount accepts "55,000", "55000원" and "".
func parseAmount(s string) (int, error) {
	s = strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "원")
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "y", "yes", "1":
		return true
	}
	return false
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
