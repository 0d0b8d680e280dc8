// Package selection turns a picked search result into a ticket prefill with
// canonical title and venue.
package selection

import (
	"context"

	"go.uber.org/zap"

	"github.com/Another0Noob/stagelog/internal/kopisapi"
	"github.com/Another0Noob/stagelog/internal/normalize"
)

// Selection is the prefill handed to the ticket form.
type Selection struct {
	PerformanceID   string   `json:"performanceId"`
	PerformanceName string   `json:"performanceName"`
	Theater         string   `json:"theater"`
	PosterURL       string   `json:"posterUrl"`
	Genre           string   `json:"genre,omitempty"`
	IsChild         bool     `json:"isChild"`
	Fallback        bool     `json:"fallback,omitempty"`
	Similar         []string `json:"similar,omitempty"`
}

// DetailFetcher is the part of the KOPIS client the resolver needs.
type DetailFetcher interface {
	Detail(ctx context.Context, id string) (*kopisapi.PerformanceDetail, error)
}

// PickReference chooses the spelling a freshly picked title is reconciled
// against: an existing ticket title for the same show first, then the first
// bracket-free title among the search results.
func PickReference(raw string, existing []string, results []kopisapi.Performance) string {
	if k := normalize.Key(raw); k != "" {
		for _, e := range existing {
			if normalize.Key(e) == k {
				return e
			}
		}
	}
	return firstBareTitle(results)
}

func firstBareTitle(results []kopisapi.Performance) string {
	for _, p := range results {
		if !normalize.HasTag(p.Title) {
			return p.Title
		}
	}
	return ""
}

// Resolver builds selections, looking up the performance detail for the
// authoritative title and venue.
type Resolver struct {
	Client DetailFetcher
	Log    *zap.Logger
}

// Resolve builds the selection for picked. results are the search results
// the pick came from and existing the titles already logged.
//
// When the detail lookup fails the selection is built from the search row
// alone and marked as Fallback.
func (r *Resolver) Resolve(ctx context.Context, picked kopisapi.Performance, results []kopisapi.Performance, existing []string) Selection {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	detail, err := r.Client.Detail(ctx, picked.ID)
	if err != nil {
		log.Warn("performance detail unavailable, using search result",
			zap.String("id", picked.ID),
			zap.Error(err),
		)

		name := normalize.Title(picked.Title, firstBareTitle(results))
		return Selection{
			PerformanceID:   picked.ID,
			PerformanceName: name,
			Theater:         normalize.Venue(picked.Venue),
			PosterURL:       picked.Poster,
			Genre:           picked.Genre,
			Fallback:        true,
			Similar:         Similar(name, existing),
		}
	}

	name := normalize.Title(detail.Title, PickReference(detail.Title, existing, results))
	sel := Selection{
		PerformanceID:   detail.ID,
		PerformanceName: name,
		Theater:         normalize.Venue(detail.Venue),
		PosterURL:       detail.Poster,
		Genre:           detail.Genre,
		IsChild:         detail.IsChild(),
		Similar:         Similar(name, existing),
	}
	if sel.PerformanceID == "" {
		sel.PerformanceID = picked.ID
	}

	log.Debug("performance selected",
		zap.String("id", sel.PerformanceID),
		zap.String("raw_title", detail.Title),
		zap.String("title", sel.PerformanceName),
		zap.String("raw_theater", detail.Venue),
		zap.String("theater", sel.Theater),
	)
	return sel
}
