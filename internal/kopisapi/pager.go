package kopisapi

import (
	"context"
	"sync"
)

// SearchPager walks the pages of a search one at a time. A page shorter than
// the requested row count ends the stream.
//
// A SearchPager is safe for concurrent use; concurrent Next calls are
// serialized so pages are never skipped or fetched twice.
type SearchPager struct {
	client *Client
	query  SearchQuery

	mu      sync.Mutex
	page    int
	hasMore bool
}

// NewSearchPager prepares a pager for q. q.Page is ignored; paging starts at 1.
func NewSearchPager(client *Client, q SearchQuery) *SearchPager {
	if q.Rows < 1 {
		q.Rows = defaultRows
	}
	return &SearchPager{
		client:  client,
		query:   q,
		hasMore: true,
	}
}

// Next fetches the next page. It returns nil once the stream is exhausted.
// A failed fetch leaves the position unchanged so the page can be retried.
func (p *SearchPager) Next(ctx context.Context) ([]Performance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.hasMore {
		return nil, nil
	}

	q := p.query
	q.Page = p.page + 1

	results, err := p.client.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	p.page = q.Page
	p.hasMore = len(results) == q.Rows
	return results, nil
}

// HasMore reports whether another page may exist.
func (p *SearchPager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Page returns the last page successfully fetched, 0 before the first call.
func (p *SearchPager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// SearchAll drains up to maxPages pages of q. maxPages <= 0 means no limit.
func (c *Client) SearchAll(ctx context.Context, q SearchQuery, maxPages int) ([]Performance, error) {
	pager := NewSearchPager(c, q)

	var all []Performance
	for pager.HasMore() {
		if maxPages > 0 && pager.Page() >= maxPages {
			break
		}
		results, err := pager.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, results...)
	}
	return all, nil
}
