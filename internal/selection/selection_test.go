package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Another0Noob/stagelog/internal/kopisapi"
)

type fakeDetails map[string]*kopisapi.PerformanceDetail

func (f fakeDetails) Detail(_ context.Context, id string) (*kopisapi.PerformanceDetail, error) {
	if d, ok := f[id]; ok {
		return d, nil
	}
	return nil, errors.New("unavailable")
}

var results = []kopisapi.Performance{
	{ID: "PF1", Title: "지킬앤하이드 [광주]", Venue: "광주문화예술회관 (대극장)", Poster: "p1"},
	{ID: "PF2", Title: "지킬 앤 하이드", Venue: "블루스퀘어 (신한카드홀 (구. 인터파크홀) )", Poster: "p2"},
}

func TestPickReference(t *testing.T) {
	assert.Equal(t, "지킬앤 하이드", PickReference("지킬앤하이드 [광주]", []string{"레미제라블", "지킬앤 하이드"}, results))
	assert.Equal(t, "지킬 앤 하이드", PickReference("지킬앤하이드 [광주]", []string{"레미제라블"}, results))
	assert.Equal(t, "", PickReference("지킬앤하이드 [광주]", nil, results[:1]))
}

func TestResolve(t *testing.T) {
	r := &Resolver{Client: fakeDetails{
		"PF1": {
			Performance: kopisapi.Performance{
				ID:     "PF1",
				Title:  "지킬앤하이드 [광주]",
				Venue:  "광주문화예술회관(구. 광주시민회관) (대극장)",
				Poster: "detail-poster",
				Genre:  "뮤지컬",
			},
			Child: "N",
		},
	}}

	got := r.Resolve(context.Background(), results[0], results, []string{"지킬앤 하이드", "지킬앤하이드 2"})
	assert.Equal(t, Selection{
		PerformanceID:   "PF1",
		PerformanceName: "지킬앤 하이드",
		Theater:         "광주문화예술회관 대극장",
		PosterURL:       "detail-poster",
		Genre:           "뮤지컬",
		Similar:         []string{"지킬앤하이드 2"},
	}, got)
}

func TestResolveFallback(t *testing.T) {
	r := &Resolver{Client: fakeDetails{}}

	// Existing tickets are not consulted on the fallback path.
	got := r.Resolve(context.Background(), results[0], results, []string{"지킬앤 하이드"})
	assert.True(t, got.Fallback)
	assert.Equal(t, "PF1", got.PerformanceID)
	assert.Equal(t, "지킬 앤 하이드", got.PerformanceName)
	assert.Equal(t, "광주문화예술회관 대극장", got.Theater)
	assert.Equal(t, "p1", got.PosterURL)
}

func TestSimilar(t *testing.T) {
	existing := []string{"지킬앤하이드 2", "지킬앤하이드 [부산]", "레미제라블", "지킬 앤 하이드", "지킬앤하이드 2"}
	assert.Equal(t, []string{"지킬앤하이드 2"}, Similar("지킬앤하이드", existing))

	assert.Equal(t, []string{"Mamma Mia!"}, Similar("Mama Mia!", []string{"Mamma Mia!", "Mamma Mia! 25th Anniversary"}))

	assert.Nil(t, Similar("", existing))
	assert.Nil(t, Similar("오페라의 유령", existing))
}

func TestDistanceThreshold(t *testing.T) {
	assert.Equal(t, 1, distanceThreshold(0))
	assert.Equal(t, 2, distanceThreshold(10))
	assert.Equal(t, 3, distanceThreshold(40))
}
