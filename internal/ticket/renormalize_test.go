package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenormalize(t *testing.T) {
	tickets := []Ticket{
		{ID: "1", PerformanceName: "지킬앤하이드 [광주]", Theater: "광주문화예술회관 (대극장)"},
		{ID: "2", PerformanceName: "지킬 앤 하이드", Theater: "블루스퀘어 (신한카드홀 (구. 인터파크홀) )"},
		{ID: "3", PerformanceName: "레미제라블", Theater: "계명아트센터"},
		{ID: "4", PerformanceName: "지킬앤하이드", Theater: "샤롯데씨어터"},
	}

	changes := Renormalize(tickets)
	require.Len(t, changes, 3)

	assert.Equal(t, 0, changes[0].Index)
	assert.Equal(t, "지킬 앤 하이드", changes[0].NewTitle)
	assert.Equal(t, "광주문화예술회관 대극장", changes[0].NewTheater)
	assert.True(t, changes[0].TitleChanged())
	assert.True(t, changes[0].TheaterChanged())

	assert.Equal(t, "2", changes[1].ID)
	assert.False(t, changes[1].TitleChanged())
	assert.Equal(t, "블루스퀘어 신한카드홀", changes[1].NewTheater)

	assert.Equal(t, "4", changes[2].ID)
	assert.Equal(t, "지킬 앤 하이드", changes[2].NewTitle)
	assert.False(t, changes[2].TheaterChanged())
}

func TestRenormalizeClean(t *testing.T) {
	tickets := []Ticket{
		{PerformanceName: "레미제라블", Theater: "블루스퀘어 신한카드홀"},
	}
	assert.Empty(t, Renormalize(tickets))
}

func TestReferences(t *testing.T) {
	refs := References([]Ticket{
		{PerformanceName: "Show A [부산]"},
		{PerformanceName: "show  a"},
		{PerformanceName: "Show A"},
		{PerformanceName: ""},
	})
	assert.Equal(t, map[string]string{"showa": "show  a"}, refs)
}

func TestApply(t *testing.T) {
	tickets := []Ticket{
		{ID: "1", PerformanceName: "A [x]", Theater: "B (B)"},
		{ID: "2", PerformanceName: "C", Theater: "D"},
	}
	out := Apply(tickets, append(Renormalize(tickets), Change{Index: 9}))

	assert.Equal(t, "A", out[0].PerformanceName)
	assert.Equal(t, "B", out[0].Theater)
	assert.Equal(t, "C", out[1].PerformanceName)
	assert.Equal(t, "A [x]", tickets[0].PerformanceName, "input must not be modified")
	assert.Equal(t, []string{"A", "C"}, Titles(out))
}
