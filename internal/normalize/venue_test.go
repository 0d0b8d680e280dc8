package normalize

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVenue(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "Venue With No Parens", want: "Venue With No Parens"},
		{input: "  Venue   Name  ", want: "Venue Name"},
		{input: "예술의전당(구. 서울음악당)", want: "예술의전당"},
		{input: "논산아트센터(구. 논산문화예술회관) (대공연장)", want: "논산아트센터 대공연장"},
		{input: "계명아트센터 (계명아트센터)", want: "계명아트센터"},
		{input: "드림씨어터 [부산] (드림씨어터 [부산] )", want: "드림씨어터 부산"},
		{input: "드림씨어터 (드림씨어터 [부산])", want: "드림씨어터 부산"},
		{input: "드림씨어터 [부산] (드림씨어터)", want: "드림씨어터 부산"},
		{input: "블루스퀘어 (신한카드홀 (구. 인터파크홀) )", want: "블루스퀘어 신한카드홀"},
		{input: "샤롯데씨어터 [서울]", want: "샤롯데씨어터 서울"},
		{input: "부산시민회관 [부산]", want: "부산시민회관"},
		{input: "세종문화회관 [서울] (대극장)", want: "세종문화회관 대극장 서울"},
		{input: "드림씨어터 [부산](구. 부산극장) (드림씨어터 [부산])", want: "드림씨어터 부산"},
		{input: "계명아트센터 (계명아트센터) 2층", want: "계명아트센터 2층"},
		{input: "충무아트센터 (대극장 (블루))", want: "충무아트센터 대극장 (블루)"},

		// Only the last top-level group is considered.
		{input: "A (B) (C)", want: "A (B) C"},

		// Unbalanced input is kept as literal text.
		{input: "A (B", want: "A (B"},
		{input: "A B)", want: "A B)"},
		{input: "()", want: ""},
	} {
		t.Run(tc.input, func(t *testing.T) {
			got := Venue(tc.input)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Venue(%q) difference (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestVenueConcurrent(t *testing.T) {
	const input = "블루스퀘어 (신한카드홀 (구. 인터파크홀) )"
	want := Venue(input)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Venue(input)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Errorf("goroutine %d: Venue(%q) = %q, want %q", i, input, got, want)
		}
	}
}

var benchmarkVenue string

func BenchmarkVenue(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchmarkVenue = Venue("논산아트센터(구. 논산문화예술회관) (대공연장)")
	}
}
