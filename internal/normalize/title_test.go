package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	for _, tc := range []struct {
		name      string
		raw       string
		reference string
		want      string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "single tag", raw: "지킬앤하이드 [광주]", want: "지킬앤하이드"},
		{name: "multiple tags", raw: "지킬앤하이드   [광주]  [부산]", want: "지킬앤하이드"},
		{name: "leading tag", raw: "[광주] 지킬앤하이드 공연", want: "지킬앤하이드 공연"},
		{name: "tag between words", raw: "지킬앤하이드[광주]공연", want: "지킬앤하이드 공연"},
		{name: "no tag", raw: "  Show   A  ", want: "Show A"},
		{name: "empty brackets kept", raw: "Show [] A", want: "Show [] A"},
		{name: "ideographic space", raw: "레미제라블　[부산]", want: "레미제라블"},
		{name: "whitespace only", raw: " \t ", want: ""},

		{name: "reference idempotent", raw: "Show A", reference: "Show A", want: "Show A"},
		{name: "reference preferred", raw: "show a [Region]", reference: "Show A", want: "Show A"},
		{name: "reference ignores spacing", raw: "ShowA", reference: "Show A", want: "Show A"},
		{name: "reference canonicalized", raw: "show a", reference: "  Show   A ", want: "Show A"},
		{name: "reference mismatch", raw: "Show B [부산]", reference: "Show A", want: "Show B"},
		{name: "reference with brackets ignored", raw: "show a [부산]", reference: "SHOW A [서울]", want: "show a"},
		{name: "reference with stray bracket ignored", raw: "show a", reference: "Show A [", want: "show a"},
		{name: "blank reference", raw: "Show A", reference: "   ", want: "Show A"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Title(tc.raw, tc.reference))
		})
	}
}

func TestTitleIdempotent(t *testing.T) {
	for _, raw := range []string{
		"",
		"지킬앤하이드 [광주]",
		"지킬앤하이드   [광주]  [부산]",
		"[[nested]] tag",
		"Show A",
		"  spaced   out  title ",
	} {
		once := Title(raw, "")
		assert.Equal(t, once, Title(once, ""), "raw %q", raw)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "showa", Key("Show A [부산]"))
	assert.Equal(t, "", Key(" [부산] "))
	assert.True(t, SameTitle("레 미제라블", "레미제라블 [서울]"))
	assert.False(t, SameTitle("레미제라블", "레미제라블 25주년"))
}

func TestRegion(t *testing.T) {
	region, ok := Region("드림씨어터 [부산] [서울]")
	assert.True(t, ok)
	assert.Equal(t, "부산", region)

	_, ok = Region("드림씨어터")
	assert.False(t, ok)

	assert.True(t, HasTag("a [b"))
	assert.False(t, HasTag("a b"))
}

var benchmarkTitle string

func BenchmarkTitle(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchmarkTitle = Title("지킬앤하이드   [광주]  [부산]", "지킬앤하이드")
	}
}
