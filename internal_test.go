package markit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroupDigits(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   string
		want string
	}{
		"zero":           {in: "0", want: "0"},
		"three digits":   {in: "100", want: "100"},
		"four digits":    {in: "1000", want: "1,000"},
		"six digits":     {in: "123456", want: "123,456"},
		"seven digits":   {in: "1234567", want: "1,234,567"},
		"negative short": {in: "-42", want: "-42"},
		"negative long":  {in: "-1234", want: "-1,234"},
		"not a number":   {in: "NaN", want: "NaN"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, groupDigits(tt.in))
		})
	}
}

func TestGroupFloat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1,234.50", groupFloat("1234.50"))
	assert.Equal(t, "12.00", groupFloat("12.00"))
	assert.Equal(t, "-9,876.25", groupFloat("-9876.25"))
	// No decimal point falls through to plain grouping.
	assert.Equal(t, "1,234", groupFloat("1234"))
}

func TestHumanizeKey(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   string
		want string
	}{
		"empty":        {in: "", want: ""},
		"single word":  {in: "title", want: "Title"},
		"lower camel":  {in: "documentTitle", want: "Document title"},
		"three words":  {in: "maxFileSize", want: "Max file size"},
		"single rune":  {in: "a", want: "A"},
		"capital runs": {in: "XMLData", want: "X m l data"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, humanizeKey(tt.in))
		})
	}
}

func TestLayoutValid(t *testing.T) {
	t.Parallel()
	assert.True(t, layoutValid(DefaultDateFormat))
	assert.True(t, layoutValid("2006-01-02"))
	assert.True(t, layoutValid("15:04"))
	// Literal text formats identically for every instant.
	assert.False(t, layoutValid("yyyy-MM-dd"))
	assert.False(t, layoutValid(""))
}

func TestEscapeTextStages(t *testing.T) {
	t.Parallel()
	assert.Empty(t, escapeText("", true, true))
	assert.Equal(t, `a\*b`, escapeText("a*b", false, true))
	assert.Equal(t, "&lt;b&gt;", escapeText("<b>", true, true))
	assert.Equal(t, "<b>", escapeText("<b>", false, true))
	assert.Equal(t, "go!", escapeText("go!", false, false))
	assert.Equal(t, `go\!`, escapeText("go!", false, true))
	// HTML first, then Markdown: the entity text survives the second pass.
	assert.Equal(t, `&amp;\*`, escapeText("&*", true, true))
}

func TestStringify(t *testing.T) {
	t.Parallel()
	assert.Empty(t, stringify(nil))
	assert.Equal(t, "text", stringify("text"))
	assert.Equal(t, "42", stringify(42))
	assert.Equal(t, "3.5", stringify(3.5))
	assert.Equal(t, "github", stringify(TableGitHub)) // fmt.Stringer
}

func TestSequenceItems(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []any{1, "a"}, sequenceItems([]any{1, "a"}))
	assert.Equal(t, []any{"x", "y"}, sequenceItems([]string{"x", "y"}))
	assert.Equal(t, []any{1, 2}, sequenceItems([2]int{1, 2}))
	assert.Nil(t, sequenceItems("not a sequence"))
	assert.Nil(t, sequenceItems(nil))
}

func TestInlineSequence(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[a, b]", inlineSequence([]any{"a", "b"}))
	assert.Equal(t, "[a, b]", inlineSequence([]any{"a", nil, "b"}))
	assert.Equal(t, "[]", inlineSequence(nil))
}

func TestMapPairsNativeSorted(t *testing.T) {
	t.Parallel()
	pairs, keysString := mapPairs(map[string]int{"b": 2, "a": 1}, false)
	assert.True(t, keysString)
	assert.Equal(t, []Pair{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, pairs)
}

func TestMapPairsNonStringKeys(t *testing.T) {
	t.Parallel()
	pairs, keysString := mapPairs(map[int]string{1: "a"}, false)
	assert.False(t, keysString)
	assert.Equal(t, []Pair{{Key: "1", Value: "a"}}, pairs)
}

func TestMapPairsOrderedMap(t *testing.T) {
	t.Parallel()
	m := NewMap()
	m.Set("b", 2).Set("a", 1)

	pairs, keysString := mapPairs(m, false)
	assert.True(t, keysString)
	assert.Equal(t, "b", pairs[0].Key)

	sorted, _ := mapPairs(m, true)
	assert.Equal(t, "a", sorted[0].Key)
	// Sorting the extraction leaves the map untouched.
	assert.Equal(t, []string{"b", "a"}, m.Keys())
}

func TestMapPairsNonMap(t *testing.T) {
	t.Parallel()
	pairs, keysString := mapPairs("nope", false)
	assert.Nil(t, pairs)
	assert.False(t, keysString)
}

func TestTabular(t *testing.T) {
	t.Parallel()
	cfg := NewConfig()
	tests := map[string]struct {
		pairs []Pair
		keys  bool
		cfg   Config
		want  bool
	}{
		"scalars":        {pairs: []Pair{{Key: "a", Value: 1}}, keys: true, cfg: cfg, want: true},
		"nil value":      {pairs: []Pair{{Key: "a", Value: nil}}, keys: true, cfg: cfg, want: false},
		"nested map":     {pairs: []Pair{{Key: "a", Value: map[string]any{}}}, keys: true, cfg: cfg, want: false},
		"sequence value": {pairs: []Pair{{Key: "a", Value: []any{1}}}, keys: true, cfg: cfg, want: false},
		"newline key":    {pairs: []Pair{{Key: "a\nb", Value: 1}}, keys: true, cfg: cfg, want: false},
		"non-string key": {pairs: []Pair{{Key: "1", Value: 1}}, keys: false, cfg: cfg, want: false},
		"tables off":     {pairs: []Pair{{Key: "a", Value: 1}}, keys: true, cfg: NewConfig(WithTables(false)), want: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tabular(tt.pairs, tt.keys, tt.cfg))
		})
	}
}

func TestIsStructural(t *testing.T) {
	t.Parallel()
	assert.True(t, isStructural([]any{}))
	assert.True(t, isStructural(map[string]any{}))
	assert.True(t, isStructural(NewMap()))
	assert.False(t, isStructural("text"))
	assert.False(t, isStructural(42))
	assert.False(t, isStructural(nil))
	assert.False(t, isStructural(time.Now()))
}

func TestMappingLen(t *testing.T) {
	t.Parallel()
	m := NewMap()
	m.Set("a", 1)
	assert.Equal(t, 1, mappingLen(m))
	assert.Equal(t, 2, mappingLen(map[string]int{"a": 1, "b": 2}))
	assert.Zero(t, mappingLen("nope"))
}
