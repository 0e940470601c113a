package porter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Joe's Pizza", "joe-s-pizza"},
		{"  L'Artusi  ", "l-artusi"},
		{"Café Habana!!!", "caf-habana"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"good-slug", "good-slug"},
		{"UPPER", "upper"},
		{"spaces here", "spaceshere"},
		{"<script>alert(1)</script>", "scriptalert1script"},
		{"---trimmed---", "trimmed"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeSlug(tt.in), "SanitizeSlug(%q)", tt.in)
	}

	long := strings.Repeat("a", 500)
	assert.Len(t, SanitizeSlug(long), 100)
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "Great pasta.", "Great pasta."},
		{"trims", "  padded  ", "padded"},
		{"strips script", `before<script>alert("x")</script>after`, "beforeafter"},
		{"strips tags keeps text", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"nested markup", "<div><p>deep</p></div>", "deep"},
		{"script with attrs", `<script type="text/javascript">bad()</script>ok`, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}

func TestSanitizeTextTruncates(t *testing.T) {
	long := strings.Repeat("a", 50000)
	assert.Len(t, SanitizeText(long), 10000)
}

func TestSanitizeTextTruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the cap must go whole, not be split into
	// invalid UTF-8.
	in := strings.Repeat("a", 9999) + "日本"
	got := SanitizeText(in)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 9999), got)
}

func TestSanitizeImageURL(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"https", "https://cdn.example.com/pic.jpg", "https://cdn.example.com/pic.jpg"},
		{"http", "http://example.com/a.png", "http://example.com/a.png"},
		{"relative", "/images/a.png", "/images/a.png"},
		{"javascript scheme", "javascript:alert(1)", ""},
		{"data uri", "data:text/html;base64,AAAA", ""},
		{"smuggled in query", "https://x.com/?u=javascript:alert(1)", ""},
		{"percent encoded scheme", "https://x.com/%6a%61%76%61%73%63%72%69%70%74:alert(1)", ""},
		{"protocol relative", "//evil.example.com/a.png", ""},
		{"bare word", "picture.jpg", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeImageURL(tt.in))
		})
	}
}

func TestSanitizeVisitDate(t *testing.T) {
	assert.Equal(t, "March 2024", SanitizeVisitDate("March 2024"))
	assert.Equal(t, "2024-03-15", SanitizeVisitDate("2024-03-15"))
	assert.Equal(t, "", SanitizeVisitDate("<b>March</b>"))
	assert.Equal(t, "", SanitizeVisitDate(strings.Repeat("a", 51)))
	assert.Equal(t, "", SanitizeVisitDate(""))
}

func TestSanitizeRating(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"number", "4.5", 4.5, true},
		{"integer", "3", 3, true},
		{"numeric string", `"4.5"`, 4.5, true},
		{"padded string", `" 2.5 "`, 2.5, true},
		{"rounds to tenth", "4.44", 4.4, true},
		{"below range", "0.5", 0, false},
		{"above range", "5.5", 0, false},
		{"garbage string", `"five stars"`, 0, false},
		{"object", `{"value":4}`, 0, false},
		{"missing", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SanitizeRating(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeStringList(t *testing.T) {
	t.Run("keeps strings drops rest", func(t *testing.T) {
		raw := json.RawMessage(`["pasta", 42, {"a":1}, ["nested"], "wine", null]`)
		assert.Equal(t, []string{"pasta", "wine"}, SanitizeStringList(raw))
	})

	t.Run("not an array", func(t *testing.T) {
		assert.Nil(t, SanitizeStringList(json.RawMessage(`"just a string"`)))
		assert.Nil(t, SanitizeStringList(json.RawMessage(`{"a":1}`)))
		assert.Nil(t, SanitizeStringList(nil))
	})

	t.Run("caps at twenty", func(t *testing.T) {
		elems := make([]string, 30)
		for i := range elems {
			elems[i] = "item"
		}
		raw, _ := json.Marshal(elems)
		assert.Len(t, SanitizeStringList(raw), 20)
	})

	t.Run("drops oversized elements", func(t *testing.T) {
		raw, _ := json.Marshal([]string{strings.Repeat("a", 600), "short"})
		assert.Equal(t, []string{"short"}, SanitizeStringList(raw))
	})

	t.Run("strips markup from elements", func(t *testing.T) {
		raw := json.RawMessage(`["<b>truffle</b> fries", "<script>x()</script>"]`)
		assert.Equal(t, []string{"truffle fries"}, SanitizeStringList(raw))
	})
}
