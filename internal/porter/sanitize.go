package porter

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
)

const (
	maxTextLen      = 10000
	maxImageURLLen  = 2000
	maxVisitDateLen = 50
	maxSlugLen      = 100
	maxListElemLen  = 500
	maxListLen      = 20
)

var (
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9]+`)
	slugCharsRe = regexp.MustCompile(`[^a-z0-9-]`)
	visitDateRe = regexp.MustCompile(`^[a-zA-Z0-9\s,.-]+$`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	scriptRe    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
)

// Slugify derives a URL slug from a display name: lowercased, runs of
// non-alphanumeric characters collapsed to single hyphens, outer hyphens
// trimmed.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SanitizeSlug reduces s to the [a-z0-9-] character class and caps its
// length. An empty result means the slug is unusable.
func SanitizeSlug(s string) string {
	s = slugCharsRe.ReplaceAllString(strings.ToLower(s), "")
	s = strings.Trim(s, "-")
	return truncate(s, maxSlugLen)
}

// SanitizeText neutralizes untrusted free text: script blocks go first, then
// every remaining tag, then the result is trimmed and capped.
func SanitizeText(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	s = stripTags(s)
	s = strings.TrimSpace(s)
	return truncate(s, maxTextLen)
}

// stripTags removes the remaining markup. goquery gives a real HTML parse so
// malformed or nested markup cannot smuggle a tag past a simpler filter; the
// regex is the fallback when parsing fails outright.
func stripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return htmlTagRe.ReplaceAllString(s, "")
	}
	doc.Find("script").Remove()
	return doc.Text()
}

// SanitizeImageURL accepts only http(s) or site-relative image references and
// rejects dangerous schemes even when percent-encoded. An empty return means
// the field is dropped, not the record.
func SanitizeImageURL(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "/") {
		return ""
	}
	// Protocol-relative references resolve to an attacker-chosen host.
	if strings.HasPrefix(s, "//") {
		return ""
	}

	decoded := s
	if d, err := url.QueryUnescape(s); err == nil {
		decoded = d
	}
	lower := strings.ToLower(decoded)
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		if strings.Contains(lower, scheme) {
			return ""
		}
	}
	return truncate(s, maxImageURLLen)
}

// SanitizeVisitDate keeps only plain date-like text. An empty return drops
// the field.
func SanitizeVisitDate(s string) string {
	if len(s) > maxVisitDateLen || !visitDateRe.MatchString(s) {
		return ""
	}
	return s
}

// SanitizeRating parses a rating out of an arbitrary JSON value and accepts
// it only inside [1, 5], rounded to one decimal place.
func SanitizeRating(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	}

	if v < 1 || v > 5 {
		return 0, false
	}
	return math.Round(v*10) / 10, true
}

// SanitizeStringList accepts only a real JSON array and keeps only its
// primitive string elements under the length bound, tag-stripped, capped at
// twenty entries. Objects or arrays posing as elements are discarded.
func SanitizeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	var out []string
	for _, e := range elems {
		if len(out) == maxListLen {
			break
		}
		var s string
		if err := json.Unmarshal(e, &s); err != nil {
			continue
		}
		if len(s) >= maxListElemLen {
			continue
		}
		s = strings.TrimSpace(stripTags(scriptRe.ReplaceAllString(s, "")))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// truncate cuts s to at most max bytes, backing off to the previous rune
// boundary so the cut never produces invalid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
