package fields

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MovieRuntime is a duration in minutes, rendered as "2h 15m".
type MovieRuntime int32

func (m MovieRuntime) String() string {
	if m <= 0 {
		return "--"
	}
	hours, mins := m/60, m%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// Score is a numeric rating the upstream API ships as text ("7.4", "85%").
// Text is kept so the value re-serializes exactly as received.
type Score struct {
	Text  string
	Value float64
	Valid bool
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseScore reads the leading number of text, ignoring leading whitespace and
// any trailing garbage. Text without a leading number yields an invalid Score.
func ParseScore(text string) Score {
	s := Score{Text: text}
	prefix := numericPrefix.FindString(strings.TrimSpace(text))
	if prefix == "" {
		return s
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return s
	}
	s.Value, s.Valid = v, true
	return s
}

func (s *Score) UnmarshalJSON(b []byte) error {
	*s = ParseScore(textOrNumber(b))
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// AtLeast reports whether the score parsed and is not below threshold.
func (s Score) AtLeast(threshold float64) bool {
	return s.Valid && s.Value >= threshold
}

// Clock is a wall-clock time of day in zero-padded 24h "HH:MM" form.
type Clock struct {
	Text    string
	Minutes int
	Valid   bool
}

var clockPrefix = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)

// ParseClock reads a leading "HH:MM" from text. Anything after the minutes
// (e.g. " (3D)") is ignored.
func ParseClock(text string) Clock {
	c := Clock{Text: text}
	m := clockPrefix.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return c
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if h > 23 || mm > 59 {
		return c
	}
	c.Minutes, c.Valid = h*60+mm, true
	return c
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	*c = ParseClock(textOrNumber(b))
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Text)
}

// Within reports whether c falls in [after, before]. An invalid bound is
// unconstrained; an invalid c never matches.
func (c Clock) Within(after, before Clock) bool {
	if !c.Valid {
		return false
	}
	if after.Valid && c.Minutes < after.Minutes {
		return false
	}
	if before.Valid && c.Minutes > before.Minutes {
		return false
	}
	return true
}

// OMDB release date layout, e.g. "14 Nov 2025".
const releaseLayout = "02 Jan 2006"

// ReleaseDate is an OMDB "Released" value. Unparsable text leaves Time zero.
type ReleaseDate struct {
	Text string
	Time time.Time
}

func (r *ReleaseDate) UnmarshalJSON(b []byte) error {
	r.Text = textOrNumber(b)
	r.Time, _ = time.Parse(releaseLayout, strings.TrimSpace(r.Text))
	return nil
}

func (r ReleaseDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Text)
}

// textOrNumber accepts a JSON string or number. Any other value reads as
// empty text so a malformed field never fails the whole document.
func textOrNumber(b []byte) string {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		return text
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		return n.String()
	}
	return ""
}
