package application

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// FormatPlayback renders a playback position in whole seconds as the
// "<minutes>:<two-digit seconds>" label used in timestamp notes.
func FormatPlayback(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// StampURL returns rawURL with its "t" query parameter set to "<seconds>s",
// producing a link that resumes playback at that position. Unparsable URLs
// are returned unchanged.
func StampURL(rawURL string, seconds int) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("t", strconv.Itoa(seconds)+"s")
	u.RawQuery = q.Encode()
	return u.String()
}

var offsetPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

// ParseTimeOffset parses a playback offset in either plain seconds ("90") or
// YouTube t-parameter form ("1h2m3s", "1m30s", "45s").
func ParseTimeOffset(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time offset")
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative time offset %q", s)
		}
		return n, nil
	}

	m := offsetPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, fmt.Errorf("unrecognized time offset %q", s)
	}

	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("unrecognized time offset %q", s)
		}
		total += n * mult
	}
	return total, nil
}
