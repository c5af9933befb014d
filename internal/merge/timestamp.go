package merge

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// NowLayout formats fallback timestamps the same way browsers print ISO-8601.
const NowLayout = "2006-01-02T15:04:05.000Z07:00"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp parses v as calendar time. Only strings are considered.
func parseTimestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareTimestamps returns 1 when left is later, -1 when right is later and
// 0 when neither wins. Unparseable values are older than any parseable one.
func compareTimestamps(left, right string) int {
	lt, lok := parseTimestamp(left)
	rt, rok := parseTimestamp(right)

	switch {
	case !lok && !rok:
		return 0
	case !lok:
		return -1
	case !rok:
		return 1
	case lt.After(rt):
		return 1
	case rt.After(lt):
		return -1
	default:
		return 0
	}
}

// pickLatestTimestamp returns the later of two timestamps, preferring left
// when neither wins.
func pickLatestTimestamp(left, right string) string {
	switch compareTimestamps(left, right) {
	case 1:
		return left
	case -1:
		return right
	}
	return firstNonEmpty(left, right)
}

// pickLatest chooses between two values using their timestamps. Ties go to
// the present value, then to the lexically smaller canonical JSON, so the
// choice is symmetric in its arguments. The returned timestamp is the
// winner's, or the loser's when the winner has none.
func pickLatest(left, right fieldValue, leftTS, rightTS string) (fieldValue, string) {
	switch compareTimestamps(leftTS, rightTS) {
	case 1:
		return left, firstNonEmpty(leftTS, rightTS)
	case -1:
		return right, firstNonEmpty(rightTS, leftTS)
	}

	if left.present != right.present {
		if left.present {
			return left, firstNonEmpty(leftTS, rightTS)
		}
		return right, firstNonEmpty(rightTS, leftTS)
	}

	if left.serialized() <= right.serialized() {
		return left, firstNonEmpty(leftTS, rightTS)
	}
	return right, firstNonEmpty(rightTS, leftTS)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func stringValue(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func formatNow(clock clockwork.Clock) string {
	return clock.Now().UTC().Format(NowLayout)
}
