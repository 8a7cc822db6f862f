package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// parsePeriod expands "YYYY-MM" into the inclusive first and last day of that
// month. Anything else, including an out of range month, yields ok=false.
func parsePeriod(raw string, loc *time.Location) (start, end time.Time, ok bool) {
	p := strings.TrimSpace(raw)
	if !periodPattern.MatchString(p) {
		return time.Time{}, time.Time{}, false
	}

	year, _ := strconv.Atoi(p[:4])
	month, _ := strconv.Atoi(p[5:])
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, false
	}

	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, -1)
	return start, end, true
}

// aggregationBounds turns inclusive period dates into the half-open instant
// range [start 00:00, end+1day 00:00) used by the aggregation query. Only the
// calendar date of each bound is used.
func aggregationBounds(periodStart, periodEnd time.Time, loc *time.Location) (time.Time, time.Time) {
	sy, sm, sd := periodStart.Date()
	ey, em, ed := periodEnd.Date()
	return time.Date(sy, sm, sd, 0, 0, 0, 0, loc), time.Date(ey, em, ed+1, 0, 0, 0, 0, loc)
}
