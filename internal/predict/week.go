package predict

import (
	"fmt"
	"strconv"
	"time"
)

// CurrentSeed returns the week seed for a point in time, in YYYYWW
// form (calendar year, ISO week number).
func CurrentSeed(now time.Time) string {
	_, week := now.ISOWeek()
	return fmt.Sprintf("%d%02d", now.Year(), week)
}

// NextSeed returns the week seed seven days after now.
func NextSeed(now time.Time) string {
	return CurrentSeed(now.AddDate(0, 0, 7))
}

// SeedWeekStart converts a week seed to that week's Monday, formatted
// "2006-01-02". The week count starts at the first Monday of the year.
func SeedWeekStart(seed string) (string, error) {
	year, week, err := splitSeed(seed)
	if err != nil {
		return "", err
	}

	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	day = day.AddDate(0, 0, (week-1)*7)

	return day.Format("2006-01-02"), nil
}

// seedValue returns a seed as a comparable year*100+week integer.
func seedValue(seed string) (int, error) {
	year, week, err := splitSeed(seed)
	if err != nil {
		return 0, err
	}
	return year*100 + week, nil
}

func splitSeed(seed string) (year, week int, err error) {
	if len(seed) < 5 {
		return 0, 0, fmt.Errorf("predict: malformed week seed %q", seed)
	}
	year, err = strconv.Atoi(seed[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("predict: malformed week seed %q", seed)
	}
	week, err = strconv.Atoi(seed[4:])
	if err != nil || week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("predict: malformed week seed %q", seed)
	}
	return year, week, nil
}
