package pricing

import "time"

// Season names recognized by SEASONAL_ADJUSTMENT rules
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonFall   Season = "fall"
)

var seasonMonths = map[Season][]time.Month{
	SeasonWinter: {time.December, time.January, time.February},
	SeasonSpring: {time.March, time.April, time.May},
	SeasonSummer: {time.June, time.July, time.August},
	SeasonAutumn: {time.September, time.October, time.November},
	SeasonFall:   {time.September, time.October, time.November},
}

// IsValid returns true for the recognized season names
func (s Season) IsValid() bool {
	_, ok := seasonMonths[s]
	return ok
}

// Contains reports whether month falls in the season
func (s Season) Contains(month time.Month) bool {
	for _, m := range seasonMonths[s] {
		if m == month {
			return true
		}
	}
	return false
}
