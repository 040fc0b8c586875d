package importer

import (
	"fmt"
	"regexp"
	"strings"

	calendar "talentdesk/internal/calendar/domain"
)

// FridayPolicy decides Friday inclusion when the source sheet carries no
// style information at all.
type FridayPolicy string

const (
	// FridaySatSun excludes Friday by default.
	FridaySatSun FridayPolicy = "sat-sun"
	// FridayFriSatSun includes Friday by default.
	FridayFriSatSun FridayPolicy = "fri-sat-sun"
)

// ParseFridayPolicy validates a policy string.
func ParseFridayPolicy(value string) (FridayPolicy, bool) {
	switch FridayPolicy(value) {
	case FridaySatSun, FridayFriSatSun:
		return FridayPolicy(value), true
	default:
		return "", false
	}
}

// Fixed column roles of a weekend-matrix sheet (A-F).
const (
	weekendColStatus   = 0
	weekendColFriday   = 1
	weekendColSaturday = 2
	weekendColSunday   = 3
	weekendColTitle    = 4
	weekendColLocation = 5

	weekendMinColumns = 6
)

var monthHeaderPattern = regexp.MustCompile(
	`(?i)^(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})$`)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

var moneyPattern = regexp.MustCompile(`\$[\d,]+`)

var dayHeaderWords = []string{"friday", "saturday", "sunday", "event", "location"}

// DetectWeekendMatrix reports whether any first cell of the grid is a month
// header of the form "<MonthName> <year>".
func DetectWeekendMatrix(grid *Grid) bool {
	if grid == nil {
		return false
	}
	for _, row := range grid.Cells {
		if len(row) == 0 {
			continue
		}
		if monthHeaderPattern.MatchString(strings.TrimSpace(row[0])) {
			return true
		}
	}
	return false
}

// WeekendMatrixParser interprets the weekend-matrix sheet layout: repeating
// month blocks with one row per event, encoding Friday/Saturday/Sunday
// availability per weekend.
type WeekendMatrixParser struct {
	Year           int
	Policy         FridayPolicy
	AvailableLabel string
	Timezone       string
	DefaultCountry string
}

// Parse walks the grid and produces one normalized event per candidate row.
func (p WeekendMatrixParser) Parse(grid *Grid) []NormalizedEvent {
	if grid == nil {
		return nil
	}
	label := p.AvailableLabel
	if label == "" {
		label = "Available"
	}
	country := p.DefaultCountry
	if country == "" {
		country = "USA"
	}

	var events []NormalizedEvent
	monthActive := false
	month := 0

	for i, row := range grid.Cells {
		first := ""
		if len(row) > 0 {
			first = strings.TrimSpace(row[0])
		}

		if match := monthHeaderPattern.FindStringSubmatch(first); match != nil {
			month = monthNumbers[strings.ToLower(match[1])]
			monthActive = fmt.Sprintf("%d", p.Year) == match[2]
			continue
		}
		if isDayHeaderRow(first, row) {
			continue
		}
		if !monthActive || grid.RowWidth(i) < weekendMinColumns {
			continue
		}

		statusText := strings.TrimSpace(row[weekendColStatus])
		friDay := digitsOnly(row[weekendColFriday])
		satDay := digitsOnly(row[weekendColSaturday])
		sunDay := digitsOnly(row[weekendColSunday])
		title := strings.TrimSpace(row[weekendColTitle])
		location := strings.TrimSpace(row[weekendColLocation])

		hasDays := friDay != "" || satDay != "" || sunDay != ""
		if title == "" && !hasDays {
			// Blank or decorative row.
			continue
		}

		event := NormalizedEvent{
			RowIndex:    i + 1,
			Values:      make(map[Field]string),
			SourceFile:  grid.Source,
			SourceRowID: fmt.Sprintf("row-%d", i+1),
		}

		status := calendar.Status("")
		notesInternal := ""
		if title == "" {
			title = label
			status = calendar.StatusAvailable
			event.Errors = append(event.Errors,
				fmt.Sprintf("%s event title missing, marked %s", WarningPrefix, label))
		} else {
			status, notesInternal = deriveWeekendStatus(statusText)
			if notesInternal != "" && status == calendar.StatusBooked && !containsAnyFold(statusText, "booked") {
				event.Errors = append(event.Errors,
					fmt.Sprintf("%s unrecognized status %q defaulted to booked", WarningPrefix, statusText))
			}
		}

		var dates []string
		if friDay != "" && p.includeFriday(grid, i) {
			dates = append(dates, weekendDate(p.Year, month, friDay))
		}
		if satDay != "" {
			dates = append(dates, weekendDate(p.Year, month, satDay))
		}
		if sunDay != "" {
			dates = append(dates, weekendDate(p.Year, month, sunDay))
		}

		if len(dates) > 0 {
			event.Values[FieldStartDate] = dates[0]
			event.Values[FieldEndDate] = dates[len(dates)-1]
		} else {
			event.Errors = append(event.Errors, fmt.Sprintf("Missing %s", FieldStartDate))
		}

		city, state, locCountry := parseWeekendLocation(location, country)

		event.Values[FieldEventTitle] = title
		event.Values[FieldStatus] = string(status)
		event.Values[FieldLocationCity] = city
		event.Values[FieldLocationState] = state
		event.Values[FieldLocationCountry] = locCountry
		event.Values[FieldAllDay] = "true"
		event.Values[FieldTimezone] = p.Timezone
		if notesInternal != "" {
			event.Values[FieldNotesInternal] = notesInternal
		}

		events = append(events, event)
	}
	return events
}

// includeFriday applies the fill heuristic: a non-default fill on the Friday
// cell includes Friday; absent style metadata falls back to the policy.
func (p WeekendMatrixParser) includeFriday(grid *Grid, row int) bool {
	styles := grid.Styles
	if styles == nil {
		styles = NoStyles{}
	}
	switch styles.Fill(row, weekendColFriday) {
	case FillPresent:
		return true
	case FillNone:
		return false
	default:
		return p.Policy == FridayFriSatSun
	}
}

// deriveWeekendStatus maps free status text via case-insensitive substring
// matching, first match wins.
func deriveWeekendStatus(text string) (calendar.Status, string) {
	if strings.TrimSpace(text) == "" {
		return calendar.StatusAvailable, ""
	}
	switch {
	case containsAnyFold(text, "booked"):
		return calendar.StatusBooked, moneyPattern.FindString(text)
	case containsAnyFold(text, "hold"):
		return calendar.StatusHold, ""
	case containsAnyFold(text, "tentative"):
		return calendar.StatusTentative, ""
	case containsAnyFold(text, "cancelled", "canceled"):
		return calendar.StatusCancelled, ""
	case containsAnyFold(text, "personal", "ooo", "out of office", "unavailable", "not available"):
		return calendar.StatusNotAvailable, ""
	default:
		// Unrecognized free text: assume a booking and keep the raw text.
		return calendar.StatusBooked, text
	}
}

// parseWeekendLocation splits "City, ST, Country" style text. With three or
// more parts the last two are state and country; the rest is the city.
func parseWeekendLocation(text, defaultCountry string) (city, state, country string) {
	country = defaultCountry
	if text == "" {
		return "", "", country
	}
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch {
	case len(parts) == 1:
		city = parts[0]
	case len(parts) == 2:
		city = parts[0]
		state = parts[1]
	default:
		city = strings.Join(parts[:len(parts)-2], ", ")
		state = parts[len(parts)-2]
		country = parts[len(parts)-1]
	}
	return city, state, country
}

func weekendDate(year, month int, day string) string {
	return fmt.Sprintf("%04d-%02d-%s", year, month, padDay(day))
}

func padDay(day string) string {
	if len(day) == 1 {
		return "0" + day
	}
	return day
}

func isDayHeaderRow(first string, row []string) bool {
	if first != "" && containsAnyFold(first, dayHeaderWords...) {
		return true
	}
	// Sheets often label the day columns rather than the status column.
	if len(row) > weekendColSunday &&
		containsAnyFold(row[weekendColFriday], "friday") &&
		containsAnyFold(row[weekendColSaturday], "saturday") {
		return true
	}
	return false
}

func containsAnyFold(text string, words ...string) bool {
	lower := strings.ToLower(text)
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func digitsOnly(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
}
