package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"weather-backend/internal/models"
)

const localtimeLayout = "2006-01-02 15:04"

// MinFetchDays is the smallest day count a provider fetch may request; the
// provider rejects single-day requests on forecast endpoints.
const MinFetchDays = 2

// FetchDays returns the day count the upstream fetch must ask for so that a
// build over dayCount days has enough material.
func FetchDays(dayCount int) int {
	if dayCount < MinFetchDays {
		return MinFetchDays
	}
	return dayCount
}

// Build assembles the public forecast document from the raw provider
// response. Settings profiles may be nil, in which case the matching
// section is rendered with its full field set. Any malformed section aborts
// the build, partial documents are never returned.
func Build(
	raw []byte,
	units Units,
	current *models.CurrentSettings,
	daily *models.DailySettings,
	hourly *models.HourlySettings,
	dayCount, hourCount int,
) (*Document, error) {
	if dayCount <= 0 {
		return nil, fmt.Errorf("%w: day count must be positive, got %d", ErrInvalidPreference, dayCount)
	}
	if hourCount <= 0 {
		return nil, fmt.Errorf("%w: hour count must be positive, got %d", ErrInvalidPreference, hourCount)
	}

	var doc rawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, schemaErrFromJSON(err)
	}
	if doc.Location == nil {
		return nil, schemaErr("document", "location")
	}
	if doc.Current == nil {
		return nil, schemaErr("document", "current")
	}
	if doc.Forecast == nil {
		return nil, schemaErr("document", "forecast")
	}

	location, err := selectLocation(doc.Location)
	if err != nil {
		return nil, err
	}

	localTime, err := time.Parse(localtimeLayout, location.Localtime)
	if err != nil {
		return nil, schemaErr("location", "localtime")
	}

	// Each section prunes independently of the others.
	currentEx := ComputeExclusions(current, nil, nil)
	dailyEx := ComputeExclusions(nil, daily, nil)
	hourlyEx := ComputeExclusions(nil, nil, hourly)

	currentWeather, err := units.selectCurrent(doc.Current, "current")
	if err != nil {
		return nil, err
	}
	currentWeather.applyExclusions(currentEx)

	if dayCount > len(doc.Forecast.Forecastday) {
		return nil, fmt.Errorf("%w: %d forecast days requested, raw document has %d",
			ErrInvalidPreference, dayCount, len(doc.Forecast.Forecastday))
	}

	forecastDays := make([]ForecastDay, 0, dayCount)
	var hourBuffer []rawHour

	for i := 0; i < dayCount; i++ {
		rawDay := doc.Forecast.Forecastday[i]
		section := fmt.Sprintf("forecast.forecastday[%d]", i)

		if rawDay.Date == nil {
			return nil, schemaErr(section, "date")
		}
		if rawDay.Day == nil {
			return nil, schemaErr(section, "day")
		}

		dayWeather, err := units.selectDay(rawDay.Day, section+".day")
		if err != nil {
			return nil, err
		}
		dayWeather.applyExclusions(dailyEx)

		entry := ForecastDay{
			Date: *rawDay.Date,
			Day:  dayWeather,
		}

		if !dailyEx.Has(FieldAstro) {
			astro, err := selectAstro(rawDay.Astro, section)
			if err != nil {
				return nil, err
			}
			entry.Astro = &astro
		}

		forecastDays = append(forecastDays, entry)
		hourBuffer = append(hourBuffer, rawDay.Hour...)
	}

	// The hourly window starts at the location's current local hour and runs
	// hourCount slots forward. A short tail is fine, there is no wraparound.
	start := localTime.Hour()
	if start > len(hourBuffer) {
		start = len(hourBuffer)
	}
	end := start + hourCount
	if end > len(hourBuffer) {
		end = len(hourBuffer)
	}

	forecastHours := make([]HourWeather, 0, end-start)
	for i := start; i < end; i++ {
		section := fmt.Sprintf("forecast.forecasthour[%d]", i)
		hourWeather, err := units.selectHour(&hourBuffer[i], section)
		if err != nil {
			return nil, err
		}
		hourWeather.applyExclusions(hourlyEx)
		forecastHours = append(forecastHours, hourWeather)
	}

	alerts := doc.Alerts
	if len(alerts) == 0 {
		alerts = json.RawMessage("{}")
	} else if !bytes.HasPrefix(bytes.TrimSpace(alerts), []byte("{")) {
		return nil, schemaErr("document", "alerts")
	}

	return &Document{
		Location: location,
		Current:  currentWeather,
		Forecast: Forecast{
			Forecastday:  forecastDays,
			Forecasthour: forecastHours,
		},
		Alerts: alerts,
	}, nil
}

// schemaErrFromJSON names the offending field when the decoder can, falling
// back to the document level.
func schemaErrFromJSON(err error) *SchemaValidationError {
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		return schemaErr("document", typeErr.Field)
	}
	return schemaErr("document", "")
}
