package forecast

import "fmt"

// Units selects which measurement family the response advertises. The
// provider supplies both families natively, so selection never converts a
// number, it only decides which family's fields are populated.
type Units string

const (
	UnitsMetric   Units = "C"
	UnitsImperial Units = "F"
)

func ParseUnits(s string) (Units, error) {
	switch Units(s) {
	case UnitsMetric, UnitsImperial:
		return Units(s), nil
	}
	return "", fmt.Errorf("%w: units must be %q or %q, got %q", ErrInvalidPreference, UnitsMetric, UnitsImperial, s)
}

// selectCurrent validates the raw current section and renders it with the
// chosen unit family populated.
func (u Units) selectCurrent(rc *rawCurrent, section string) (CurrentWeather, error) {
	if rc.LastUpdated == nil {
		return CurrentWeather{}, schemaErr(section, "last_updated")
	}
	cond, err := selectCondition(rc.Condition, section)
	if err != nil {
		return CurrentWeather{}, err
	}
	if rc.Humidity == nil {
		return CurrentWeather{}, schemaErr(section, "humidity")
	}
	if rc.Cloud == nil {
		return CurrentWeather{}, schemaErr(section, "cloud")
	}
	if rc.WindDir == nil {
		return CurrentWeather{}, schemaErr(section, "wind_dir")
	}

	out := CurrentWeather{
		LastUpdated: *rc.LastUpdated,
		Condition:   cond,
		Humidity:    rc.Humidity,
		Cloud:       *rc.Cloud,
		WindDir:     *rc.WindDir,
	}

	if u == UnitsMetric {
		out.TempC = rc.TempC
		out.WindKph = rc.WindKph
		out.PressureMb = rc.PressureMb
		out.PrecipMm = rc.PrecipMm
		out.FeelslikeC = rc.FeelslikeC
		out.WindchillC = rc.WindchillC
		out.VisKm = rc.VisKm
		out.GustKph = rc.GustKph
	} else {
		out.TempF = rc.TempF
		out.WindMph = rc.WindMph
		out.PressureIn = rc.PressureIn
		out.PrecipIn = rc.PrecipIn
		out.FeelslikeF = rc.FeelslikeF
		out.WindchillF = rc.WindchillF
		out.VisMiles = rc.VisMiles
		out.GustMph = rc.GustMph
	}

	return out, nil
}

// selectDay validates one raw daily summary and renders it with the chosen
// unit family populated.
func (u Units) selectDay(rd *rawDay, section string) (DayWeather, error) {
	cond, err := selectCondition(rd.Condition, section)
	if err != nil {
		return DayWeather{}, err
	}
	if rd.DailyWillItRain == nil {
		return DayWeather{}, schemaErr(section, "daily_will_it_rain")
	}
	if rd.DailyChanceOfRain == nil {
		return DayWeather{}, schemaErr(section, "daily_chance_of_rain")
	}
	if rd.DailyWillItSnow == nil {
		return DayWeather{}, schemaErr(section, "daily_will_it_snow")
	}
	if rd.DailyChanceOfSnow == nil {
		return DayWeather{}, schemaErr(section, "daily_chance_of_snow")
	}

	out := DayWeather{
		AvgHumidity:       rd.AvgHumidity,
		DailyWillItRain:   *rd.DailyWillItRain,
		DailyChanceOfRain: *rd.DailyChanceOfRain,
		DailyWillItSnow:   *rd.DailyWillItSnow,
		DailyChanceOfSnow: *rd.DailyChanceOfSnow,
		Condition:         cond,
	}

	if u == UnitsMetric {
		out.MaxtempC = rd.MaxtempC
		out.MintempC = rd.MintempC
		out.AvgtempC = rd.AvgtempC
		out.MaxwindKph = rd.MaxwindKph
		out.TotalprecipMm = rd.TotalprecipMm
		out.AvgvisKm = rd.AvgvisKm
	} else {
		out.MaxtempF = rd.MaxtempF
		out.MintempF = rd.MintempF
		out.AvgtempF = rd.AvgtempF
		out.MaxwindMph = rd.MaxwindMph
		out.TotalprecipIn = rd.TotalprecipIn
		out.AvgvisMiles = rd.AvgvisMiles
	}

	return out, nil
}

// selectHour validates one raw hourly slot and renders it with the chosen
// unit family populated. Humidity is optional in the hourly contract.
func (u Units) selectHour(rh *rawHour, section string) (HourWeather, error) {
	if rh.Time == nil {
		return HourWeather{}, schemaErr(section, "time")
	}
	cond, err := selectCondition(rh.Condition, section)
	if err != nil {
		return HourWeather{}, err
	}
	if rh.WindDir == nil {
		return HourWeather{}, schemaErr(section, "wind_dir")
	}
	if rh.Cloud == nil {
		return HourWeather{}, schemaErr(section, "cloud")
	}
	if rh.WillItRain == nil {
		return HourWeather{}, schemaErr(section, "will_it_rain")
	}
	if rh.ChanceOfRain == nil {
		return HourWeather{}, schemaErr(section, "chance_of_rain")
	}
	if rh.WillItSnow == nil {
		return HourWeather{}, schemaErr(section, "will_it_snow")
	}
	if rh.ChanceOfSnow == nil {
		return HourWeather{}, schemaErr(section, "chance_of_snow")
	}

	out := HourWeather{
		Time:         *rh.Time,
		Condition:    cond,
		WindDir:      *rh.WindDir,
		Humidity:     rh.Humidity,
		Cloud:        *rh.Cloud,
		WillItRain:   *rh.WillItRain,
		ChanceOfRain: *rh.ChanceOfRain,
		WillItSnow:   *rh.WillItSnow,
		ChanceOfSnow: *rh.ChanceOfSnow,
	}

	if u == UnitsMetric {
		out.TempC = rh.TempC
		out.WindKph = rh.WindKph
		out.PressureMb = rh.PressureMb
		out.PrecipMm = rh.PrecipMm
		out.FeelslikeC = rh.FeelslikeC
		out.WindchillC = rh.WindchillC
		out.VisKm = rh.VisKm
		out.GustKph = rh.GustKph
	} else {
		out.TempF = rh.TempF
		out.WindMph = rh.WindMph
		out.PressureIn = rh.PressureIn
		out.PrecipIn = rh.PrecipIn
		out.FeelslikeF = rh.FeelslikeF
		out.WindchillF = rh.WindchillF
		out.VisMiles = rh.VisMiles
		out.GustMph = rh.GustMph
	}

	return out, nil
}

func selectCondition(rc *rawCondition, section string) (Condition, error) {
	if rc == nil {
		return Condition{}, schemaErr(section, "condition")
	}
	if rc.Text == nil {
		return Condition{}, schemaErr(section, "condition.text")
	}
	if rc.Icon == nil {
		return Condition{}, schemaErr(section, "condition.icon")
	}
	return Condition{Text: *rc.Text, Icon: *rc.Icon}, nil
}

func selectLocation(rl *rawLocation) (Location, error) {
	const section = "location"
	if rl.Name == nil {
		return Location{}, schemaErr(section, "name")
	}
	if rl.Region == nil {
		return Location{}, schemaErr(section, "region")
	}
	if rl.Country == nil {
		return Location{}, schemaErr(section, "country")
	}
	if rl.Lat == nil {
		return Location{}, schemaErr(section, "lat")
	}
	if rl.Lon == nil {
		return Location{}, schemaErr(section, "lon")
	}
	if rl.TzID == nil {
		return Location{}, schemaErr(section, "tz_id")
	}
	if rl.LocaltimeEpoch == nil {
		return Location{}, schemaErr(section, "localtime_epoch")
	}
	if rl.Localtime == nil {
		return Location{}, schemaErr(section, "localtime")
	}

	return Location{
		Name:           *rl.Name,
		Region:         *rl.Region,
		Country:        *rl.Country,
		Lat:            *rl.Lat,
		Lon:            *rl.Lon,
		TzID:           *rl.TzID,
		LocaltimeEpoch: *rl.LocaltimeEpoch,
		Localtime:      *rl.Localtime,
	}, nil
}

func selectAstro(ra *rawAstro, section string) (Astro, error) {
	if ra == nil {
		return Astro{}, schemaErr(section, "astro")
	}
	if ra.Sunrise == nil {
		return Astro{}, schemaErr(section, "sunrise")
	}
	if ra.Sunset == nil {
		return Astro{}, schemaErr(section, "sunset")
	}
	if ra.Moonrise == nil {
		return Astro{}, schemaErr(section, "moonrise")
	}
	if ra.Moonset == nil {
		return Astro{}, schemaErr(section, "moonset")
	}
	if ra.MoonPhase == nil {
		return Astro{}, schemaErr(section, "moon_phase")
	}

	return Astro{
		Sunrise:   *ra.Sunrise,
		Sunset:    *ra.Sunset,
		Moonrise:  *ra.Moonrise,
		Moonset:   *ra.Moonset,
		MoonPhase: *ra.MoonPhase,
	}, nil
}
