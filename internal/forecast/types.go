// Package forecast turns a raw weatherapi.com forecast document into the
// filtered, unit-selected response shape the API returns. The pipeline is
// pure: one raw document plus the caller's preference profiles in, one
// assembled document out, no I/O and no shared state.
package forecast

import "encoding/json"

// Location is passed through from the provider verbatim.
type Location struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
	Localtime      string  `json:"localtime"`
}

type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// CurrentWeather is the flat public current-conditions record. Every
// unit-specific or prunable field is a pointer so that a field excluded by
// the user's settings, or belonging to the non-selected unit family, is
// absent from the serialized output rather than zero-valued.
type CurrentWeather struct {
	LastUpdated string    `json:"last_updated"`
	Condition   Condition `json:"condition"`
	Humidity    *int      `json:"humidity,omitempty"`
	Cloud       int       `json:"cloud"`
	WindDir     string    `json:"wind_dir"`

	TempC      *float64 `json:"temp_c,omitempty"`
	WindKph    *float64 `json:"wind_kph,omitempty"`
	PressureMb *float64 `json:"pressure_mb,omitempty"`
	PrecipMm   *float64 `json:"precip_mm,omitempty"`
	FeelslikeC *float64 `json:"feelslike_c,omitempty"`
	WindchillC *float64 `json:"windchill_c,omitempty"`
	VisKm      *float64 `json:"vis_km,omitempty"`
	GustKph    *float64 `json:"gust_kph,omitempty"`

	TempF      *float64 `json:"temp_f,omitempty"`
	WindMph    *float64 `json:"wind_mph,omitempty"`
	PressureIn *float64 `json:"pressure_in,omitempty"`
	PrecipIn   *float64 `json:"precip_in,omitempty"`
	FeelslikeF *float64 `json:"feelslike_f,omitempty"`
	WindchillF *float64 `json:"windchill_f,omitempty"`
	VisMiles   *float64 `json:"vis_miles,omitempty"`
	GustMph    *float64 `json:"gust_mph,omitempty"`
}

// DayWeather is the flat public daily-summary record.
type DayWeather struct {
	AvgHumidity       *float64  `json:"avghumidity,omitempty"`
	DailyWillItRain   int       `json:"daily_will_it_rain"`
	DailyChanceOfRain int       `json:"daily_chance_of_rain"`
	DailyWillItSnow   int       `json:"daily_will_it_snow"`
	DailyChanceOfSnow int       `json:"daily_chance_of_snow"`
	Condition         Condition `json:"condition"`

	MaxtempC      *float64 `json:"maxtemp_c,omitempty"`
	MintempC      *float64 `json:"mintemp_c,omitempty"`
	AvgtempC      *float64 `json:"avgtemp_c,omitempty"`
	MaxwindKph    *float64 `json:"maxwind_kph,omitempty"`
	TotalprecipMm *float64 `json:"totalprecip_mm,omitempty"`
	AvgvisKm      *float64 `json:"avgvis_km,omitempty"`

	MaxtempF      *float64 `json:"maxtemp_f,omitempty"`
	MintempF      *float64 `json:"mintemp_f,omitempty"`
	AvgtempF      *float64 `json:"avgtemp_f,omitempty"`
	MaxwindMph    *float64 `json:"maxwind_mph,omitempty"`
	TotalprecipIn *float64 `json:"totalprecip_in,omitempty"`
	AvgvisMiles   *float64 `json:"avgvis_miles,omitempty"`
}

type Astro struct {
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	Moonrise  string `json:"moonrise"`
	Moonset   string `json:"moonset"`
	MoonPhase string `json:"moon_phase"`
}

// ForecastDay is one assembled day entry. Astro is nil, and therefore an
// absent key, when the daily astro flag is off.
type ForecastDay struct {
	Date  string     `json:"date"`
	Day   DayWeather `json:"day"`
	Astro *Astro     `json:"astro,omitempty"`
}

// HourWeather is the flat public hourly record.
type HourWeather struct {
	Time         string    `json:"time"`
	Condition    Condition `json:"condition"`
	WindDir      string    `json:"wind_dir"`
	Humidity     *int      `json:"humidity,omitempty"`
	Cloud        int       `json:"cloud"`
	WillItRain   int       `json:"will_it_rain"`
	ChanceOfRain int       `json:"chance_of_rain"`
	WillItSnow   int       `json:"will_it_snow"`
	ChanceOfSnow int       `json:"chance_of_snow"`

	TempC      *float64 `json:"temp_c,omitempty"`
	WindKph    *float64 `json:"wind_kph,omitempty"`
	PressureMb *float64 `json:"pressure_mb,omitempty"`
	PrecipMm   *float64 `json:"precip_mm,omitempty"`
	FeelslikeC *float64 `json:"feelslike_c,omitempty"`
	WindchillC *float64 `json:"windchill_c,omitempty"`
	VisKm      *float64 `json:"vis_km,omitempty"`
	GustKph    *float64 `json:"gust_kph,omitempty"`

	TempF      *float64 `json:"temp_f,omitempty"`
	WindMph    *float64 `json:"wind_mph,omitempty"`
	PressureIn *float64 `json:"pressure_in,omitempty"`
	PrecipIn   *float64 `json:"precip_in,omitempty"`
	FeelslikeF *float64 `json:"feelslike_f,omitempty"`
	WindchillF *float64 `json:"windchill_f,omitempty"`
	VisMiles   *float64 `json:"vis_miles,omitempty"`
	GustMph    *float64 `json:"gust_mph,omitempty"`
}

type Forecast struct {
	Forecastday  []ForecastDay `json:"forecastday"`
	Forecasthour []HourWeather `json:"forecasthour"`
}

// Document is the assembled public forecast response.
type Document struct {
	Location Location        `json:"location"`
	Current  CurrentWeather  `json:"current"`
	Forecast Forecast        `json:"forecast"`
	Alerts   json.RawMessage `json:"alerts"`
}

// raw mirrors of the provider document. Required base fields are pointers
// so an absent key is distinguishable from a zero value during validation;
// unit-family numbers are optional in the provider contract already.

type rawDocument struct {
	Location *rawLocation    `json:"location"`
	Current  *rawCurrent     `json:"current"`
	Forecast *rawForecast    `json:"forecast"`
	Alerts   json.RawMessage `json:"alerts"`
}

type rawLocation struct {
	Name           *string  `json:"name"`
	Region         *string  `json:"region"`
	Country        *string  `json:"country"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
	TzID           *string  `json:"tz_id"`
	LocaltimeEpoch *int64   `json:"localtime_epoch"`
	Localtime      *string  `json:"localtime"`
}

type rawCondition struct {
	Text *string `json:"text"`
	Icon *string `json:"icon"`
}

type rawCurrent struct {
	LastUpdated *string       `json:"last_updated"`
	Condition   *rawCondition `json:"condition"`
	Humidity    *int          `json:"humidity"`
	Cloud       *int          `json:"cloud"`
	WindDir     *string       `json:"wind_dir"`

	TempC      *float64 `json:"temp_c"`
	WindKph    *float64 `json:"wind_kph"`
	PressureMb *float64 `json:"pressure_mb"`
	PrecipMm   *float64 `json:"precip_mm"`
	FeelslikeC *float64 `json:"feelslike_c"`
	WindchillC *float64 `json:"windchill_c"`
	VisKm      *float64 `json:"vis_km"`
	GustKph    *float64 `json:"gust_kph"`

	TempF      *float64 `json:"temp_f"`
	WindMph    *float64 `json:"wind_mph"`
	PressureIn *float64 `json:"pressure_in"`
	PrecipIn   *float64 `json:"precip_in"`
	FeelslikeF *float64 `json:"feelslike_f"`
	WindchillF *float64 `json:"windchill_f"`
	VisMiles   *float64 `json:"vis_miles"`
	GustMph    *float64 `json:"gust_mph"`
}

type rawForecast struct {
	Forecastday []rawForecastDay `json:"forecastday"`
}

type rawForecastDay struct {
	Date  *string   `json:"date"`
	Day   *rawDay   `json:"day"`
	Astro *rawAstro `json:"astro"`
	Hour  []rawHour `json:"hour"`
}

type rawDay struct {
	AvgHumidity       *float64      `json:"avghumidity"`
	DailyWillItRain   *int          `json:"daily_will_it_rain"`
	DailyChanceOfRain *int          `json:"daily_chance_of_rain"`
	DailyWillItSnow   *int          `json:"daily_will_it_snow"`
	DailyChanceOfSnow *int          `json:"daily_chance_of_snow"`
	Condition         *rawCondition `json:"condition"`

	MaxtempC      *float64 `json:"maxtemp_c"`
	MintempC      *float64 `json:"mintemp_c"`
	AvgtempC      *float64 `json:"avgtemp_c"`
	MaxwindKph    *float64 `json:"maxwind_kph"`
	TotalprecipMm *float64 `json:"totalprecip_mm"`
	AvgvisKm      *float64 `json:"avgvis_km"`

	MaxtempF      *float64 `json:"maxtemp_f"`
	MintempF      *float64 `json:"mintemp_f"`
	AvgtempF      *float64 `json:"avgtemp_f"`
	MaxwindMph    *float64 `json:"maxwind_mph"`
	TotalprecipIn *float64 `json:"totalprecip_in"`
	AvgvisMiles   *float64 `json:"avgvis_miles"`
}

type rawAstro struct {
	Sunrise   *string `json:"sunrise"`
	Sunset    *string `json:"sunset"`
	Moonrise  *string `json:"moonrise"`
	Moonset   *string `json:"moonset"`
	MoonPhase *string `json:"moon_phase"`
}

type rawHour struct {
	Time         *string       `json:"time"`
	Condition    *rawCondition `json:"condition"`
	WindDir      *string       `json:"wind_dir"`
	Humidity     *int          `json:"humidity"`
	Cloud        *int          `json:"cloud"`
	WillItRain   *int          `json:"will_it_rain"`
	ChanceOfRain *int          `json:"chance_of_rain"`
	WillItSnow   *int          `json:"will_it_snow"`
	ChanceOfSnow *int          `json:"chance_of_snow"`

	TempC      *float64 `json:"temp_c"`
	WindKph    *float64 `json:"wind_kph"`
	PressureMb *float64 `json:"pressure_mb"`
	PrecipMm   *float64 `json:"precip_mm"`
	FeelslikeC *float64 `json:"feelslike_c"`
	WindchillC *float64 `json:"windchill_c"`
	VisKm      *float64 `json:"vis_km"`
	GustKph    *float64 `json:"gust_kph"`

	TempF      *float64 `json:"temp_f"`
	WindMph    *float64 `json:"wind_mph"`
	PressureIn *float64 `json:"pressure_in"`
	PrecipIn   *float64 `json:"precip_in"`
	FeelslikeF *float64 `json:"feelslike_f"`
	WindchillF *float64 `json:"windchill_f"`
	VisMiles   *float64 `json:"vis_miles"`
	GustMph    *float64 `json:"gust_mph"`
}
