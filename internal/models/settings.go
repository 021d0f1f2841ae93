package models

// Section settings toggle categories of weather fields in the forecast
// response. A false flag removes the category's fields from the output
// entirely, it does not null them.

type CurrentSettings struct {
	Visibility   bool `json:"visibility"`
	Humidity     bool `json:"humidity"`
	WindExtended bool `json:"wind_extended"`
	Pressure     bool `json:"pressure"`
}

type DailySettings struct {
	Visibility bool `json:"visibility"`
	Humidity   bool `json:"humidity"`
	Astro      bool `json:"astro"`
}

type HourlySettings struct {
	Visibility   bool `json:"visibility"`
	Humidity     bool `json:"humidity"`
	WindExtended bool `json:"wind_extended"`
	Pressure     bool `json:"pressure"`
}

// UserSettings holds the per-user display preferences: how many days and
// hours of forecast to show and which units family to report.
type UserSettings struct {
	Current       bool           `json:"current"`
	Daily         int            `json:"daily"`
	Hourly        int            `json:"hourly"`
	Units         string         `json:"units"`
	DarkTheme     bool           `json:"dark_theme"`
	Alerts        bool           `json:"alerts"`
	Notifications map[int]string `json:"notifications"`
}

// DefaultUserSettings are the values written for a freshly registered user.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Current:       true,
		Daily:         3,
		Hourly:        6,
		Units:         "F",
		DarkTheme:     false,
		Alerts:        false,
		Notifications: map[int]string{},
	}
}

func DefaultCurrentSettings() CurrentSettings {
	return CurrentSettings{Visibility: true, Humidity: true, WindExtended: true, Pressure: true}
}

func DefaultDailySettings() DailySettings {
	return DailySettings{Visibility: true, Humidity: true, Astro: true}
}

func DefaultHourlySettings() HourlySettings {
	return HourlySettings{Visibility: true, Humidity: true, WindExtended: true, Pressure: true}
}

// SettingsBundle is the full preference set returned by the settings API.
type SettingsBundle struct {
	Settings UserSettings    `json:"settings"`
	Current  CurrentSettings `json:"current"`
	Daily    DailySettings   `json:"daily"`
	Hourly   HourlySettings  `json:"hourly"`
}

// DefaultSettingsBundle is the full preference set of a fresh or anonymous
// user.
func DefaultSettingsBundle() SettingsBundle {
	return SettingsBundle{
		Settings: DefaultUserSettings(),
		Current:  DefaultCurrentSettings(),
		Daily:    DefaultDailySettings(),
		Hourly:   DefaultHourlySettings(),
	}
}

// Apply overlays set patch fields onto the bundle in place.
func (b *SettingsBundle) Apply(patch SettingsPatch) {
	if s := patch.Settings; s != nil {
		if s.Current != nil {
			b.Settings.Current = *s.Current
		}
		if s.Daily != nil {
			b.Settings.Daily = *s.Daily
		}
		if s.Hourly != nil {
			b.Settings.Hourly = *s.Hourly
		}
		if s.Units != nil {
			b.Settings.Units = *s.Units
		}
		if s.DarkTheme != nil {
			b.Settings.DarkTheme = *s.DarkTheme
		}
		if s.Alerts != nil {
			b.Settings.Alerts = *s.Alerts
		}
	}
	if c := patch.Current; c != nil {
		if c.Visibility != nil {
			b.Current.Visibility = *c.Visibility
		}
		if c.Humidity != nil {
			b.Current.Humidity = *c.Humidity
		}
		if c.WindExtended != nil {
			b.Current.WindExtended = *c.WindExtended
		}
		if c.Pressure != nil {
			b.Current.Pressure = *c.Pressure
		}
	}
	if d := patch.Daily; d != nil {
		if d.Visibility != nil {
			b.Daily.Visibility = *d.Visibility
		}
		if d.Humidity != nil {
			b.Daily.Humidity = *d.Humidity
		}
		if d.Astro != nil {
			b.Daily.Astro = *d.Astro
		}
	}
	if h := patch.Hourly; h != nil {
		if h.Visibility != nil {
			b.Hourly.Visibility = *h.Visibility
		}
		if h.Humidity != nil {
			b.Hourly.Humidity = *h.Humidity
		}
		if h.WindExtended != nil {
			b.Hourly.WindExtended = *h.WindExtended
		}
		if h.Pressure != nil {
			b.Hourly.Pressure = *h.Pressure
		}
	}
}

// SettingsPatch carries a partial settings update: nil profiles/fields are
// left untouched.
type SettingsPatch struct {
	Settings *UserSettingsPatch    `json:"settings,omitempty"`
	Current  *CurrentSettingsPatch `json:"current,omitempty"`
	Daily    *DailySettingsPatch   `json:"daily,omitempty"`
	Hourly   *HourlySettingsPatch  `json:"hourly,omitempty"`
}

type UserSettingsPatch struct {
	Current   *bool   `json:"current,omitempty"`
	Daily     *int    `json:"daily,omitempty"`
	Hourly    *int    `json:"hourly,omitempty"`
	Units     *string `json:"units,omitempty"`
	DarkTheme *bool   `json:"dark_theme,omitempty"`
	Alerts    *bool   `json:"alerts,omitempty"`
}

type CurrentSettingsPatch struct {
	Visibility   *bool `json:"visibility,omitempty"`
	Humidity     *bool `json:"humidity,omitempty"`
	WindExtended *bool `json:"wind_extended,omitempty"`
	Pressure     *bool `json:"pressure,omitempty"`
}

type DailySettingsPatch struct {
	Visibility *bool `json:"visibility,omitempty"`
	Humidity   *bool `json:"humidity,omitempty"`
	Astro      *bool `json:"astro,omitempty"`
}

type HourlySettingsPatch struct {
	Visibility   *bool `json:"visibility,omitempty"`
	Humidity     *bool `json:"humidity,omitempty"`
	WindExtended *bool `json:"wind_extended,omitempty"`
	Pressure     *bool `json:"pressure,omitempty"`
}

// FavoriteLocation is a provider location pinned by the user, either as the
// single favorite slot or a wishlist entry.
type FavoriteLocation struct {
	LocID      int    `json:"loc_id"`
	LocName    string `json:"loc_name"`
	LocRegion  string `json:"loc_region"`
	LocCountry string `json:"loc_country"`
}
