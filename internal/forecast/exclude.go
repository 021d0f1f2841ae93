package forecast

import "weather-backend/internal/models"

// Field identifies a prunable output field. Using typed constants instead of
// runtime strings keeps the flag-to-field table compile-checked.
type Field string

const (
	FieldPressureMb  Field = "pressure_mb"
	FieldPressureIn  Field = "pressure_in"
	FieldGustMph     Field = "gust_mph"
	FieldGustKph     Field = "gust_kph"
	FieldWindchillC  Field = "windchill_c"
	FieldWindchillF  Field = "windchill_f"
	FieldHumidity    Field = "humidity"
	FieldVisKm       Field = "vis_km"
	FieldVisMiles    Field = "vis_miles"
	FieldAvgvisMiles Field = "avgvis_miles"
	FieldAvgvisKm    Field = "avgvis_km"
	FieldAvgHumidity Field = "avghumidity"
	FieldAstro       Field = "astro"
)

// FieldSet is the set of output fields to omit for a section.
type FieldSet map[Field]struct{}

func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

func (s FieldSet) add(fields ...Field) {
	for _, f := range fields {
		s[f] = struct{}{}
	}
}

// ComputeExclusions derives the omitted-field set from the supplied settings
// profiles. A nil profile contributes nothing: that section is rendered in
// full, which is different from an all-false profile. The rules are
// independent conditionals, multiple rules union their field sets.
func ComputeExclusions(
	current *models.CurrentSettings,
	daily *models.DailySettings,
	hourly *models.HourlySettings,
) FieldSet {
	excluded := FieldSet{}

	if current != nil {
		if !current.Pressure {
			excluded.add(FieldPressureMb, FieldPressureIn)
		}
		if !current.WindExtended {
			excluded.add(FieldGustMph, FieldGustKph, FieldWindchillC, FieldWindchillF)
		}
		if !current.Humidity {
			excluded.add(FieldHumidity)
		}
		if !current.Visibility {
			excluded.add(FieldVisKm, FieldVisMiles)
		}
	}

	if daily != nil {
		if !daily.Visibility {
			excluded.add(FieldAvgvisMiles, FieldAvgvisKm)
		}
		if !daily.Humidity {
			excluded.add(FieldAvgHumidity)
		}
		if !daily.Astro {
			excluded.add(FieldAstro)
		}
	}

	if hourly != nil {
		if !hourly.Visibility {
			excluded.add(FieldVisKm, FieldVisMiles)
		}
		if !hourly.Humidity {
			excluded.add(FieldHumidity)
		}
		if !hourly.WindExtended {
			excluded.add(FieldWindchillC, FieldWindchillF, FieldGustMph, FieldGustKph)
		}
		if !hourly.Pressure {
			excluded.add(FieldPressureMb, FieldPressureIn)
		}
	}

	return excluded
}

// applyExclusions nils every excluded field; omitempty then keeps the key
// out of the serialized document entirely.

func (c *CurrentWeather) applyExclusions(ex FieldSet) {
	if ex.Has(FieldPressureMb) {
		c.PressureMb = nil
	}
	if ex.Has(FieldPressureIn) {
		c.PressureIn = nil
	}
	if ex.Has(FieldGustMph) {
		c.GustMph = nil
	}
	if ex.Has(FieldGustKph) {
		c.GustKph = nil
	}
	if ex.Has(FieldWindchillC) {
		c.WindchillC = nil
	}
	if ex.Has(FieldWindchillF) {
		c.WindchillF = nil
	}
	if ex.Has(FieldHumidity) {
		c.Humidity = nil
	}
	if ex.Has(FieldVisKm) {
		c.VisKm = nil
	}
	if ex.Has(FieldVisMiles) {
		c.VisMiles = nil
	}
}

func (d *DayWeather) applyExclusions(ex FieldSet) {
	if ex.Has(FieldAvgvisMiles) {
		d.AvgvisMiles = nil
	}
	if ex.Has(FieldAvgvisKm) {
		d.AvgvisKm = nil
	}
	if ex.Has(FieldAvgHumidity) {
		d.AvgHumidity = nil
	}
}

func (h *HourWeather) applyExclusions(ex FieldSet) {
	if ex.Has(FieldPressureMb) {
		h.PressureMb = nil
	}
	if ex.Has(FieldPressureIn) {
		h.PressureIn = nil
	}
	if ex.Has(FieldGustMph) {
		h.GustMph = nil
	}
	if ex.Has(FieldGustKph) {
		h.GustKph = nil
	}
	if ex.Has(FieldWindchillC) {
		h.WindchillC = nil
	}
	if ex.Has(FieldWindchillF) {
		h.WindchillF = nil
	}
	if ex.Has(FieldHumidity) {
		h.Humidity = nil
	}
	if ex.Has(FieldVisKm) {
		h.VisKm = nil
	}
	if ex.Has(FieldVisMiles) {
		h.VisMiles = nil
	}
}
