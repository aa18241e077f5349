package models

// Requests for chart HTTP endpoints. Defined in domain for consistency and reuse.

// ChartRequest is the transport-level payload for chart computation.
// Ayanamsa is bound but never allowed through: the engine rejects any
// non-null value because only the tropical zodiac is supported.
type ChartRequest struct {
	DatetimeUTC string  `json:"datetime_utc" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	HouseSystem string  `json:"house_system" default:"W" validate:"oneof=W"`
	Zodiac      string  `json:"zodiac" default:"tropical" validate:"oneof=tropical"`
	Ayanamsa    *string `json:"ayanamsa"`
}

// StoreChartRequest adds optional external entity linkage to a computation.
type StoreChartRequest struct {
	ChartRequest
	EntityID   string `json:"entity_id" validate:"omitempty,max=128"`
	EntityType string `json:"entity_type" validate:"omitempty,max=64"`
}

// ListChartsRequest filters stored charts.
type ListChartsRequest struct {
	EntityID   string `query:"entity_id" json:"entity_id"`
	EntityType string `query:"entity_type" json:"entity_type"`
	Limit      int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
}

// LiveTransitsRequest configures the websocket transit stream.
type LiveTransitsRequest struct {
	IntervalSeconds int `query:"interval_seconds" json:"interval_seconds" default:"60" validate:"gte=1,lte=3600"`
}

// Input converts a transport request into the engine's input contract.
func (r *ChartRequest) Input() ChartInput {
	return ChartInput{
		DatetimeUTC: r.DatetimeUTC,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		HouseSystem: r.HouseSystem,
		Zodiac:      r.Zodiac,
		Ayanamsa:    r.Ayanamsa,
	}
}
