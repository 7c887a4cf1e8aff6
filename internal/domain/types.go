package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Restaurant struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Neighborhood   string         `json:"neighborhood,omitempty"`
	Address        string         `json:"address"`
	LatLng         LatLng         `json:"latlng"`
	CuisineType    string         `json:"cuisine_type"`
	Photograph     string         `json:"photograph,omitempty"`
	PhotoAlt       string         `json:"alt,omitempty"`
	PhotoCaption   string         `json:"caption,omitempty"`
	OperatingHours OperatingHours `json:"operating_hours,omitempty"`
	Reviews        []Review       `json:"reviews,omitempty"`
}

type Review struct {
	ID           int64     `json:"id,omitempty"`
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	Rating       float64   `json:"rating"`
	Comments     string    `json:"comments"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	// DisplayDate is the relative form of UpdatedAt shown on the page.
	DisplayDate string `json:"-"`
}

// ValidRating reports whether f is a review rating: 0 through 5 in
// half-point steps.
func ValidRating(f float64) bool {
	if math.IsNaN(f) || f < 0 || f > 5 {
		return false
	}
	return math.Trunc(f*2) == f*2
}

// DayHours is one operating-hours entry, e.g. {"Monday", "5:30 pm - 11:00 pm"}.
type DayHours struct {
	Day   string
	Hours string
}

// OperatingHours keeps the entries in the order the JSON object lists them.
// A plain map would lose that order.
type OperatingHours []DayHours

func (h OperatingHours) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Day)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Hours)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (h *OperatingHours) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*h = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("operating_hours: expected object, got %v", tok)
	}
	out := OperatingHours{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		day, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("operating_hours: expected string key, got %v", keyTok)
		}
		var hours string
		if err := dec.Decode(&hours); err != nil {
			return fmt.Errorf("operating_hours[%s]: %w", day, err)
		}
		out = append(out, DayHours{Day: day, Hours: hours})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*h = out
	return nil
}
