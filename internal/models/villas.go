package models

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type VillaStatus string

const (
	StatusPending  VillaStatus = "pending"
	StatusActive   VillaStatus = "active"
	StatusInactive VillaStatus = "inactive"
)

// Coordinates maps to PostGIS geography(Point,4326)
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Scan allows Coordinates to be read from Postgres
func (c *Coordinates) Scan(src interface{}) error {
	var dataStr string

	switch v := src.(type) {
	case []byte:
		dataStr = string(v)
	case string:
		dataStr = v
	case nil:
		// Handle nil coordinates gracefully - set to zero
		c.Latitude = 0
		c.Longitude = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Coordinates", src)
	}

	// First try WKT formats (for backward compatibility)
	var lon, lat float64
	var err error

	_, err = fmt.Sscanf(dataStr, "POINT(%f %f)", &lon, &lat)
	if err == nil {
		c.Latitude = lat
		c.Longitude = lon
		return nil
	}

	_, err = fmt.Sscanf(dataStr, "SRID=4326;POINT(%f %f)", &lon, &lat)
	if err == nil {
		c.Latitude = lat
		c.Longitude = lon
		return nil
	}

	// Check if it's a hex-encoded EWKB string
	if len(dataStr) >= 32 && isHexString(dataStr) {
		ewkbBytes, err := hex.DecodeString(dataStr)
		if err != nil {
			return fmt.Errorf("failed to decode EWKB hex: %v", err)
		}

		return c.parseEWKB(ewkbBytes)
	}

	// If all parsing fails, try to parse as plain "lat,lng"
	if parts := strings.Split(dataStr, ","); len(parts) == 2 {
		if lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
			if lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
				c.Latitude = lat
				c.Longitude = lng
				return nil
			}
		}
	}

	return fmt.Errorf("failed to parse coordinates from: %q", dataStr)
}

// isHexString checks if a string contains only hexadecimal characters
func isHexString(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

// parseEWKB parses Extended Well-Known Binary format for PostGIS Point
func (c *Coordinates) parseEWKB(data []byte) error {
	if len(data) < 21 {
		return fmt.Errorf("EWKB data too short: %d bytes", len(data))
	}

	// EWKB format for Point with SRID:
	// Byte 0: Endianness (1 = little endian)
	// Bytes 1-4: Type with SRID flag (0x20000001 = Point with SRID)
	// Bytes 5-8: SRID (4326)
	// Bytes 9-16: X coordinate (longitude)
	// Bytes 17-24: Y coordinate (latitude)

	endian := data[0]
	var order binary.ByteOrder
	if endian == 1 {
		order = binary.LittleEndian
	} else {
		order = binary.BigEndian
	}

	typ := order.Uint32(data[1:5])
	if typ&0x20000000 == 0 {
		return fmt.Errorf("EWKB type does not have SRID flag: %x", typ)
	}

	srid := order.Uint32(data[5:9])
	if srid != 4326 {
		return fmt.Errorf("unexpected SRID: %d (expected 4326)", srid)
	}

	c.Longitude = math.Float64frombits(order.Uint64(data[9:17]))
	c.Latitude = math.Float64frombits(order.Uint64(data[17:25]))

	return nil
}

// Value allows Coordinates to be written into Postgres
func (c Coordinates) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", c.Longitude, c.Latitude), nil
}

type Villa struct {
	Id     uuid.UUID `db:"id" json:"id,omitempty"`
	HostId uuid.UUID `db:"host_id" json:"host_id,omitempty"`

	// MARKETING & CORE INFO
	Name        string   `db:"name" json:"name,omitempty" validate:"required"`
	Headline    string   `db:"headline" json:"headline,omitempty"`
	Description string   `db:"description" json:"description,omitempty"`
	Images      []string `db:"images" json:"images,omitempty"`
	Slug        string   `db:"slug" json:"slug,omitempty"`
	Tags        []string `db:"tags" json:"tags,omitempty"`
	Region      string   `db:"region" json:"region,omitempty" validate:"required"`

	// CAPACITY & STAY BOUNDS
	MaxGuests int `db:"max_guests" json:"max_guests,omitempty" validate:"required,min=1"`
	Bedrooms  int `db:"bedrooms" json:"bedrooms,omitempty"`
	Bathrooms int `db:"bathrooms" json:"bathrooms,omitempty"`
	MinNights int `db:"min_nights" json:"min_nights,omitempty" validate:"required,min=1"`
	MaxNights int `db:"max_nights" json:"max_nights,omitempty" validate:"required,min=1"`

	// LOCATION
	Location    string      `db:"location" json:"location,omitempty"`
	Coordinates Coordinates `db:"coordinates" json:"coordinates"`

	// AMENITIES & RULES
	Amenities map[string]any `db:"amenities" json:"amenities,omitempty"`
	Rules     []string       `db:"rules" json:"rules,omitempty"`

	// PRICING (per night, decimal amounts; arithmetic happens in cents)
	PricePerNight float64 `db:"price_per_night" json:"price_per_night,omitempty" validate:"required,gt=0"`
	CleaningFee   float64 `db:"cleaning_fee" json:"cleaning_fee,omitempty" validate:"gte=0"`
	ServiceFee    float64 `db:"service_fee" json:"service_fee,omitempty" validate:"gte=0"`
	Taxes         float64 `db:"taxes" json:"taxes,omitempty" validate:"gte=0"`

	// BOOKING BEHAVIOUR
	IsInstantBook      bool   `db:"is_instant_book" json:"is_instant_book"`
	CancellationPolicy string `db:"cancellation_policy" json:"cancellation_policy,omitempty"`

	// STATUS & ADMIN
	Status    VillaStatus `db:"status" json:"status,omitempty"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the villa is currently bookable by guests.
func (v *Villa) IsActive() bool {
	return v.Status == StatusActive
}
