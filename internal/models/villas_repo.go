package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// VillaFilters carries optional search constraints; zero values mean
// "no constraint".
type VillaFilters struct {
	Region    string
	Guests    int
	MinPrice  float64
	MaxPrice  float64
	CheckIn   string
	CheckOut  string
	OnlyActive bool
}

type VillasRepo interface {
	CreateVilla(ctx context.Context, villa *Villa, hostId uuid.UUID) (*Villa, error)
	GetVillaByID(ctx context.Context, id uuid.UUID) (*Villa, error)
	ListVillas(ctx context.Context, offset, limit int) ([]*Villa, int, error)
	SearchVillas(ctx context.Context, filters VillaFilters, offset, limit int) ([]*Villa, int, error)
	ListVillasByHost(ctx context.Context, hostId uuid.UUID) ([]*Villa, error)
	UpdateVilla(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*Villa, error)
	DeleteVilla(ctx context.Context, id uuid.UUID, hostId uuid.UUID, accessToken string) error
}

// decodeVillaRows unmarshals postgrest rows, handling the PostGIS
// coordinates column which comes back as an EWKB/WKT string.
func decodeVillaRows(raw []byte) ([]*Villa, error) {
	var rawVillas []map[string]interface{}
	if err := json.Unmarshal(raw, &rawVillas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal villas: %v", err)
	}

	villas := make([]*Villa, 0, len(rawVillas))
	for _, rawVilla := range rawVillas {
		villa := &Villa{}

		var coordStr string
		if coords, exists := rawVilla["coordinates"]; exists {
			if str, ok := coords.(string); ok {
				coordStr = str
			}
			delete(rawVilla, "coordinates")
		}

		villaData, _ := json.Marshal(rawVilla)
		if err := json.Unmarshal(villaData, villa); err != nil {
			return nil, fmt.Errorf("failed to convert villa data: %v", err)
		}

		if coordStr != "" {
			if err := villa.Coordinates.Scan([]byte(coordStr)); err != nil {
				return nil, fmt.Errorf("failed to parse coordinates for villa %v: %v", rawVilla["id"], err)
			}
		}

		villas = append(villas, villa)
	}

	return villas, nil
}

func (su *SupabaseRepo) CreateVilla(ctx context.Context, villa *Villa, hostId uuid.UUID) (*Villa, error) {
	// Convert coordinates to PostGIS format manually for the REST API
	villaData := map[string]interface{}{
		"id":                  villa.Id,
		"host_id":             hostId,
		"name":                villa.Name,
		"headline":            villa.Headline,
		"description":         villa.Description,
		"images":              villa.Images,
		"slug":                villa.Slug,
		"tags":                villa.Tags,
		"region":              villa.Region,
		"max_guests":          villa.MaxGuests,
		"bedrooms":            villa.Bedrooms,
		"bathrooms":           villa.Bathrooms,
		"min_nights":          villa.MinNights,
		"max_nights":          villa.MaxNights,
		"location":            villa.Location,
		"coordinates":         fmt.Sprintf("SRID=4326;POINT(%f %f)", villa.Coordinates.Longitude, villa.Coordinates.Latitude),
		"amenities":           villa.Amenities,
		"rules":               villa.Rules,
		"price_per_night":     villa.PricePerNight,
		"cleaning_fee":        villa.CleaningFee,
		"service_fee":         villa.ServiceFee,
		"taxes":               villa.Taxes,
		"is_instant_book":     villa.IsInstantBook,
		"cancellation_policy": villa.CancellationPolicy,
		"status":              villa.Status,
		"created_at":          villa.CreatedAt,
		"updated_at":          villa.UpdatedAt,
	}

	raw, count, err := su.supabaseClient.
		From(VillasTable).
		Insert(villaData, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert villa: %v", err)
	}

	if count == 0 {
		return nil, fmt.Errorf("no villa returned after insert")
	}

	created, err := decodeVillaRows(raw)
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no villa returned after insert")
	}

	return created[0], nil
}

func (su *SupabaseRepo) GetVillaByID(ctx context.Context, id uuid.UUID) (*Villa, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(VillasTable).
		Select("*", "exact", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get villa by ID: %v", err)
	}

	villas, err := decodeVillaRows(raw)
	if err != nil {
		return nil, err
	}
	if len(villas) == 0 {
		return nil, nil
	}

	return villas[0], nil
}

func (su *SupabaseRepo) ListVillas(ctx context.Context, offset, limit int) ([]*Villa, int, error) {
	raw, count, err := su.supabaseClient.From(VillasTable).
		Select("*", "exact", false).
		Eq("status", string(StatusActive)).
		Range(offset, offset+limit-1, "").
		Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list villas: %v", err)
	}

	if count == 0 {
		return []*Villa{}, 0, nil
	}

	villas, err := decodeVillaRows(raw)
	if err != nil {
		return nil, 0, err
	}

	return villas, int(count), nil
}

func (su *SupabaseRepo) SearchVillas(ctx context.Context, filters VillaFilters, offset, limit int) ([]*Villa, int, error) {
	query := su.supabaseClient.From(VillasTable).Select("*", "exact", false)

	if filters.OnlyActive {
		query = query.Eq("status", string(StatusActive))
	}
	if filters.Region != "" {
		query = query.Ilike("region", "%"+filters.Region+"%")
	}
	if filters.Guests > 0 {
		query = query.Gte("max_guests", fmt.Sprintf("%d", filters.Guests))
	}
	if filters.MinPrice > 0 {
		query = query.Gte("price_per_night", fmt.Sprintf("%.2f", filters.MinPrice))
	}
	if filters.MaxPrice > 0 {
		query = query.Lte("price_per_night", fmt.Sprintf("%.2f", filters.MaxPrice))
	}

	raw, count, err := query.Range(offset, offset+limit-1, "").Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search villas: %v", err)
	}

	if count == 0 {
		return []*Villa{}, 0, nil
	}

	villas, err := decodeVillaRows(raw)
	if err != nil {
		return nil, 0, err
	}

	return villas, int(count), nil
}

func (su *SupabaseRepo) ListVillasByHost(ctx context.Context, hostId uuid.UUID) ([]*Villa, error) {
	if hostId == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(VillasTable).
		Select("*", "exact", false).
		Eq("host_id", hostId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list host villas: %v", err)
	}

	return decodeVillaRows(raw)
}

func (su *SupabaseRepo) UpdateVilla(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*Villa, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	// Coordinates need the PostGIS literal form on the wire
	if coords, ok := fields["coordinates"].(Coordinates); ok {
		coordsValue, err := coords.Value()
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %v", err)
		}
		fields["coordinates"] = coordsValue
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	raw, count, err := client.From(VillasTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update villa: %v", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no villa found to update")
	}

	updated, err := decodeVillaRows(raw)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, fmt.Errorf("no villa data returned after update")
	}

	return updated[0], nil
}

func (su *SupabaseRepo) DeleteVilla(ctx context.Context, id uuid.UUID, hostId uuid.UUID, accessToken string) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid UUID")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	_, count, err := client.From(VillasTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Eq("host_id", hostId.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete villa: %v", err)
	}
	if count == 0 {
		return fmt.Errorf("no villa found to delete")
	}

	return nil
}
