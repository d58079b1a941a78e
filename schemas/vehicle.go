package schemas

import (
	"fmt"
	"net/url"
	"strconv"

	"autolot-api/models"
)

// maxPageSize caps list queries; the limit parameter is clamped, not rejected.
const maxPageSize = 50

type ImageInput struct {
	Name string `json:"name" validate:"max=255"`
	URL  string `json:"url" validate:"required,url"`
}

type CreateVehicleRequest struct {
	Brand       string       `json:"brand" validate:"required,max=100"`
	Model       string       `json:"model" validate:"required,max=100"`
	Year        int          `json:"year" validate:"required,year4"`
	Price       float64      `json:"price" validate:"required,gt=0"`
	Description string       `json:"description" validate:"max=1000"`
	Images      []ImageInput `json:"images" validate:"dive"`
}

// Vehicle converts the validated request into the model scalars; image rows
// are built separately so the repository can bind them to the generated id.
func (r *CreateVehicleRequest) Vehicle() models.Vehicle {
	return models.Vehicle{
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        r.Year,
		Price:       r.Price,
		Description: r.Description,
	}
}

func (r *CreateVehicleRequest) ImageList() []models.Image {
	return imageList(r.Images)
}

// UpdateVehicleRequest is a partial patch. Scalar fields are pointers so
// absent fields stay untouched. Images is a pointer to a slice because the
// three cases — absent, empty, populated — carry different semantics.
type UpdateVehicleRequest struct {
	Brand       *string       `json:"brand" validate:"omitnil,min=1,max=100"`
	Model       *string       `json:"model" validate:"omitnil,min=1,max=100"`
	Year        *int          `json:"year" validate:"omitnil,year4"`
	Price       *float64      `json:"price" validate:"omitnil,gt=0"`
	Description *string       `json:"description" validate:"omitnil,max=1000"`
	Images      *[]ImageInput `json:"images" validate:"omitempty,dive"`
}

// Patch resolves the tri-state images field into an explicit variant so the
// nil-vs-empty distinction never leaks past request decoding.
func (r *UpdateVehicleRequest) Patch() models.VehiclePatch {
	patch := models.VehiclePatch{
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        r.Year,
		Price:       r.Price,
		Description: r.Description,
	}

	switch {
	case r.Images == nil:
		patch.Images = models.ImagePatch{Op: models.ImagesKeep}
	case len(*r.Images) == 0:
		patch.Images = models.ImagePatch{Op: models.ImagesClear}
	default:
		patch.Images = models.ImagePatch{
			Op:     models.ImagesReplace,
			Images: imageList(*r.Images),
		}
	}
	return patch
}

func imageList(inputs []ImageInput) []models.Image {
	images := make([]models.Image, len(inputs))
	for i, in := range inputs {
		images[i] = models.Image{Name: in.Name, URL: in.URL}
	}
	return images
}

// VehicleQuery is a normalized list query: pagination with defaults applied
// plus the optional filters.
type VehicleQuery struct {
	Page   int
	Limit  int
	Filter models.VehicleFilter
}

// ParseVehicleQuery coerces and validates list query parameters. Page and
// limit default to 1 and 10; limit is capped at maxPageSize. Every malformed
// parameter is reported, not just the first.
func ParseVehicleQuery(values url.Values) (VehicleQuery, []FieldError) {
	query := VehicleQuery{Page: 1, Limit: 10}
	var violations []FieldError

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			violations = append(violations, FieldError{
				Field:   "page",
				Message: "page must be a positive number",
			})
		} else {
			query.Page = page
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			violations = append(violations, FieldError{
				Field:   "limit",
				Message: "limit must be a positive number",
			})
		} else {
			query.Limit = limit
		}
	}
	if query.Limit > maxPageSize {
		query.Limit = maxPageSize
	}

	query.Filter.Brand = values.Get("brand")
	query.Filter.Model = values.Get("model")

	if raw := values.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 {
			// A zero year would read as "no constraint", so reject it
			// instead of silently widening the result.
			violations = append(violations, FieldError{
				Field:   "year",
				Message: fmt.Sprintf("year must be a positive number, got %q", raw),
			})
		} else {
			query.Filter.Year = year
		}
	}

	if violations != nil {
		return VehicleQuery{}, violations
	}
	return query, nil
}
