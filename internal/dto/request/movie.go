package request

type MovieRequest struct {
	Title             string  `json:"title" validate:"required,min=1,max=200"`
	Genre             string  `json:"genre" validate:"required,min=1,max=100"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,min=1,max=999"`
	Rating            float64 `json:"rating" validate:"min=0,max=10"`
	ReleaseYear       int     `json:"release_year" validate:"required,min=1888,max=2100"`
}

// MovieUpdateRequest deliberately has no duration field: duration is immutable
// after creation because scheduled end times are derived from it.
type MovieUpdateRequest struct {
	Title  *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Genre  *string  `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
	Rating *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
}
