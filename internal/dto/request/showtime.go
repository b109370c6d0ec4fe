package request

// ShowtimeRequest carries no end time. The scheduling service derives it from
// the movie duration; a caller-supplied end time is never honored.
type ShowtimeRequest struct {
	MovieID   string  `json:"movie_id" validate:"required,uuid4"`
	Theater   string  `json:"theater" validate:"required,min=1,max=100"`
	StartTime string  `json:"start_time" validate:"required"`
	Price     float64 `json:"price" validate:"required,min=0"`
}
