package entity

type Movie struct {
	Base
	Title             string  `db:"title"`
	Genre             string  `db:"genre"`
	DurationInMinutes int     `db:"duration_in_minutes"`
	Rating            float64 `db:"rating"`
	ReleaseYear       int     `db:"release_year"`
}
