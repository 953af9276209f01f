package models

// Room is the slice of the room subsystem's record the booking engine
// consumes. The nightly rate is immutable for the life of a session.
type Room struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	MaxAdults   int     `json:"max_adults"`
	MaxChildren int     `json:"max_children"`
	Status      string  `json:"status"`
}
