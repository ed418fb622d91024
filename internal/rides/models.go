package rides

// Ride represents an offered ride.
type Ride struct {
	ID          int64  `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Seats       int    `json:"seats"`
}

// Rider is the ride service's read-only view of a user row. Joins and
// leaves are validated against it; it is never written by this service.
type Rider struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateRideRequest represents the request to create a ride. Seats is
// deliberately unvalidated; capacity is advisory and never enforced.
type CreateRideRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Seats       int    `json:"seats"`
}

// MembershipRequest identifies the user joining or leaving a ride.
type MembershipRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}
