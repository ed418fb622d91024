package notifier

// Event types carried in the message "type" discriminator.
const (
	TypeUserRegistered = "user_registered"
	TypeUserDeleted    = "user_deleted"
	TypeRideCreated    = "ride_created"
	TypeRideJoined     = "ride_joined"
	TypeRideLeft       = "ride_left"
)

// Message is the advisory event published to the notifications queue.
// The payload is flat; fields not used by a given type are omitted.
type Message struct {
	Type        string `json:"type"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	User        string `json:"user,omitempty"`
	Ride        string `json:"ride,omitempty"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// UserRegistered announces a newly registered user.
func UserRegistered(username, email string) Message {
	return Message{
		Type:     TypeUserRegistered,
		Username: username,
		Email:    email,
	}
}

// UserDeleted announces a deleted user.
func UserDeleted(username, email string) Message {
	return Message{
		Type:     TypeUserDeleted,
		Username: username,
		Email:    email,
	}
}

// RideCreated announces a newly created ride.
func RideCreated(origin, destination string) Message {
	return Message{
		Type:        TypeRideCreated,
		Origin:      origin,
		Destination: destination,
	}
}

// RideJoined announces that a user joined a ride.
func RideJoined(username, origin, destination string) Message {
	return Message{
		Type: TypeRideJoined,
		User: username,
		Ride: origin + " to " + destination,
	}
}

// RideLeft announces that a user left a ride.
func RideLeft(username, origin, destination string) Message {
	return Message{
		Type: TypeRideLeft,
		User: username,
		Ride: origin + " to " + destination,
	}
}
