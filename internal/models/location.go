package models

// UserLocation is a geolocation reading reported by the client.
type UserLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Browser geolocation failure codes and their user-facing messages.
const (
	PositionDenied      = "denied"
	PositionUnavailable = "unavailable"
	PositionTimeout     = "timeout"
)

var positionMessages = map[string]string{
	PositionDenied:      "Location access was denied. Enable it in your browser to see nearby businesses.",
	PositionUnavailable: "Your location could not be determined. Distance filters are disabled.",
	PositionTimeout:     "Locating you took too long. Try again to enable distance filters.",
}

// PositionErrorMessage maps a geolocation failure code to the message shown
// in the warning banner. Unknown codes fall back to the unavailable text.
func PositionErrorMessage(code string) string {
	if msg, ok := positionMessages[code]; ok {
		return msg
	}
	return positionMessages[PositionUnavailable]
}
