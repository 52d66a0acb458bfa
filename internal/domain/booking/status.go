package booking

import "strings"

// Server-side statuses reported by the parking API.
const (
	ServerUpcoming   = "upcoming"
	ServerBooked     = "booked"
	ServerReserved   = "reserved"
	ServerPending    = "pending"
	ServerConfirmed  = "confirmed"
	ServerCheckedIn  = "checked_in"
	ServerCheckedOut = "checked_out"
	ServerCompleted  = "completed"
	ServerCancelled  = "cancelled"
)

type ClientStatus string

const (
	StatusActive    ClientStatus = "active"
	StatusUpcoming  ClientStatus = "upcoming"
	StatusCompleted ClientStatus = "completed"
	StatusCancelled ClientStatus = "cancelled"
	StatusUnknown   ClientStatus = "unknown"
)

func (s ClientStatus) String() string {
	return string(s)
}

func (s ClientStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusUpcoming, StatusCompleted, StatusCancelled, StatusUnknown:
		return true
	default:
		return false
	}
}

// MapStatus is a pure translation from the server enum to the display status.
// Unrecognized values land in StatusUnknown instead of being folded into completed.
func MapStatus(server string) ClientStatus {
	switch strings.ToLower(strings.TrimSpace(server)) {
	case ServerCheckedIn:
		return StatusActive
	case ServerUpcoming, ServerBooked, ServerReserved, ServerPending, ServerConfirmed:
		return StatusUpcoming
	case ServerCheckedOut, ServerCompleted:
		return StatusCompleted
	case ServerCancelled:
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// Bucket is the tab a display status is filtered into.
type Bucket string

const (
	BucketActive    Bucket = "active"
	BucketUpcoming  Bucket = "upcoming"
	BucketCompleted Bucket = "completed"
	BucketNone      Bucket = ""
)

// ParseBucket accepts the tab names the SPA sends. BucketNone is not a tab.
func ParseBucket(s string) (Bucket, bool) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketActive, BucketUpcoming, BucketCompleted:
		return b, true
	default:
		return BucketNone, false
	}
}

// Bucket folds cancelled into the completed tab.
func (s ClientStatus) Bucket() Bucket {
	switch s {
	case StatusActive:
		return BucketActive
	case StatusUpcoming:
		return BucketUpcoming
	case StatusCompleted, StatusCancelled:
		return BucketCompleted
	default:
		return BucketNone
	}
}

// Rank orders buckets for display: active, upcoming, completed, then unknown.
func (s ClientStatus) Rank() int {
	switch s.Bucket() {
	case BucketActive:
		return 0
	case BucketUpcoming:
		return 1
	case BucketCompleted:
		return 2
	default:
		return 3
	}
}

// BadgeClass keeps cancelled visually distinct from completed.
func (s ClientStatus) BadgeClass() string {
	switch s {
	case StatusActive:
		return "bg-primary"
	case StatusUpcoming:
		return "bg-info"
	case StatusCompleted:
		return "bg-success"
	case StatusCancelled:
		return "bg-danger"
	default:
		return "bg-secondary"
	}
}
