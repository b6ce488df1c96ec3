// internal/domain/order/status.go
package order

// Status is the closed line-item status enumeration. There is no enforced
// transition graph: any valid status may be set from any other (backward
// transitions included).
type Status string

const (
	StatusPending         Status = "pending"
	StatusProcessing      Status = "processing"
	StatusAtLocalFacility Status = "at-local-facility"
	StatusOutForDelivery  Status = "out-for-delivery"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
)

var AllStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusAtLocalFacility,
	StatusOutForDelivery,
	StatusCompleted,
	StatusCancelled,
}

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusAtLocalFacility,
		StatusOutForDelivery, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }
