package domain

// Status is the row-level soft state shared by every catalog entity.
// "Deleting" an entity means transitioning it to StatusArchived; rows are
// never physically removed by this service.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}
