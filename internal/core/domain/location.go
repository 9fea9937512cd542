package domain

// Location is a physical cash handling point (branch, till) with its own running balance.
type Location struct {
	LocationID string  `json:"locationID" db:"location_id"`
	Name       string  `json:"name" db:"name"`
	Address    string  `json:"address" db:"address"`
	Phone      string  `json:"phone" db:"phone"`
	ManagerID  *string `json:"managerID,omitempty" db:"manager_id"` // FK -> users.user_id
	IsActive   bool    `json:"isActive" db:"is_active"`
	AuditFields
}

// IsManagedBy reports whether userID is the manager of the location.
func (l Location) IsManagedBy(userID string) bool {
	return l.ManagerID != nil && *l.ManagerID == userID
}
