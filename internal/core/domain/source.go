package domain

// SourceType tells whether a source labels incoming or outgoing funds.
type SourceType string

const (
	SourceTypeIn  SourceType = "in"
	SourceTypeOut SourceType = "out"
)

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	return t == SourceTypeIn || t == SourceTypeOut
}

// Source is a configurable label for the origin or destination of funds.
// Fixed sources are seeded by the system and cannot be edited.
type Source struct {
	SourceID    string     `json:"sourceID" db:"source_id"`
	Name        string     `json:"name" db:"name"`
	Type        SourceType `json:"type" db:"type"`
	Description string     `json:"description" db:"description"`
	IsFixed     bool       `json:"isFixed" db:"is_fixed"`
	AuditFields
}
