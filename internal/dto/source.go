package dto

import (
	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// CreateSourceRequest defines a new fund source label.
type CreateSourceRequest struct {
	Name        string            `json:"name" binding:"required"`
	Type        domain.SourceType `json:"type" binding:"required,oneof=in out"`
	Description string            `json:"description"`
}

// UpdateSourceRequest holds the editable fields of a source.
type UpdateSourceRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// ListSourcesParams filters sources by type.
type ListSourcesParams struct {
	Type string `form:"type" binding:"omitempty,oneof=in out"`
}

// SourceResponse is returned for a single source.
type SourceResponse = domain.Source

// ListSourcesResponse wraps a list of sources.
type ListSourcesResponse struct {
	Sources []SourceResponse `json:"sources"`
}
