package dto

import (
	"time"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

// UpdateSettingsRequest replaces the company settings.
type UpdateSettingsRequest struct {
	CompanyName         string `json:"companyName" binding:"required"`
	CompanyAddress      string `json:"companyAddress"`
	DefaultCurrency     string `json:"defaultCurrency" binding:"required,oneof=EUR USD XOF"`
	ReceiptHeader       string `json:"receiptHeader"`
	ReceiptFooter       string `json:"receiptFooter"`
	EnableNotifications *bool  `json:"enableNotifications"`
	Language            string `json:"language" binding:"omitempty,oneof=fr en"`
	DateFormat          string `json:"dateFormat" binding:"omitempty,oneof=DD/MM/YYYY MM/DD/YYYY YYYY-MM-DD"`
	TimeFormat          string `json:"timeFormat" binding:"omitempty,oneof=24h 12h"`
}

// SettingsResponse is the settings view returned to clients.
type SettingsResponse struct {
	CompanyName         string    `json:"companyName"`
	CompanyAddress      string    `json:"companyAddress"`
	DefaultCurrency     string    `json:"defaultCurrency"`
	ReceiptHeader       string    `json:"receiptHeader"`
	ReceiptFooter       string    `json:"receiptFooter"`
	EnableNotifications bool      `json:"enableNotifications"`
	Language            string    `json:"language"`
	DateFormat          string    `json:"dateFormat"`
	TimeFormat          string    `json:"timeFormat"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy       string    `json:"lastUpdatedBy,omitempty"`
}

// ToSettingsResponse converts domain.Settings to DTO.
func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		CompanyName:         s.CompanyName,
		CompanyAddress:      s.CompanyAddress,
		DefaultCurrency:     s.DefaultCurrency,
		ReceiptHeader:       s.ReceiptHeader,
		ReceiptFooter:       s.ReceiptFooter,
		EnableNotifications: s.EnableNotifications,
		Language:            s.Language,
		DateFormat:          s.DateFormat,
		TimeFormat:          s.TimeFormat,
		LastUpdatedAt:       s.LastUpdatedAt,
		LastUpdatedBy:       s.LastUpdatedBy,
	}
}
