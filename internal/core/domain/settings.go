package domain

import "time"

// Settings are the company wide parameters used on printed vouchers and exports.
type Settings struct {
	CompanyName         string    `json:"companyName" db:"company_name"`
	CompanyAddress      string    `json:"companyAddress" db:"company_address"`
	DefaultCurrency     string    `json:"defaultCurrency" db:"default_currency"`
	ReceiptHeader       string    `json:"receiptHeader" db:"receipt_header"`
	ReceiptFooter       string    `json:"receiptFooter" db:"receipt_footer"`
	EnableNotifications bool      `json:"enableNotifications" db:"enable_notifications"`
	Language            string    `json:"language" db:"language"`
	DateFormat          string    `json:"dateFormat" db:"date_format"`
	TimeFormat          string    `json:"timeFormat" db:"time_format"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt" db:"last_updated_at"`
	LastUpdatedBy       string    `json:"lastUpdatedBy" db:"last_updated_by"`
}

// DefaultSettings returns the parameters used until an administrator saves their own.
func DefaultSettings() Settings {
	return Settings{
		CompanyName:         "",
		DefaultCurrency:     "EUR",
		EnableNotifications: true,
		Language:            "fr",
		DateFormat:          "DD/MM/YYYY",
		TimeFormat:          "24h",
	}
}

// SupportedCurrencies lists the currencies a caisse can be kept in.
var SupportedCurrencies = []string{"EUR", "USD", "XOF"}
