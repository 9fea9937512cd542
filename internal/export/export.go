// Package export renders ledger operations as downloadable files.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Row is one operation flattened for export.
type Row struct {
	ID             int64  `yaml:"id"`
	VoucherNumber  string `yaml:"voucher_number"`
	Type           string `yaml:"type"`
	Date           string `yaml:"date"`
	LocationID     string `yaml:"location_id"`
	LocationName   string `yaml:"location_name,omitempty"`
	Amount         string `yaml:"amount"`
	Formatted      string `yaml:"formatted_amount"`
	Source         string `yaml:"source"`
	PersonInCharge string `yaml:"person_in_charge"`
	Observation    string `yaml:"observation,omitempty"`
	Signed         bool   `yaml:"signed"`
	RelatedID      string `yaml:"related_operation_id,omitempty"`
	AttachmentURL  string `yaml:"attachment_url,omitempty"`
}

var header = []string{
	"id", "voucher_number", "type", "date", "location_id", "location_name", "amount",
	"formatted_amount", "source", "person_in_charge", "observation", "signed",
	"related_operation_id", "attachment_url",
}

func (r Row) values() []string {
	return []string{
		strconv.FormatInt(r.ID, 10), r.VoucherNumber, r.Type, r.Date, r.LocationID, r.LocationName,
		r.Amount, r.Formatted, r.Source, r.PersonInCharge, r.Observation, strconv.FormatBool(r.Signed),
		r.RelatedID, r.AttachmentURL,
	}
}

// NewRow flattens an operation. formatted is the amount rendered in the company currency.
func NewRow(op domain.Operation, locationName, formatted string) Row {
	row := Row{
		ID:             op.OperationID,
		VoucherNumber:  op.VoucherNumber,
		Type:           string(op.Type),
		Date:           op.Date.Format(dateLayout),
		LocationID:     op.LocationID,
		LocationName:   locationName,
		Amount:         op.Amount.StringFixed(2),
		Formatted:      formatted,
		Source:         op.Source,
		PersonInCharge: op.PersonInCharge,
		Observation:    op.Observation,
		Signed:         op.IsSigned,
	}
	if op.RelatedOperationID != nil {
		row.RelatedID = strconv.FormatInt(*op.RelatedOperationID, 10)
	}
	if op.AttachmentURL != nil {
		row.AttachmentURL = *op.AttachmentURL
	}
	return row
}

// Encoder writes rows in one file format.
type Encoder interface {
	ContentType() string
	Extension() string
	Encode(w io.Writer, rows []Row) error
}

// EncoderFor returns the encoder registered for format (csv, yaml or xlsx).
func EncoderFor(format string) (Encoder, error) {
	switch format {
	case "", "csv":
		return CSVEncoder{}, nil
	case "yaml", "yml":
		return YAMLEncoder{}, nil
	case "xlsx":
		return XLSXEncoder{SheetName: "Operations"}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}
