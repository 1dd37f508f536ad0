package generate

import (
	"fmt"
	"strings"
)

// DocumentType selects which directory of base images a run draws from.
// The set is closed: adding a document type is a code change.
type DocumentType string

const (
	CashCard       DocumentType = "cash_card"
	DriversLicense DocumentType = "drivers_license"
	InsuranceCard  DocumentType = "insurance_card"
)

var documentTypes = []DocumentType{CashCard, DriversLicense, InsuranceCard}

// ParseDocumentType validates a document type selector. Unsupported values
// are rejected here, before any processing begins.
func ParseDocumentType(s string) (DocumentType, error) {
	for _, dt := range documentTypes {
		if s == string(dt) {
			return dt, nil
		}
	}
	return "", fmt.Errorf("unsupported document type %q (supported: %s)", s, strings.Join(SupportedDocumentTypes(), ", "))
}

// SupportedDocumentTypes lists the members of the closed set, for help text
// and error messages.
func SupportedDocumentTypes() []string {
	names := make([]string, len(documentTypes))
	for i, dt := range documentTypes {
		names[i] = string(dt)
	}
	return names
}
