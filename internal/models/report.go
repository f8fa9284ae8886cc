// Package models defines the normalized credit report structures produced
// by the transformer and consumed by exporters, the store and the API.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender labels produced from the bureau's single-digit gender codes.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Defaults substituted for absent account fields.
const (
	UnknownBank      = "Unknown Bank"
	UnknownAccountNo = "N/A"
)

// BasicDetails holds applicant identity fields. Every field defaults to
// its empty form when the source document does not carry it; absence and
// empty both mean "unknown".
type BasicDetails struct {
	Name        string     `json:"name"`
	MobilePhone string     `json:"mobilePhone"`
	PAN         string     `json:"pan"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Address     string     `json:"address"`
	CreditScore *int       `json:"creditScore,omitempty"`
}

// ReportSummary holds aggregate account counts and balances.
type ReportSummary struct {
	TotalAccounts        int             `json:"totalAccounts"`
	ActiveAccounts       int             `json:"activeAccounts"`
	ClosedAccounts       int             `json:"closedAccounts"`
	CurrentBalanceAmount decimal.Decimal `json:"currentBalanceAmount"`
	SecuredAmount        decimal.Decimal `json:"securedAmount"`
	UnsecuredAmount      decimal.Decimal `json:"unsecuredAmount"`
	RecentEnquiries      int             `json:"recentEnquiries"`
}

// NewReportSummary returns a zeroed summary with all amounts initialized,
// the defined default when no summary data can be extracted.
func NewReportSummary() ReportSummary {
	return ReportSummary{
		CurrentBalanceAmount: decimal.Zero,
		SecuredAmount:        decimal.Zero,
		UnsecuredAmount:      decimal.Zero,
	}
}

// CreditAccount is one credit facility reported by a member institution.
type CreditAccount struct {
	Type             string          `json:"type"`
	BankName         string          `json:"bankName"`
	AccountNumber    string          `json:"accountNumber"`
	Address          string          `json:"address"`
	AmountOverdue    decimal.Decimal `json:"amountOverdue"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	SanctionedAmount decimal.Decimal `json:"sanctionedAmount"`
	DateOpened       *time.Time      `json:"dateOpened,omitempty"`
	DateClosed       *time.Time      `json:"dateClosed,omitempty"`
	LastReported     *time.Time      `json:"lastReported,omitempty"`
	Status           string          `json:"status"`
	PaymentHistory   string          `json:"paymentHistory"`
	PaymentRating    string          `json:"paymentRating"`
	PortfolioType    string          `json:"portfolioType"`
}

// Enquiry is a credit enquiry made against the applicant. The primary
// schema carries only rolling counters, so a single synthetic enquiry may
// stand in for the trailing-90-day count.
type Enquiry struct {
	Institution string          `json:"institution"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Purpose     string          `json:"purpose"`
}

// TransformedReport is the unit handed to the persistence boundary.
type TransformedReport struct {
	BasicDetails   BasicDetails    `json:"basicDetails"`
	ReportSummary  ReportSummary   `json:"reportSummary"`
	CreditAccounts []CreditAccount `json:"creditAccounts"`
	Enquiries      []Enquiry       `json:"enquiries"`
	ReportDate     time.Time       `json:"reportDate"`
}

// StoredReport wraps a TransformedReport with the file-identity and
// storage fields the persistence layer attaches before saving.
type StoredReport struct {
	ID          string            `json:"id"`
	FileName    string            `json:"fileName"`
	ContentHash string            `json:"contentHash"`
	StoragePath string            `json:"storagePath"`
	Report      TransformedReport `json:"report"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// StoreStats aggregates what the store currently holds.
type StoreStats struct {
	ReportCount        int             `json:"reportCount"`
	AccountCount       int             `json:"accountCount"`
	EnquiryCount       int             `json:"enquiryCount"`
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	AverageCreditScore float64         `json:"averageCreditScore"`
}
