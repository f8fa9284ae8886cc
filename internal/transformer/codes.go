package transformer

// Enumeration tables for the bureau's coded fields. These are immutable
// process-wide constants, read-only after initialization and safe for
// unsynchronized concurrent reads.

// accountTypeCodes maps the bureau's 2-digit account type codes to labels.
// Unmapped codes render as "Other".
var accountTypeCodes = map[string]string{
	"01": "Auto Loan",
	"02": "Housing Loan",
	"03": "Property Loan",
	"04": "Loan Against Shares/Securities",
	"05": "Personal Loan",
	"06": "Consumer Loan",
	"07": "Gold Loan",
	"08": "Education Loan",
	"09": "Loan to Professional",
	"10": "Credit Card",
	"11": "Leasing",
	"12": "Overdraft",
	"13": "Two-Wheeler Loan",
	"14": "Non-Funded Credit Facility",
	"15": "Loan Against Bank Deposits",
	"16": "Fleet Card",
	"17": "Commercial Vehicle Loan",
	"18": "Telco - Wireless",
	"31": "Secured Credit Card",
	"32": "Used Car Loan",
	"33": "Construction Equipment Loan",
	"34": "Tractor Loan",
	"35": "Corporate Credit Card",
	"43": "Microfinance Loan",
	"51": "Personal Loan",
	"52": "Business Loan",
	"53": "Business Loan - Priority Sector",
	"54": "Business Loan Against Bank Deposits",
	"61": "Business Loan - Unsecured",
}

// defaultAccountType is used for unmapped account type codes.
const defaultAccountType = "Other"

// accountStatusCodes maps the bureau's 2-digit account status codes to
// labels. Unmapped codes render literally as "Status <code>".
var accountStatusCodes = map[string]string{
	"00": "Not Reported",
	"11": "Active - Regular",
	"13": "Closed - Regular",
	"21": "Active - 30 Days Past Due",
	"31": "Active - 60 Days Past Due",
	"41": "Active - 90 Days Past Due",
	"51": "Active - 120 Days Past Due",
	"61": "Active - 150 Days Past Due",
	"71": "Active - 180 Days Past Due",
	"78": "Settled",
	"82": "Account Transferred",
	"83": "Written Off",
	"89": "Purchased",
	"93": "Written Off and Account Sold",
}

// activeStatusCodes is the whitelist of status codes counted as active
// when the summary is recomputed from individual account records.
var activeStatusCodes = map[string]bool{
	"11": true,
	"21": true,
	"31": true,
	"41": true,
	"51": true,
	"61": true,
	"71": true,
}

// closedStatusCode is the single code counted as closed in the recompute path.
const closedStatusCode = "13"

// Portfolio type codes distinguishing revolving from installment lines.
const (
	portfolioRevolving   = "R"
	portfolioInstallment = "I"
)

// portfolioQualifiers maps portfolio codes to the qualifier appended to
// the account type label, e.g. "Credit Card (Revolving)".
var portfolioQualifiers = map[string]string{
	portfolioRevolving:   "Revolving",
	portfolioInstallment: "Installment",
}

// genderCodes maps the bureau's single-digit gender codes. Any other
// value leaves the field unset.
var genderCodes = map[string]string{
	"1": "Male",
	"2": "Female",
}

// accountTypeLabel translates an account type code and appends the
// portfolio qualifier when one applies.
func accountTypeLabel(typeCode, portfolioType string) string {
	label, ok := accountTypeCodes[typeCode]
	if !ok {
		label = defaultAccountType
	}
	if qualifier, ok := portfolioQualifiers[portfolioType]; ok {
		return label + " (" + qualifier + ")"
	}
	return label
}

// accountStatusLabel translates an account status code.
func accountStatusLabel(statusCode string) string {
	if label, ok := accountStatusCodes[statusCode]; ok {
		return label
	}
	return "Status " + statusCode
}
