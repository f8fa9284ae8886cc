package transformer

// Dotted paths into the parsed document, relative to the located report
// root unless noted. The primary layout is the bureau's INProfile
// response; the legacy lists cover the alternate shapes older exports use.

// primaryRootKey is the primary schema's report root element.
const primaryRootKey = "INProfileResponse"

// fallbackRootPaths are tried, in order, when the primary root is absent.
// Paths are relative to the whole document.
var fallbackRootPaths = []string{
	"CreditProfileReport",
	"Envelope.Body.INProfileResponse",
	"Document.CreditReport",
	"CreditReport",
	"ProfileResponse",
}

// Primary schema blocks.
const (
	pathApplicantDetails = "Current_Application.Current_Application_Details.Current_Applicant_Details"
	pathApplicantAddress = "Current_Application.Current_Application_Details.Current_Applicant_Address_Details"
	pathAccountDetails   = "CAIS_Account.CAIS_Account_DETAILS"
	pathSummaryAccounts  = "CAIS_Account.CAIS_Summary.Credit_Account"
	pathSummaryBalances  = "CAIS_Account.CAIS_Summary.Total_Outstanding_Balance"
	pathBureauScore      = "SCORE.BureauScore"
	pathCAPSLast7Days    = "TotalCAPS_Summary.TotalCAPSLast7Days"
	pathCAPSLast30Days   = "TotalCAPS_Summary.TotalCAPSLast30Days"
	pathCAPSLast90Days   = "TotalCAPS_Summary.TotalCAPSLast90Days"
)

// legacyNamePaths are deeply legacy single-value lookups for the
// applicant name, tried only when every structured path left it unset.
var legacyNamePaths = []string{
	"Applicant_Details.Name",
	"Applicant.Name",
	"Consumer_Details.ConsumerName",
	"PersonalInfo.FullName",
}

// legacyAccountPaths are the pluralized account collection shapes older
// exports use.
var legacyAccountPaths = []string{
	"Accounts.Account",
	"AccountDetails.Account",
	"Loans.Loan",
	"TradeLines.TradeLine",
}

// legacyEnquiryPaths are the per-enquiry collection shapes older exports use.
var legacyEnquiryPaths = []string{
	"Enquiries.Enquiry",
	"EnquiryDetails.Enquiry",
	"Inquiries.Inquiry",
	"CAPS.CAPS_Application_Details",
}
