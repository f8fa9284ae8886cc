package transformer

import (
	"time"

	"crediq/bureau-xml/internal/dateutils"
	"crediq/bureau-xml/internal/models"
	"crediq/bureau-xml/internal/xmltree"
)

// accountsStrategy extracts zero or more accounts from the report root.
// Strategies are tried in priority order; the first that reports ok wins.
type accountsStrategy struct {
	name    string
	extract func(root xmltree.Mapping) ([]models.CreditAccount, bool)
}

var accountsStrategies = []accountsStrategy{
	{"structured", accountsFromStructured},
	{"legacy", accountsFromLegacy},
}

// extractAccounts maps per-account records into CreditAccounts. A missing
// account section yields an empty slice, never an error.
func extractAccounts(root xmltree.Mapping) []models.CreditAccount {
	for _, strategy := range accountsStrategies {
		if accounts, ok := strategy.extract(root); ok {
			log.WithFields(map[string]interface{}{
				"strategy": strategy.name,
				"count":    len(accounts),
			}).Debug("Extracted credit accounts")
			return accounts
		}
	}
	return []models.CreditAccount{}
}

// accountsFromStructured maps the primary schema's account detail records.
func accountsFromStructured(root xmltree.Mapping) ([]models.CreditAccount, bool) {
	records := xmltree.AsSequence(firstPresent(root, pathAccountDetails))
	if len(records) == 0 {
		return nil, false
	}

	accounts := make([]models.CreditAccount, 0, len(records))
	for _, record := range records {
		accounts = append(accounts, structuredAccount(record))
	}
	return accounts, true
}

func structuredAccount(record xmltree.Node) models.CreditAccount {
	portfolioType := xmltree.TextAt(record, "Portfolio_Type")

	account := models.CreditAccount{
		Type:           accountTypeLabel(xmltree.TextAt(record, "Account_Type"), portfolioType),
		BankName:       xmltree.TextAt(record, "Subscriber_Name"),
		AccountNumber:  xmltree.TextAt(record, "Account_Number"),
		Address:        holderAddress(record),
		AmountOverdue:  decimalAt(record, "Amount_Past_Due"),
		CurrentBalance: decimalAt(record, "Current_Balance"),
		DateOpened:     compactDateAt(record, "Open_Date"),
		DateClosed:     compactDateAt(record, "Date_Closed"),
		LastReported:   compactDateAt(record, "Date_Reported"),
		Status:         accountStatusLabel(xmltree.TextAt(record, "Account_Status")),
		PaymentHistory: xmltree.TextAt(record, "Payment_History_Profile"),
		PaymentRating:  xmltree.TextAt(record, "Payment_Rating"),
		PortfolioType:  portfolioType,
	}

	// Sanctioned amount prefers the credit limit; older records only
	// carry the highest-balance / original-loan-amount field.
	if xmltree.TextAt(record, "Credit_Limit_Amount") != "" {
		account.SanctionedAmount = decimalAt(record, "Credit_Limit_Amount")
	} else {
		account.SanctionedAmount = decimalAt(record, "Highest_Credit_or_Original_Loan_Amount")
	}

	applyAccountDefaults(&account)
	return account
}

// accountsFromLegacy maps legacy account collections with looser field
// name guessing and generic defaults.
func accountsFromLegacy(root xmltree.Mapping) ([]models.CreditAccount, bool) {
	entries, ok := xmltree.FirstOf(root, legacyAccountPaths...)
	if !ok {
		return nil, false
	}

	records := xmltree.AsSequence(entries)
	accounts := make([]models.CreditAccount, 0, len(records))
	for _, record := range records {
		account := models.CreditAccount{
			Type:           textOr(record, defaultAccountType, "Type", "AccountType"),
			BankName:       xmltree.TextAt(record, "Institution", "Bank", "BankName", "Subscriber_Name", "Lender"),
			AccountNumber:  xmltree.TextAt(record, "AccountNumber", "Account_Number", "AccountNo"),
			Address:        xmltree.TextAt(record, "Address"),
			AmountOverdue:  decimalAt(record, "AmountOverdue", "Overdue", "PastDue"),
			CurrentBalance: decimalAt(record, "CurrentBalance", "Current_Balance", "Balance", "OutstandingBalance"),
			SanctionedAmount: decimalAt(record,
				"SanctionedAmount", "CreditLimit", "LoanAmount"),
			DateOpened:     dateAt(record, "DateOpened", "OpenDate", "Open_Date"),
			DateClosed:     dateAt(record, "DateClosed", "CloseDate", "Date_Closed"),
			LastReported:   dateAt(record, "LastReported", "DateReported", "Date_Reported"),
			Status:         textOr(record, "Active", "Status", "AccountStatus"),
			PaymentHistory: xmltree.TextAt(record, "PaymentHistory", "Payment_History"),
			PaymentRating:  xmltree.TextAt(record, "PaymentRating", "Payment_Rating"),
			PortfolioType:  xmltree.TextAt(record, "PortfolioType", "Portfolio_Type"),
		}
		applyAccountDefaults(&account)
		accounts = append(accounts, account)
	}
	return accounts, true
}

// applyAccountDefaults substitutes the stated fallback values for absent
// identity fields.
func applyAccountDefaults(account *models.CreditAccount) {
	if account.BankName == "" {
		account.BankName = models.UnknownBank
	}
	if account.AccountNumber == "" {
		account.AccountNumber = models.UnknownAccountNo
	}
}

// compactDateAt decodes a fixed-width YYYYMMDD date field. Anything not
// exactly 8 characters is absent.
func compactDateAt(record xmltree.Node, key string) *time.Time {
	return dateutils.ParseCompact(xmltree.TextAt(record, key))
}

// dateAt decodes a date field of unknown format.
func dateAt(record xmltree.Node, keys ...string) *time.Time {
	n, ok := xmltree.FirstOf(record, keys...)
	if !ok {
		return nil
	}
	return xmltree.Date(n)
}

// textOr reads the first present text value, falling back to a default.
func textOr(record xmltree.Node, fallback string, keys ...string) string {
	if text := xmltree.TextAt(record, keys...); text != "" {
		return text
	}
	return fallback
}
