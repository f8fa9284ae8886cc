package transformer

import (
	"strings"

	"crediq/bureau-xml/internal/models"
	"crediq/bureau-xml/internal/xmltree"

	"github.com/shopspring/decimal"
)

// extractSummary reads aggregate counts and balances. Strategies in
// priority order: the CAIS summary block's own counters, a recompute over
// the structured account records, then a recompute over legacy account
// collections.
//
// The secured/unsecured split in both recompute paths buckets by
// portfolio type (revolving to unsecured, everything else to secured).
// That is a heuristic proxy inherited from the upstream system, not a
// verified bureau rule.
func extractSummary(root xmltree.Mapping) models.ReportSummary {
	summary := models.NewReportSummary()

	if counters, ok := xmltree.Lookup(root, pathSummaryAccounts); ok {
		summary.TotalAccounts = int(xmltree.NumberAt(counters, "CreditAccountTotal"))
		summary.ActiveAccounts = int(xmltree.NumberAt(counters, "CreditAccountActive"))
		summary.ClosedAccounts = int(xmltree.NumberAt(counters, "CreditAccountClosed"))
	}
	if balances, ok := xmltree.Lookup(root, pathSummaryBalances); ok {
		summary.SecuredAmount = decimalAt(balances, "Outstanding_Balance_Secured")
		summary.UnsecuredAmount = decimalAt(balances, "Outstanding_Balance_UnSecured")
		summary.CurrentBalanceAmount = decimalAt(balances, "Outstanding_Balance_All")
	}

	legacyMode := false
	if summary.TotalAccounts == 0 {
		records := xmltree.AsSequence(firstPresent(root, pathAccountDetails))
		if len(records) > 0 {
			recomputeFromRecords(records, &summary)
		} else {
			legacyMode = true
			recomputeFromLegacy(root, &summary)
		}
	}

	summary.RecentEnquiries = int(xmltree.NumberAt(root, pathCAPSLast90Days))
	if summary.RecentEnquiries == 0 && legacyMode {
		summary.RecentEnquiries = countLegacyEnquiries(root)
	}

	return summary
}

// recomputeFromRecords derives counts and balances by iterating the
// structured account records when the summary block carries no counters.
func recomputeFromRecords(records xmltree.Sequence, summary *models.ReportSummary) {
	summary.TotalAccounts = len(records)

	for _, record := range records {
		status := xmltree.TextAt(record, "Account_Status")
		if activeStatusCodes[status] {
			summary.ActiveAccounts++
		} else if status == closedStatusCode {
			summary.ClosedAccounts++
		}

		balance := decimalAt(record, "Current_Balance")
		summary.CurrentBalanceAmount = summary.CurrentBalanceAmount.Add(balance)

		if xmltree.TextAt(record, "Portfolio_Type") == portfolioRevolving {
			summary.UnsecuredAmount = summary.UnsecuredAmount.Add(balance)
		} else {
			summary.SecuredAmount = summary.SecuredAmount.Add(balance)
		}
	}
}

// recomputeFromLegacy derives counts and balances from legacy account
// collections using substring matching on free-text status and type
// fields.
func recomputeFromLegacy(root xmltree.Mapping, summary *models.ReportSummary) {
	entries, ok := xmltree.FirstOf(root, legacyAccountPaths...)
	if !ok {
		return
	}

	records := xmltree.AsSequence(entries)
	summary.TotalAccounts = len(records)

	for _, record := range records {
		status := strings.ToLower(xmltree.TextAt(record,
			"Status", "AccountStatus", "Account_Status"))
		if strings.Contains(status, "active") || strings.Contains(status, "current") {
			summary.ActiveAccounts++
		} else if strings.Contains(status, "closed") {
			summary.ClosedAccounts++
		}

		balance := decimal.NewFromFloat(xmltree.NumberAt(record,
			"CurrentBalance", "Current_Balance", "Balance", "OutstandingBalance"))
		summary.CurrentBalanceAmount = summary.CurrentBalanceAmount.Add(balance)

		accountType := strings.ToLower(xmltree.TextAt(record, "Type", "AccountType"))
		if strings.Contains(accountType, "secured") {
			summary.SecuredAmount = summary.SecuredAmount.Add(balance)
		} else {
			summary.UnsecuredAmount = summary.UnsecuredAmount.Add(balance)
		}
	}
}

// countLegacyEnquiries counts entries under the legacy enquiry collection
// paths.
func countLegacyEnquiries(root xmltree.Mapping) int {
	entries, ok := xmltree.FirstOf(root, legacyEnquiryPaths...)
	if !ok {
		return 0
	}
	return len(xmltree.AsSequence(entries))
}

// decimalAt reads a monetary value under key as a decimal.
func decimalAt(parent xmltree.Node, keys ...string) decimal.Decimal {
	return decimal.NewFromFloat(xmltree.NumberAt(parent, keys...))
}
