package transformer

import (
	"fmt"
	"time"

	"crediq/bureau-xml/internal/models"
	"crediq/bureau-xml/internal/xmltree"

	"github.com/shopspring/decimal"
)

// syntheticInstitution labels the single enquiry synthesized from the
// primary schema's rolling counters, which carry no per-enquiry detail.
const syntheticInstitution = "Various Institutions"

// extractEnquiries produces the enquiry list. The primary schema only
// carries rolling counters, so a positive trailing-90-day count yields
// exactly one synthetic enquiry; otherwise legacy per-enquiry collections
// are mapped 1:1.
func extractEnquiries(root xmltree.Mapping, now time.Time) []models.Enquiry {
	last90 := int(xmltree.NumberAt(root, pathCAPSLast90Days))
	if last90 > 0 {
		last30 := int(xmltree.NumberAt(root, pathCAPSLast30Days))
		last7 := int(xmltree.NumberAt(root, pathCAPSLast7Days))
		return []models.Enquiry{{
			Institution: syntheticInstitution,
			Date:        now,
			Amount:      decimal.Zero,
			Purpose: fmt.Sprintf(
				"%d enquiries in last 90 days, %d in last 30 days, %d in last 7 days",
				last90, last30, last7),
		}}
	}

	return legacyEnquiries(root)
}

// legacyEnquiries maps per-enquiry entries found under any of the legacy
// collection paths.
func legacyEnquiries(root xmltree.Mapping) []models.Enquiry {
	entries, ok := xmltree.FirstOf(root, legacyEnquiryPaths...)
	if !ok {
		return []models.Enquiry{}
	}

	records := xmltree.AsSequence(entries)
	enquiries := make([]models.Enquiry, 0, len(records))
	for _, record := range records {
		enquiry := models.Enquiry{
			Institution: xmltree.TextAt(record,
				"Institution", "Subscriber_Name", "Bank", "Lender", "Member"),
			Amount: decimalAt(record, "Amount", "EnquiryAmount", "Amount_Financed"),
			Purpose: xmltree.TextAt(record,
				"Purpose", "EnquiryReason", "Enquiry_Reason"),
		}
		if d := dateAt(record, "Date", "EnquiryDate", "Date_of_Request"); d != nil {
			enquiry.Date = *d
		}
		enquiries = append(enquiries, enquiry)
	}
	return enquiries
}
