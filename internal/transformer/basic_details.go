package transformer

import (
	"crediq/bureau-xml/internal/dateutils"
	"crediq/bureau-xml/internal/models"
	"crediq/bureau-xml/internal/xmltree"
)

// extractBasicDetails reads applicant identity fields. The primary
// applicant block is preferred; gaps are filled from the account-holder
// block of the first account record, and as a last resort the name is
// probed through a set of deeply legacy single-value paths.
func extractBasicDetails(root xmltree.Mapping) models.BasicDetails {
	details := models.BasicDetails{}

	fillFromApplicantBlock(root, &details)

	if details.Name == "" || details.PAN == "" || details.DateOfBirth == nil ||
		details.MobilePhone == "" || details.Address == "" {
		fillFromAccountHolderBlock(root, &details)
	}

	if score := scoreFromBlock(root); score != nil {
		details.CreditScore = score
	}

	if details.Name == "" {
		details.Name = xmltree.TextAt(root, legacyNamePaths...)
	}

	return details
}

// fillFromApplicantBlock reads the primary schema's applicant and address
// blocks.
func fillFromApplicantBlock(root xmltree.Mapping, details *models.BasicDetails) {
	applicant, ok := xmltree.Lookup(root, pathApplicantDetails)
	if ok {
		first := xmltree.TextAt(applicant, "First_Name")
		last := xmltree.TextAt(applicant, "Last_Name")
		details.Name = joinParts(" ", first, last)

		details.MobilePhone = xmltree.TextAt(applicant,
			"MobilePhoneNumber", "Telephone_Number_Applicant_1st")
		details.PAN = xmltree.TextAt(applicant, "IncomeTaxPan")
		details.Email = xmltree.TextAt(applicant, "EMailId")

		dob := xmltree.TextAt(applicant, "Date_Of_Birth_Applicant")
		details.DateOfBirth = dateutils.ParseCompact(dob)
	}

	if addr, ok := xmltree.Lookup(root, pathApplicantAddress); ok {
		details.Address = joinParts(", ",
			xmltree.TextAt(addr, "FlatNoPlotNoHouseNo"),
			xmltree.TextAt(addr, "BldgNoSocietyName"),
			xmltree.TextAt(addr, "RoadNoNameAreaLocality"),
			xmltree.TextAt(addr, "City"),
			xmltree.TextAt(addr, "State"),
			xmltree.TextAt(addr, "PINCode"))
	}
}

// fillFromAccountHolderBlock fills still-unset identity fields from the
// holder details nested inside the first account record. Older exports
// carry applicant identity only there.
func fillFromAccountHolderBlock(root xmltree.Mapping, details *models.BasicDetails) {
	records := xmltree.AsSequence(firstPresent(root, pathAccountDetails))
	if len(records) == 0 {
		return
	}
	first := records[0]

	holder := firstOfSequence(first, "CAIS_Holder_Details")
	if holder != nil {
		if details.Name == "" {
			details.Name = joinParts(" ",
				xmltree.TextAt(holder, "First_Name_Non_Normalized"),
				xmltree.TextAt(holder, "Surname_Non_Normalized"))
		}
		if details.PAN == "" {
			details.PAN = xmltree.TextAt(holder, "Income_TAX_PAN")
		}
		if details.DateOfBirth == nil {
			details.DateOfBirth = dateutils.ParseCompact(
				xmltree.TextAt(holder, "Date_of_birth"))
		}
		if details.Gender == "" {
			details.Gender = genderCodes[xmltree.TextAt(holder, "Gender_Code")]
		}
	}

	if details.MobilePhone == "" {
		if phone := firstOfSequence(first, "CAIS_Holder_Phone_Details"); phone != nil {
			details.MobilePhone = xmltree.TextAt(phone, "Telephone_Number")
		}
	}

	if details.Address == "" {
		details.Address = holderAddress(first)
	}
}

// holderAddress concatenates the holder address sub-block: three free-text
// lines plus city, state and postal code.
func holderAddress(record xmltree.Node) string {
	addr := firstOfSequence(record, "CAIS_Holder_Address_Details")
	if addr == nil {
		return ""
	}
	return joinParts(", ",
		xmltree.TextAt(addr, "First_Line_Of_Address_non_normalized"),
		xmltree.TextAt(addr, "Second_Line_Of_Address_non_normalized"),
		xmltree.TextAt(addr, "Third_Line_Of_Address_non_normalized"),
		xmltree.TextAt(addr, "City_non_normalized"),
		xmltree.TextAt(addr, "State_non_normalized"),
		xmltree.TextAt(addr, "ZIP_Postal_Code_non_normalized"))
}

// scoreFromBlock reads the bureau score. Scores are contractually 300-900;
// non-positive values are noise and coerce to absent. No clamping beyond
// that.
func scoreFromBlock(root xmltree.Mapping) *int {
	n, ok := xmltree.Lookup(root, pathBureauScore)
	if !ok {
		return nil
	}
	score := int(xmltree.Number(n))
	if score <= 0 {
		return nil
	}
	return &score
}

// firstPresent returns the node at path, or nil when absent.
func firstPresent(root xmltree.Node, path string) xmltree.Node {
	n, ok := xmltree.Lookup(root, path)
	if !ok {
		return nil
	}
	return n
}

// firstOfSequence looks up a child that may be a lone node or a sequence
// and returns its first element.
func firstOfSequence(parent xmltree.Node, key string) xmltree.Node {
	n, ok := xmltree.Lookup(parent, key)
	if !ok {
		return nil
	}
	seq := xmltree.AsSequence(n)
	if len(seq) == 0 {
		return nil
	}
	return seq[0]
}
