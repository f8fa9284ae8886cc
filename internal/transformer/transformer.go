// Package transformer maps parsed bureau report documents into normalized
// report records. It locates the report root, then extracts four record
// groups independently: basic details, summary, accounts and enquiries.
// Each group degrades to its empty form when its source data is missing;
// the only fatal condition is a document with no locatable report root.
package transformer

import (
	"sort"
	"time"

	"crediq/bureau-xml/internal/models"
	"crediq/bureau-xml/internal/parsererror"
	"crediq/bureau-xml/internal/xmltree"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Transform converts a parsed bureau document into a TransformedReport.
// It returns a TransformationError when no report root can be located;
// every other missing-data condition resolves to a defined default.
func Transform(doc xmltree.Mapping) (*models.TransformedReport, error) {
	root, rootKey, err := locateReportRoot(doc)
	if err != nil {
		log.WithError(err).Error("Could not locate report root")
		return nil, err
	}
	log.WithField("root", rootKey).Debug("Located report root")

	now := time.Now()

	report := &models.TransformedReport{
		BasicDetails:   extractBasicDetails(root),
		ReportSummary:  extractSummary(root),
		CreditAccounts: extractAccounts(root),
		Enquiries:      extractEnquiries(root, now),
		ReportDate:     now,
	}

	log.WithFields(logrus.Fields{
		"accounts":  len(report.CreditAccounts),
		"enquiries": len(report.Enquiries),
	}).Info("Transformed bureau report")

	return report, nil
}

// locateReportRoot finds the sub-tree holding the report payload.
// Priority: the primary schema's named root, then each fallback dotted
// path, then the first top-level property whose value is itself an
// element tree.
func locateReportRoot(doc xmltree.Mapping) (xmltree.Mapping, string, error) {
	if n, ok := xmltree.Lookup(doc, primaryRootKey); ok {
		if m, ok := n.(xmltree.Mapping); ok {
			return m, primaryRootKey, nil
		}
	}

	for _, path := range fallbackRootPaths {
		if n, ok := xmltree.Lookup(doc, path); ok {
			if m, ok := n.(xmltree.Mapping); ok {
				return m, path, nil
			}
		}
	}

	for _, key := range mappingKeys(doc) {
		if m, ok := doc[key].(xmltree.Mapping); ok {
			return m, key, nil
		}
	}

	return nil, "", parsererror.NewTransformationError(
		"could not find report data in the provided document")
}

// mappingKeys returns keys in lexical order so root selection is
// deterministic across runs.
func mappingKeys(m xmltree.Mapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// joinParts joins non-empty strings with the given separator.
func joinParts(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
