// Package schema decides whether a document is recognizable as the target
// bureau's credit report format. This is a format sniff, not a full schema
// check; the transformer degrades gracefully on missing substructure, so
// validation is deliberately permissive.
package schema

import (
	"fmt"
	"os"
	"strings"

	"crediq/bureau-xml/internal/xmltree"

	"github.com/sirupsen/logrus"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// rootIndicators are name fragments recognized, case-insensitively, in a
// top-level key: the primary root plus historical/alternate report roots.
var rootIndicators = []string{
	"inprofileresponse",
	"creditprofilereport",
	"creditreport",
	"profileresponse",
	"bureaureport",
}

// primarySubsections are the primary root's major blocks; at least one
// must be present when the primary root itself is.
var primarySubsections = []string{
	"Header",
	"CAIS_Account",
	"Current_Application",
}

const primaryRootKey = "INProfileResponse"

// Validate reports whether a parsed document looks like the bureau's
// report format: some top-level key must contain a recognized root name,
// and the primary root, when present, must carry at least one of its
// expected major subsections.
func Validate(doc xmltree.Mapping) bool {
	if doc == nil {
		return false
	}

	recognized := false
	for key := range doc {
		lower := strings.ToLower(key)
		for _, indicator := range rootIndicators {
			if strings.Contains(lower, indicator) {
				recognized = true
				break
			}
		}
		if recognized {
			break
		}
	}
	if !recognized {
		log.Debug("No recognizable report root key in document")
		return false
	}

	if primary, ok := doc[primaryRootKey].(xmltree.Mapping); ok {
		for _, subsection := range primarySubsections {
			if _, ok := primary[subsection]; ok {
				return true
			}
		}
		log.Debug("Primary root present but missing all expected subsections")
		return false
	}

	return true
}

// ValidateFormat checks whether a file on disk is a bureau report XML
// document. Malformed XML is reported as invalid, not as an error.
func ValidateFormat(xmlFile string) (bool, error) {
	log.WithField("file", xmlFile).Info("Validating bureau report format")

	if _, err := os.Stat(xmlFile); err != nil {
		log.WithError(err).Error("XML file does not exist")
		return false, fmt.Errorf("error checking XML file: %w", err)
	}

	f, err := os.Open(xmlFile)
	if err != nil {
		log.WithError(err).Error("Failed to open XML file")
		return false, fmt.Errorf("error opening XML file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(f)
	if err != nil {
		log.WithError(err).Debug("File is not valid XML")
		return false, nil
	}

	for _, expr := range []string{
		"//INProfileResponse",
		"//CreditProfileReport",
		"//CreditReport",
	} {
		if _, ok := xmlpath.MustCompile(expr).String(root); ok {
			log.WithField("file", xmlFile).Info("File is a recognizable bureau report")
			return true, nil
		}
	}

	log.Debug("No known report root element found")
	return false, nil
}
