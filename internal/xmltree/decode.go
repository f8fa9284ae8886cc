package xmltree

import (
	"fmt"
	"io"
	"os"

	"github.com/clbanning/mxj/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Decode reads XML from r into a generic node tree. Repeated elements
// become Sequences, single occurrences stay bare nodes; AsSequence
// normalizes the difference at extraction time.
func Decode(r io.Reader) (Mapping, error) {
	m, err := mxj.NewMapXmlReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode XML: %w", err)
	}

	root := FromAny(map[string]interface{}(m))
	mapping, ok := root.(Mapping)
	if !ok {
		return nil, fmt.Errorf("XML document did not decode to an element tree")
	}

	log.WithField("rootKeys", len(mapping)).Debug("Decoded XML document")
	return mapping, nil
}

// DecodeFile reads and decodes an XML file into a generic node tree.
func DecodeFile(path string) (Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return Decode(f)
}
