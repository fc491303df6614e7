package domain

import (
	"fmt"
	"strings"
)

// Site kind suffixes. Every importable site name carries exactly one.
const (
	suffixDataCenter = "-DC"
	suffixBranch     = "-BR"
)

// ClassificationError reports a site name that carries neither kind suffix.
type ClassificationError struct {
	Name string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("location name %s must end with either -DC or -BR", e.Name)
}

// ClassifySite maps a site name to its location type name by suffix:
// "-DC" → Data Center, "-BR" → Branch. Any other name is rejected with a
// *ClassificationError; this is the validation gate that keeps untyped
// locations out of the store.
func ClassifySite(name string) (string, error) {
	switch {
	case strings.HasSuffix(name, suffixDataCenter):
		return TypeDataCenter, nil
	case strings.HasSuffix(name, suffixBranch):
		return TypeBranch, nil
	default:
		return "", &ClassificationError{Name: name}
	}
}
