package ivive

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownAssay = errors.New("ivive: unknown in-vitro assay type")

// Assay is the in-vitro system that produced the liver clearance datum.
type Assay int

const (
	AssayUnknown Assay = iota
	Microsome
	Hepatocyte
)

func ParseAssay(s string) (Assay, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "microsome", "microsomes", "mic":
		return Microsome, nil
	case "hepatocyte", "hepatocytes", "hep":
		return Hepatocyte, nil
	default:
		return AssayUnknown, fmt.Errorf("%w: %q", ErrUnknownAssay, s)
	}
}

func (a Assay) String() string {
	switch a {
	case Microsome:
		return "microsome"
	case Hepatocyte:
		return "hepatocyte"
	default:
		return "unknown"
	}
}

func (a Assay) Valid() bool {
	return a == Microsome || a == Hepatocyte
}

func (a Assay) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAssay, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Assay) UnmarshalText(text []byte) error {
	parsed, err := ParseAssay(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
