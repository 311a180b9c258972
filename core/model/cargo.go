package model

import (
	"fmt"
	"strings"
)

// CargoType is the grain variety carried by a cargo line item.
type CargoType int

const (
	CargoCorn CargoType = iota
	CargoMilo
	CargoFeedBarley
)

// String returns the identifier used in fixtures and exports.
func (t CargoType) String() string {
	switch t {
	case CargoCorn:
		return "corn"
	case CargoMilo:
		return "milo"
	case CargoFeedBarley:
		return "feed_barley"
	default:
		return "unknown"
	}
}

// Label returns the name shown on terminal dashboards.
func (t CargoType) Label() string {
	switch t {
	case CargoCorn:
		return "トウモロコシ"
	case CargoMilo:
		return "マイロ"
	case CargoFeedBarley:
		return "飼料麦"
	default:
		return "不明"
	}
}

// ParseCargoType accepts the String form, case-insensitively.
func ParseCargoType(s string) (CargoType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "corn":
		return CargoCorn, nil
	case "milo":
		return CargoMilo, nil
	case "feed_barley", "feed-barley", "feedbarley":
		return CargoFeedBarley, nil
	}
	return 0, &ValidationError{Field: "cargo.type", Reason: fmt.Sprintf("unknown cargo type %q", s)}
}

func (t CargoType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *CargoType) UnmarshalText(b []byte) error {
	v, err := ParseCargoType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Cargo is a single line item of a vessel's load, in tonnes.
type Cargo struct {
	Type     CargoType `json:"type"`
	Quantity int64     `json:"quantity"`
}
