// Package snapshotfile loads the balance snapshot file produced by the fuzz harness.
package snapshotfile

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/shopspring/decimal"
)

// Unit is the denomination amounts are recorded in.
type Unit string

const (
	UnitEther Unit = "ether"
	UnitGwei  Unit = "gwei"
	UnitWei   Unit = "wei"
)

// ParseUnit parses a unit name, case-insensitively. Empty means ether.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case "", UnitEther, "eth":
		return UnitEther, nil
	case UnitGwei, UnitWei:
		return u, nil
	default:
		return "", fmt.Errorf("unsupported unit %q (want ether, gwei or wei)", s)
	}
}

// scale returns the divisor converting an amount in u into ether.
func (u Unit) scale() (decimal.Decimal, error) {
	switch u {
	case UnitEther, "":
		return decimal.NewFromInt(1), nil
	case UnitGwei:
		return decimal.NewFromInt(params.Ether / params.GWei), nil
	case UnitWei:
		return decimal.NewFromInt(params.Ether / params.Wei), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported unit %q", string(u))
	}
}
