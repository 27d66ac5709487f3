package snapshotfile

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/fuzzgraph/internal/domain"
)

const (
	fieldRound                 = "round"
	fieldContractBalance       = "contractBalance"
	fieldTotalBalance          = "totalBalance"
	fieldAddressBalances       = "addressBalances"
	fieldCumulativeRewardsPaid = "cumulativeRewardsPaid"
	fieldRewardsPaidThisRound  = "rewardsPaidThisRound"

	// wei resolution once scaled to ether
	amountPrecision = 18
)

// Store reads balance snapshots written by the fuzz harness.
type Store struct {
	path string
	unit Unit
}

// NewStore creates a snapshot store reading from path, scaling amounts recorded in unit to ether.
func NewStore(path string, unit Unit) *Store {
	if unit == "" {
		unit = UnitEther
	}

	return &Store{path: path, unit: unit}
}

// Path returns the file the store reads from.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot file and returns its records in file order.
func (s *Store) Load() ([]domain.BalanceSnapshot, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: s.path}
		}

		return nil, errors.Wrap(err, "read snapshot file")
	}

	return Decode(payload, s.unit)
}

// Decode parses a JSON array of snapshot objects. Amounts may be JSON numbers or numeric strings.
func Decode(payload []byte, unit Unit) ([]domain.BalanceSnapshot, error) {
	scale, err := unit.scale()
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, &domain.DataFormatError{Index: -1, Err: errors.Wrap(err, "decode snapshot array")}
	}

	snapshots := make([]domain.BalanceSnapshot, 0, len(records))
	for i, raw := range records {
		snapshot, err := decodeRecord(i, raw, scale)
		if err != nil {
			return nil, err
		}

		if i > 0 && len(snapshot.AddressBalances) != len(snapshots[0].AddressBalances) {
			return nil, &domain.DataFormatError{
				Index: i,
				Field: fieldAddressBalances,
				Err: fmt.Errorf("expected %d balances, got %d",
					len(snapshots[0].AddressBalances), len(snapshot.AddressBalances)),
			}
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func decodeRecord(idx int, raw json.RawMessage, scale decimal.Decimal) (domain.BalanceSnapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.BalanceSnapshot{}, &domain.DataFormatError{Index: idx, Err: errors.Wrap(err, "decode snapshot object")}
	}

	round, err := decodeRound(idx, fields)
	if err != nil {
		return domain.BalanceSnapshot{}, err
	}

	amounts := make(map[string]decimal.Decimal, 4)
	for _, name := range []string{fieldContractBalance, fieldTotalBalance, fieldCumulativeRewardsPaid, fieldRewardsPaidThisRound} {
		value, err := decodeAmount(idx, name, fields)
		if err != nil {
			return domain.BalanceSnapshot{}, err
		}
		amounts[name] = value.DivRound(scale, amountPrecision)
	}

	rawBalances, err := requireField(idx, fieldAddressBalances, fields)
	if err != nil {
		return domain.BalanceSnapshot{}, err
	}
	var balances []decimal.Decimal
	if err := json.Unmarshal(rawBalances, &balances); err != nil {
		return domain.BalanceSnapshot{}, &domain.DataFormatError{Index: idx, Field: fieldAddressBalances, Err: err}
	}
	for i := range balances {
		balances[i] = balances[i].DivRound(scale, amountPrecision)
	}

	return domain.NewBalanceSnapshot(
		round,
		amounts[fieldContractBalance],
		amounts[fieldTotalBalance],
		balances,
		amounts[fieldCumulativeRewardsPaid],
		amounts[fieldRewardsPaidThisRound],
	), nil
}

func decodeRound(idx int, fields map[string]json.RawMessage) (uint64, error) {
	raw, err := requireField(idx, fieldRound, fields)
	if err != nil {
		return 0, err
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, &domain.DataFormatError{Index: idx, Field: fieldRound, Err: err}
	}

	round, err := strconv.ParseUint(num.String(), 10, 64)
	if err != nil {
		return 0, &domain.DataFormatError{Index: idx, Field: fieldRound, Err: errors.Wrap(err, "round must be a non-negative integer")}
	}

	return round, nil
}

func decodeAmount(idx int, name string, fields map[string]json.RawMessage) (decimal.Decimal, error) {
	raw, err := requireField(idx, name, fields)
	if err != nil {
		return decimal.Zero, err
	}

	var value decimal.Decimal
	if err := json.Unmarshal(raw, &value); err != nil {
		return decimal.Zero, &domain.DataFormatError{Index: idx, Field: name, Err: err}
	}

	return value, nil
}

func requireField(idx int, name string, fields map[string]json.RawMessage) (json.RawMessage, error) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return nil, &domain.DataFormatError{Index: idx, Field: name, Err: errors.New("missing required field")}
	}

	return raw, nil
}
