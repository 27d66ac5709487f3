package snapshotfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/fuzzgraph/internal/domain"
)

const validData = `[
  {"round": 1, "addressBalances": [10, 20], "contractBalance": "0.5", "totalBalance": "30.5", "cumulativeRewardsPaid": 0, "rewardsPaidThisRound": 0},
  {"round": 2, "addressBalances": ["12", "18"], "contractBalance": 0.25, "totalBalance": 30.25, "cumulativeRewardsPaid": "5", "rewardsPaidThisRound": "5"},
  {"round": 3, "addressBalances": [14, 16], "contractBalance": "12.5", "totalBalance": 42.5, "cumulativeRewardsPaid": 5, "rewardsPaidThisRound": 0}
]`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "balanceData.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_Load(t *testing.T) {
	store := NewStore(writeFile(t, validData), UnitEther)

	snapshots, err := store.Load()
	require.NoError(t, err)
	require.Len(t, snapshots, 3)

	for i, s := range snapshots {
		assert.Equal(t, uint64(i+1), s.Round)
		assert.Len(t, s.AddressBalances, 2)
	}

	assert.True(t, decimal.NewFromInt(12).Equal(snapshots[1].AddressBalances[0]))
	assert.True(t, decimal.RequireFromString("0.25").Equal(snapshots[1].ContractBalance))
	assert.True(t, decimal.NewFromInt(5).Equal(snapshots[1].RewardsPaidThisRound))
	assert.True(t, decimal.RequireFromString("42.5").Equal(snapshots[2].TotalBalance))
}

func TestStore_Load_NotFound(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"), UnitEther)

	_, err := store.Load()
	require.Error(t, err)

	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, notFound.Path, "missing.json")
}

func TestDecode_TextAndNumberCoerceEqually(t *testing.T) {
	text, err := Decode([]byte(`[{"round":1,"addressBalances":["12.5"],"contractBalance":"12.5","totalBalance":"25","cumulativeRewardsPaid":"0","rewardsPaidThisRound":"12.5"}]`), UnitEther)
	require.NoError(t, err)
	number, err := Decode([]byte(`[{"round":1,"addressBalances":[12.5],"contractBalance":12.5,"totalBalance":25,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":12.5}]`), UnitEther)
	require.NoError(t, err)

	require.Len(t, text, 1)
	require.Len(t, number, 1)
	assert.True(t, text[0].ContractBalance.Equal(number[0].ContractBalance))
	assert.True(t, text[0].AddressBalances[0].Equal(number[0].AddressBalances[0]))
	assert.True(t, text[0].RewardsPaidThisRound.Equal(number[0].RewardsPaidThisRound))
	assert.Equal(t, 12.5, text[0].ContractBalance.InexactFloat64())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		expectedIndex int
		expectedField string
	}{
		{
			name:          "Not JSON",
			payload:       `round,balance`,
			expectedIndex: -1,
		},
		{
			name:          "Not an array",
			payload:       `{"round": 1}`,
			expectedIndex: -1,
		},
		{
			name:          "Record is not an object",
			payload:       `[42]`,
			expectedIndex: 0,
		},
		{
			name:          "Missing field",
			payload:       `[{"round":1,"addressBalances":[1],"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0}]`,
			expectedIndex: 0,
			expectedField: "rewardsPaidThisRound",
		},
		{
			name:          "Null field",
			payload:       `[{"round":1,"addressBalances":null,"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0}]`,
			expectedIndex: 0,
			expectedField: "addressBalances",
		},
		{
			name: "Non-numeric text",
			payload: `[{"round":1,"addressBalances":[1],"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0},
				{"round":2,"addressBalances":[1],"contractBalance":"lots","totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0}]`,
			expectedIndex: 1,
			expectedField: "contractBalance",
		},
		{
			name:          "Non-numeric address balance",
			payload:       `[{"round":1,"addressBalances":["1","x"],"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0}]`,
			expectedIndex: 0,
			expectedField: "addressBalances",
		},
		{
			name:          "Negative round",
			payload:       `[{"round":-1,"addressBalances":[1],"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0}]`,
			expectedIndex: 0,
			expectedField: "round",
		},
		{
			name:          "Fractional round",
			payload:       `[{"round":1.5,"addressBalances":[1],"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0}]`,
			expectedIndex: 0,
			expectedField: "round",
		},
		{
			name: "Address count changes",
			payload: `[{"round":1,"addressBalances":[1,2],"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0},
				{"round":2,"addressBalances":[1,2],"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0},
				{"round":3,"addressBalances":[1,2,3],"contractBalance":1,"totalBalance":2,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0}]`,
			expectedIndex: 2,
			expectedField: "addressBalances",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload), UnitEther)
			require.Error(t, err)

			var formatErr *domain.DataFormatError
			require.True(t, errors.As(err, &formatErr), "unexpected error type %T: %v", err, err)
			assert.Equal(t, tt.expectedIndex, formatErr.Index)
			assert.Equal(t, tt.expectedField, formatErr.Field)
		})
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	snapshots, err := Decode([]byte(`[]`), UnitEther)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestDecode_Units(t *testing.T) {
	payload := `[{"round":1,"addressBalances":["100000000000000000000"],"contractBalance":"500000000000000000","totalBalance":"100500000000000000000","cumulativeRewardsPaid":"1","rewardsPaidThisRound":"0"}]`

	snapshots, err := Decode([]byte(payload), UnitWei)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(snapshots[0].AddressBalances[0]))
	assert.True(t, decimal.RequireFromString("0.5").Equal(snapshots[0].ContractBalance))
	assert.True(t, decimal.RequireFromString("0.000000000000000001").Equal(snapshots[0].CumulativeRewardsPaid))

	gwei, err := Decode([]byte(`[{"round":1,"addressBalances":[2000000000],"contractBalance":1,"totalBalance":1,"cumulativeRewardsPaid":0,"rewardsPaidThisRound":0}]`), UnitGwei)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(gwei[0].AddressBalances[0]))
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected Unit
		wantErr  bool
	}{
		{input: "", expected: UnitEther},
		{input: "ETH", expected: UnitEther},
		{input: "ether", expected: UnitEther},
		{input: " Gwei ", expected: UnitGwei},
		{input: "wei", expected: UnitWei},
		{input: "finney", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			unit, err := ParseUnit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, unit)
		})
	}
}
