// Package series turns loaded balance snapshots into the named series drawn on the chart.
package series

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/fuzzgraph/internal/domain"
)

const (
	NameContract          = "Contract Balance"
	NameTotal             = "Total Balance"
	NameAverage           = "Average Address Balance"
	NameCumulativeRewards = "Cumulative Rewards Paid"
	NameRewards           = "Value of Reward Paid"
)

// AddressName returns the legend label for the address at zero-based index idx.
func AddressName(idx int) string {
	return fmt.Sprintf("Address %d", idx+1)
}

// Derive builds every chart series from snapshots, keeping input order.
// Rounds are used as-is: out-of-order or duplicate rounds are not sorted or merged.
func Derive(snapshots []domain.BalanceSnapshot, layers domain.Layers) (domain.ChartData, error) {
	if len(snapshots) == 0 {
		return domain.ChartData{}, &domain.EmptySeriesError{Reason: "no rounds recorded"}
	}

	addrCount := len(snapshots[0].AddressBalances)
	for i, s := range snapshots {
		if len(s.AddressBalances) == 0 {
			return domain.ChartData{}, &domain.EmptySeriesError{
				Reason: fmt.Sprintf("round %d has no address balances", s.Round),
			}
		}
		if len(s.AddressBalances) != addrCount {
			return domain.ChartData{}, &domain.DataFormatError{
				Index: i,
				Field: "addressBalances",
				Err:   fmt.Errorf("expected %d balances, got %d", addrCount, len(s.AddressBalances)),
			}
		}
	}

	n := len(snapshots)
	data := domain.ChartData{
		Addresses:         make([]domain.Series, addrCount),
		Contract:          newSeries(NameContract, domain.RoleContract, n),
		Total:             newSeries(NameTotal, domain.RoleTotal, n),
		Average:           newSeries(NameAverage, domain.RoleAverage, n),
		CumulativeRewards: newSeries(NameCumulativeRewards, domain.RoleCumulativeRewards, n),
		Rewards:           newSeries(NameRewards, domain.RoleReward, 0),
		Layers:            layers,
	}
	for idx := range data.Addresses {
		data.Addresses[idx] = newSeries(AddressName(idx), domain.RoleAddress, n)
	}

	for _, s := range snapshots {
		x := float64(s.Round)

		for idx, balance := range s.AddressBalances {
			data.Addresses[idx].Points = append(data.Addresses[idx].Points, point(x, balance))
		}

		avg, _ := s.AverageAddressBalance()
		data.Average.Points = append(data.Average.Points, point(x, avg))
		data.Contract.Points = append(data.Contract.Points, point(x, s.ContractBalance))
		data.Total.Points = append(data.Total.Points, point(x, s.TotalBalance))
		data.CumulativeRewards.Points = append(data.CumulativeRewards.Points, point(x, s.CumulativeRewardsPaid))

		if s.HasReward() {
			data.Rewards.Points = append(data.Rewards.Points, point(x, s.RewardsPaidThisRound))
		}
	}

	return data, nil
}

func newSeries(name string, role domain.SeriesRole, capacity int) domain.Series {
	return domain.Series{Name: name, Role: role, Points: make([]domain.Point, 0, capacity)}
}

func point(x float64, y decimal.Decimal) domain.Point {
	return domain.Point{X: x, Y: y.InexactFloat64()}
}
