package domain

// SeriesRole identifies what a derived series represents on the chart.
type SeriesRole int

const (
	RoleAddress SeriesRole = iota
	RoleContract
	RoleTotal
	RoleAverage
	RoleCumulativeRewards
	RoleReward
)

// String returns the string representation.
func (r SeriesRole) String() string {
	switch r {
	case RoleAddress:
		return "address"
	case RoleContract:
		return "contract"
	case RoleTotal:
		return "total"
	case RoleAverage:
		return "average"
	case RoleCumulativeRewards:
		return "cumulative_rewards"
	case RoleReward:
		return "reward"
	default:
		return "unknown"
	}
}

// Point is one (round, value) pair.
type Point struct {
	X float64
	Y float64
}

// Series is a named sequence of points drawn as one chart layer.
type Series struct {
	Name   string
	Role   SeriesRole
	Points []Point
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Points)
}

// XValues returns the x coordinates in order.
func (s Series) XValues() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
	}
	return xs
}

// YValues returns the y coordinates in order.
func (s Series) YValues() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

// Layers toggles the optional chart layers.
type Layers struct {
	Total             bool
	CumulativeRewards bool
}

// ChartData holds every series derived from a snapshot run.
// Total and CumulativeRewards are always computed; Layers decides whether they are drawn.
type ChartData struct {
	Addresses         []Series
	Contract          Series
	Total             Series
	Average           Series
	CumulativeRewards Series
	Rewards           Series
	Layers            Layers
}

// Ordered returns the enabled series in drawing order, later entries on top.
func (d ChartData) Ordered() []Series {
	out := make([]Series, 0, len(d.Addresses)+5)
	out = append(out, d.Addresses...)
	out = append(out, d.Contract)
	if d.Layers.Total {
		out = append(out, d.Total)
	}
	out = append(out, d.Average)
	if d.Layers.CumulativeRewards {
		out = append(out, d.CumulativeRewards)
	}
	out = append(out, d.Rewards)
	return out
}
