package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stackgraph/stats"
)

func TestQuantiles_WorkedExample(t *testing.T) {
	d := stats.NewFrequencyDistribution[int]()
	for i := 0; i < 3; i++ {
		d.Add(1)
	}
	d.Add(2)
	d.Add(5)
	d.Add(5)

	assert.Equal(t, 6, d.Total())
	assert.Equal(t, 3, d.Unique())
	assert.Equal(t, []int{1, 1, 2, 5, 5}, d.Quantiles(4))
}

func TestQuantiles_EmptyDistribution(t *testing.T) {
	d := stats.NewFrequencyDistribution[int]()
	assert.Nil(t, d.Quantiles(4))
	assert.Nil(t, d.Quantiles(0))
}

func TestQuantiles_ZeroQReturnsEmpty(t *testing.T) {
	d := stats.NewFrequencyDistribution[int]()
	d.Add(1)
	assert.Nil(t, d.Quantiles(0))
}

func TestMerge_CombinesCounts(t *testing.T) {
	a := stats.NewFrequencyDistribution[int]()
	a.Add(1)
	b := stats.NewFrequencyDistribution[int]()
	b.Add(1)
	b.Add(2)

	a.Merge(b)
	assert.Equal(t, 3, a.Total())
	assert.Equal(t, 2, a.Unique())
}

func TestReport_Quartiles(t *testing.T) {
	r := stats.NewReport()
	for _, v := range []int{1, 1, 1, 2, 5, 5} {
		r.Record(stats.MetricAcceptedPathLength, v)
	}
	quartiles := r.Quartiles()
	require := assert.New(t)
	require.Len(quartiles, 1)
	require.Equal(stats.MetricAcceptedPathLength, quartiles[0].Metric)
	require.Equal(6, quartiles[0].Total)
	require.Equal(1, quartiles[0].Min)
	require.Equal(5, quartiles[0].Max)
}
