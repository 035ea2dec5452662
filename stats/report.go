package stats

// Metric names tracked by one stitcher invocation (§4.4 "Emitted
// statistics").
const (
	MetricQueuedPerPhase     = "queued_per_phase"
	MetricProcessedPerPhase  = "processed_per_phase"
	MetricAcceptedPathLength = "accepted_path_length"
	MetricMaximalPathLength  = "maximal_path_length"
	MetricCandidatesPerNode  = "candidates_per_node"
	MetricExtensionsPerNode  = "extensions_per_node"
	MetricRootCandidates     = "root_candidates_per_node"
	MetricRootExtensions     = "root_extensions_per_node"
	MetricNodeVisits         = "node_visits"
	MetricRootVisits         = "root_visits"
)

var metricOrder = []string{
	MetricQueuedPerPhase, MetricProcessedPerPhase,
	MetricAcceptedPathLength, MetricMaximalPathLength,
	MetricCandidatesPerNode, MetricExtensionsPerNode,
	MetricRootCandidates, MetricRootExtensions,
	MetricNodeVisits, MetricRootVisits,
}

// Report bundles one FrequencyDistribution[int] per named metric emitted
// by a single stitcher run.
type Report struct {
	metrics map[string]*FrequencyDistribution[int]
}

// NewReport returns a report with every tracked metric pre-registered
// (empty), so recording is never a nil-map panic.
func NewReport() *Report {
	r := &Report{metrics: make(map[string]*FrequencyDistribution[int], len(metricOrder))}
	for _, name := range metricOrder {
		r.metrics[name] = NewFrequencyDistribution[int]()
	}
	return r
}

// Record adds value to the named metric's distribution.
func (r *Report) Record(metric string, value int) {
	d, ok := r.metrics[metric]
	if !ok {
		d = NewFrequencyDistribution[int]()
		r.metrics[metric] = d
	}
	d.Add(value)
}

// Distribution returns the named metric's distribution, or nil if it was
// never registered.
func (r *Report) Distribution(metric string) *FrequencyDistribution[int] { return r.metrics[metric] }

// Merge folds other's per-metric distributions into r.
func (r *Report) Merge(other *Report) {
	for name, d := range other.metrics {
		existing, ok := r.metrics[name]
		if !ok {
			existing = NewFrequencyDistribution[int]()
			r.metrics[name] = existing
		}
		existing.Merge(d)
	}
}

// Quartile is one metric's five-number summary for fixed-width rendering.
type Quartile struct {
	Metric               string
	Total                int
	Min, P25, P50, P75, Max int
}

// Quartiles returns, for every registered metric with at least one
// recorded value, its five boundary values (min, p25, p50, p75, max)
// computed via Quantiles(4), in the fixed metric order above.
func (r *Report) Quartiles() []Quartile {
	var out []Quartile
	for _, name := range metricOrder {
		d, ok := r.metrics[name]
		if !ok || d.Total() == 0 {
			continue
		}
		bounds := d.Quantiles(4)
		out = append(out, Quartile{
			Metric: name,
			Total:  d.Total(),
			Min:    bounds[0], P25: bounds[1], P50: bounds[2], P75: bounds[3], Max: bounds[4],
		})
	}
	return out
}
