package domain

// Metric names a report metric the engine knows how to compute.
type Metric string

const (
	MetricOccupancyRate    Metric = "occupancy-rate"
	MetricAverageDailyRate Metric = "average-daily-rate"
	MetricRevenuePAR       Metric = "revenue-par"
	MetricServiceRevenue   Metric = "service-revenue"
)

// Label is the display name of a report line. It is either a static string
// or a template resolved from the request's service name at render time.
type Label struct {
	static   string
	template func(serviceName string) string
}

func StaticLabel(s string) Label {
	return Label{static: s}
}

func ServiceLabel(template func(serviceName string) string) Label {
	return Label{template: template}
}

func (l Label) Resolve(serviceName string) string {
	if l.template != nil {
		return l.template(serviceName)
	}
	return l.static
}

// MetricRequest describes one report line to compute: a metric bound to a
// period, plus the presentation attributes the renderer needs.
type MetricRequest struct {
	Metric      Metric
	Period      Period
	ServiceName string
	DisplayName Label
	Unit        string
}

// ReportResult is the outcome of executing a single MetricRequest. Exactly
// one of Value and ErrMessage is meaningful, discriminated by IsError.
type ReportResult struct {
	Request    MetricRequest
	Value      float64
	ErrMessage string
	IsError    bool
}
