package analysis

// ChartType identifies how a visualization should be rendered
type ChartType string

const (
	ChartTypeBar  ChartType = "bar"
	ChartTypeLine ChartType = "line"
	ChartTypePie  ChartType = "pie"
)

// Visualization is a renderer-agnostic chart specification. Labels and
// Values are parallel slices.
type Visualization struct {
	Type   ChartType `json:"type"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// NewBarChart builds a bar chart spec
func NewBarChart(title string, labels []string, values []float64) Visualization {
	return Visualization{Type: ChartTypeBar, Title: title, Labels: labels, Values: values}
}

// NewLineChart builds a line chart spec
func NewLineChart(title string, labels []string, values []float64) Visualization {
	return Visualization{Type: ChartTypeLine, Title: title, Labels: labels, Values: values}
}

// NewPieChart builds a pie chart spec
func NewPieChart(title string, labels []string, values []float64) Visualization {
	return Visualization{Type: ChartTypePie, Title: title, Labels: labels, Values: values}
}
