package domain

// EmbeddingSpec configures a time-delay embedding ingestion of a 1-D
// series. A nil *EmbeddingSpec means the input is ingested as a dense
// row-major matrix instead.
type EmbeddingSpec struct {
	Dim int
	Tau int
}

// PointSetLoader reads a PointSet from an input source.
type PointSetLoader interface {
	Load(path string, m ThresholdMetric, embedding *EmbeddingSpec) (PointSet, error)
}

// ProgressReporter reports progress of a long-running build or batch
// query to the user.
type ProgressReporter interface {
	Start(total int)
	Add(n int)
	Finish()
}

// ResultWriter formats and writes query results. Implemented by
// internal/reporter.ResultReporter; kept as a domain interface so the app
// layer never imports an ambient-concern package directly.
type ResultWriter interface {
	ReportKNN(query []float64, neighbors []Neighbor, stats *QueryStats) error
	ReportRange(query []float64, radius float64, neighbors []Neighbor) error
	ReportTreeInfo(info TreeInfo) error
}
