package schema

// CheckResult holds the results of a minimum score check.
type CheckResult struct {
	Passed        bool
	Threshold     float64
	TotalRecords  int
	FailedRecords []CheckFailedRecord
	MinScore      float64
	MaxScore      float64
	AvgScore      float64
}

// CheckFailedRecord represents a record that scored below the threshold.
type CheckFailedRecord struct {
	Source       string
	Organization string
	Score        float64
}
