package core

import (
	"errors"
	"math"

	"github.com/huangsam/aem/schema"
)

// ErrCheckFailed is returned when at least one record scores below the threshold.
var ErrCheckFailed = errors.New("minimum score check failed")

// BuildCheckResult compares every scored record against the minimum score.
// A record passes when its score is at least the threshold.
func BuildCheckResult(results []schema.ScoreResult, threshold float64) *schema.CheckResult {
	result := &schema.CheckResult{
		Passed:       true,
		Threshold:    threshold,
		TotalRecords: len(results),
	}
	if len(results) == 0 {
		return result
	}

	result.MinScore, result.MaxScore = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, r := range results {
		sum += r.Score
		result.MinScore = math.Min(result.MinScore, r.Score)
		result.MaxScore = math.Max(result.MaxScore, r.Score)
		if r.Score < threshold {
			result.Passed = false
			result.FailedRecords = append(result.FailedRecords, schema.CheckFailedRecord{
				Source:       r.Source,
				Organization: r.Organization,
				Score:        r.Score,
			})
		}
	}
	result.AvgScore = sum / float64(len(results))
	return result
}
