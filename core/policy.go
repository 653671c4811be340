package core

import (
	"github.com/huangsam/aem/core/algo"
	"github.com/huangsam/aem/schema"
)

// PolicyScore turns governance flags into a transparency score in (0,1).
//
// The weights of flags that are true are summed and passed through a sigmoid
// centered on PolicyMidpoint. A record that discloses none of the known flags
// scores 0. Null flags count as not disclosed and unknown names are ignored.
func PolicyScore(policies map[schema.PolicyKey]*bool, cfg schema.ScoringConfig) float64 {
	var sum float64
	disclosed := 0
	for i, key := range schema.AllPolicies {
		flag, ok := policies[key]
		if !ok || flag == nil {
			continue
		}
		disclosed++
		if *flag {
			sum += cfg.PolicyWeights[i]
		}
	}
	if disclosed == 0 {
		return 0
	}
	return algo.Sigmoid(sum, cfg.PolicySteepness, cfg.PolicyMidpoint)
}
