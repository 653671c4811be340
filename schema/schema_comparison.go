package schema

// ComparisonResult holds independent scoring runs keyed by organization name.
// Organizations keeps the input order, since map iteration does not.
type ComparisonResult struct {
	Organizations []string             `json:"organizations"`
	Results       map[string]AEMResult `json:"results"`
	Spread        float64              `json:"spread"` // Highest score minus lowest score
}

// Delta returns the score of the second organization minus the first.
// It is zero when fewer than two organizations were compared.
func (c ComparisonResult) Delta() float64 {
	if len(c.Organizations) < 2 {
		return 0
	}
	return c.Results[c.Organizations[1]].Score - c.Results[c.Organizations[0]].Score
}
