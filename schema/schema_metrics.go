package schema

import (
	"encoding/json"
	"fmt"
)

// MetricVector holds one value per metric, indexed in AllMetrics order.
// It is an array, so assignment copies it and no stage can mutate another's data.
type MetricVector [MetricCount]float64

// Get returns the value for a metric key. Unknown keys return 0.
func (v MetricVector) Get(k MetricKey) float64 {
	if i := k.Index(); i >= 0 {
		return v[i]
	}
	return 0
}

// With returns a copy of the vector with one metric replaced.
func (v MetricVector) With(k MetricKey, value float64) MetricVector {
	if i := k.Index(); i >= 0 {
		v[i] = value
	}
	return v
}

// Sum adds all six values.
func (v MetricVector) Sum() float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// Map converts the vector to a name-keyed map for display and serialization.
func (v MetricVector) Map() map[string]float64 {
	m := make(map[string]float64, MetricCount)
	for i, k := range AllMetrics {
		m[string(k)] = v[i]
	}
	return m
}

// MetricVectorFromMap builds a vector from a name-keyed map.
// Missing keys are left at zero; unknown keys are rejected.
func MetricVectorFromMap(m map[string]float64) (MetricVector, error) {
	var v MetricVector
	for name, value := range m {
		k, ok := ParseMetricKey(name)
		if !ok {
			return v, fmt.Errorf("unknown metric %q", name)
		}
		v[k.Index()] = value
	}
	return v, nil
}

// MarshalJSON encodes the vector as an object keyed by metric name.
func (v MetricVector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}

// UnmarshalJSON decodes an object keyed by metric name.
func (v *MetricVector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := MetricVectorFromMap(m)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
