package oteladapters

import (
	"context"
	"sort"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const (
	PointKindHistogram = "histogram"
	PointKindCounter   = "counter"
	PointKindGauge     = "gauge"
)

// Point is one data point of a collected metric, flattened for JSON output.
type Point struct {
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Attributes map[string]string `json:"attributes"`

	// Count and Sum are set for histograms.
	Count uint64  `json:"count,omitempty"`
	Sum   float64 `json:"sum,omitempty"`

	// Value is set for counters and gauges.
	Value float64 `json:"value,omitempty"`
}

// MeterSetup bundles a MeterProvider with the ManualReader that Snapshot collects from.
type MeterSetup struct {
	Provider *sdkmetric.MeterProvider
	Reader   *sdkmetric.ManualReader
}

// NewMeterSetup creates an in-process MeterProvider backed by a ManualReader.
func NewMeterSetup() MeterSetup {
	reader := sdkmetric.NewManualReader()

	return MeterSetup{
		Provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		Reader:   reader,
	}
}

// Snapshot collects all metrics from reader. Points are sorted by name, then by attributes.
func Snapshot(ctx context.Context, reader sdkmetric.Reader) ([]Point, error) {
	var resourceMetrics metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &resourceMetrics); err != nil {
		return nil, err
	}

	points := make([]Point, 0)

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					points = append(points, Point{
						Name:       m.Name,
						Kind:       PointKindHistogram,
						Attributes: attributesOf(dp.Attributes),
						Count:      dp.Count,
						Sum:        dp.Sum,
					})
				}
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					points = append(points, Point{
						Name:       m.Name,
						Kind:       PointKindCounter,
						Attributes: attributesOf(dp.Attributes),
						Value:      float64(dp.Value),
					})
				}
			case metricdata.Gauge[float64]:
				for _, dp := range data.DataPoints {
					points = append(points, Point{
						Name:       m.Name,
						Kind:       PointKindGauge,
						Attributes: attributesOf(dp.Attributes),
						Value:      dp.Value,
					})
				}
			}
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Name != points[j].Name {
			return points[i].Name < points[j].Name
		}

		return attributeKey(points[i].Attributes) < attributeKey(points[j].Attributes)
	})

	return points, nil
}
