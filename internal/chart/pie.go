// Package chart renders attendance counts into chart images
package chart

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	presentColor = drawing.ColorFromHex("2ECC71")
	absentColor  = drawing.ColorFromHex("E74C3C")
)

// AttendancePie renders a present/absent pie chart as a PNG.
// Returns (nil, nil) when there is nothing to plot.
func AttendancePie(title string, present, absent int) ([]byte, error) {
	if present+absent == 0 {
		return nil, nil
	}

	var values []chart.Value
	if present > 0 {
		values = append(values, chart.Value{
			Value: float64(present),
			Label: "Present",
			Style: chart.Style{FillColor: presentColor},
		})
	}
	if absent > 0 {
		values = append(values, chart.Value{
			Value: float64(absent),
			Label: "Absent",
			Style: chart.Style{FillColor: absentColor},
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
