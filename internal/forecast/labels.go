package forecast

import (
	"math"
	"strconv"
	"strings"
)

var frostLabels = map[int]string{
	0: "No frost",
	1: "Frost",
	2: "Severe Frost",
}

var heavyRainLabels = map[int]string{
	0: "No Severe Rainfall",
	1: "Heavy Rainfall",
	2: "Severe Rainfall",
	3: "Extreme Rainfall",
}

var windLabels = map[int]string{
	0: "No Severe Wind",
	1: "Wind Gusts",
	2: "Squall",
	3: "Severe Squall",
	4: "Violent Squall",
	5: "Gale-Force Winds",
	6: "Extreme Gale-Force Winds",
}

// HeatIndexLabel buckets a heat index in degrees Celsius. Values that are not
// numeric yield "".
func HeatIndexLabel(v Value) string {
	f, ok := parseFloat(v)
	if !ok {
		return ""
	}
	switch {
	case f < 26:
		return "No Heat Hazard"
	case f < 32:
		return "Caution"
	case f < 41:
		return "Extreme Caution"
	case f < 54:
		return "Danger"
	default:
		return "Extreme Danger"
	}
}

// FrostLabel describes a frost warning index (0-2).
func FrostLabel(v Value) string { return indexLabel(frostLabels, v) }

// HeavyRainLabel describes a heavy rain warning index (0-3).
func HeavyRainLabel(v Value) string { return indexLabel(heavyRainLabels, v) }

// WindLabel describes a wind warning index (0-6).
func WindLabel(v Value) string { return indexLabel(windLabels, v) }

// indexLabel truncates v toward zero and looks it up in labels. Anything that
// does not resolve to a known index yields "".
func indexLabel(labels map[int]string, v Value) string {
	f, ok := parseFloat(v)
	if !ok || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return ""
	}
	return labels[int(f)]
}

// parseFloat reads numbers directly and parses numeric text. NaN is rejected.
func parseFloat(v Value) (float64, bool) {
	switch v.kind {
	case kindNumber:
		if math.IsNaN(v.num) {
			return 0, false
		}
		return v.num, true
	case kindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
