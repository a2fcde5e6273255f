package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/justyntemme/polysynth/pkg/dsp"
)

// Common parameter formatters and parsers

// PercentFormatter formats a 0-100 value as a rounded percentage
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(value)))
}

// PercentParser parses percentage strings
func PercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// PanFormatter formats a balance position: "center" within ±0.01,
// otherwise the rounded percentage toward the louder side.
func PanFormatter(pan float64) string {
	switch {
	case pan > -0.01 && pan < 0.01:
		return "center"
	case pan < 0:
		return fmt.Sprintf("%d%% left", int(math.Round(-pan*100)))
	default:
		return fmt.Sprintf("%d%% right", int(math.Round(pan*100)))
	}
}

// PanParser parses the strings PanFormatter produces, or a plain -1..1 number
func PanParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))

	if str == "center" || str == "c" {
		return 0, nil
	}

	for suffix, sign := range map[string]float64{"left": -1, "right": 1} {
		if strings.HasSuffix(str, suffix) {
			pct, err := PercentParser(strings.TrimSuffix(str, suffix))
			if err != nil {
				return 0, err
			}
			return sign * pct / 100, nil
		}
	}

	return strconv.ParseFloat(str, 64)
}

// MillisecondsFormatter formats a duration in seconds as whole milliseconds
func MillisecondsFormatter(seconds float64) string {
	return fmt.Sprintf("%dms", int(math.Round(seconds*1000)))
}

// MillisecondsParser parses "NNms" or "N.Ns" into seconds
func MillisecondsParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	if strings.HasSuffix(str, "ms") {
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "ms")), 64)
		if err != nil {
			return 0, err
		}
		return val / 1000, nil
	}

	return strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "s")), 64)
}

// PitchBendFormatter formats the raw bend amount, clamped to -8192..8191
func PitchBendFormatter(bend float64) string {
	return strconv.Itoa(int(dsp.Clamp(math.Round(bend), -8192, 8191)))
}

// PitchBendParser parses a raw bend amount
func PitchBendParser(str string) (float64, error) {
	v, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}
