package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders a plain value the way the editor shows it.
func Format(key string, v float64) (string, error) {
	id, err := Lookup(key)
	if err != nil {
		return "", err
	}

	return id.Format(v), nil
}

// Parse reads text produced by Format (or typed by a user) back into a
// plain, sanitized value.
func Parse(key, text string) (float64, error) {
	id, err := Lookup(key)
	if err != nil {
		return 0, err
	}

	return id.Parse(text)
}

// Format renders v for id.
func (id ID) Format(v float64) string {
	d := definitions[id]
	v = d.Sanitize(v)

	switch d.Kind {
	case Bool:
		if v >= 0.5 {
			return "On"
		}

		return "Off"
	case Choice:
		return d.Choices[int(v)]
	}

	switch id {
	case Gain:
		if v <= d.Range.Min {
			return "-inf dB"
		}

		return fmt.Sprintf("%.1f dB", v)
	case Pan:
		return formatSided(v, "L", "R", "C")
	case StereoMidSide:
		return formatSided(v, "M", "S", "0")
	case StereoWidth:
		return fmt.Sprintf("%.0f%%", v)
	case BassMonoFrequency:
		return fmt.Sprintf("%.0f Hz", v)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

func formatSided(v float64, neg, pos, centre string) string {
	switch r := math.Round(v); {
	case r < 0:
		return fmt.Sprintf("%.0f%s", -r, neg)
	case r > 0:
		return fmt.Sprintf("%.0f%s", r, pos)
	default:
		return centre
	}
}

// Parse reads text for id.
func (id ID) Parse(text string) (float64, error) {
	d := definitions[id]
	s := strings.TrimSpace(text)

	switch d.Kind {
	case Bool:
		switch strings.ToLower(s) {
		case "on", "true", "yes", "1":
			return 1, nil
		case "off", "false", "no", "0":
			return 0, nil
		}

		return 0, fmt.Errorf("param: %s: not a switch value: %q", d.Key, text)
	case Choice:
		for i, c := range d.Choices {
			if strings.EqualFold(s, c) {
				return float64(i), nil
			}
		}

		return parseNumber(d, s)
	}

	switch id {
	case Gain:
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "dB"), "db"))
		if strings.EqualFold(s, "-inf") {
			return d.Range.Min, nil
		}
	case Pan:
		return parseSided(d, s, "L", "R", "C")
	case StereoMidSide:
		return parseSided(d, s, "M", "S", "0")
	case StereoWidth:
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	case BassMonoFrequency:
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "Hz"), "hz"))
	}

	return parseNumber(d, s)
}

func parseSided(d Definition, s, neg, pos, centre string) (float64, error) {
	u := strings.ToUpper(s)

	switch {
	case u == centre:
		return 0, nil
	case strings.HasSuffix(u, neg):
		v, err := parseMagnitude(d, strings.TrimSuffix(u, neg))
		return -v, err
	case strings.HasSuffix(u, pos):
		return parseMagnitude(d, strings.TrimSuffix(u, pos))
	default:
		return parseNumber(d, s)
	}
}

// parseMagnitude reads the unsigned number in front of a side suffix. The
// suffix carries the sign, so "-20L" is rejected rather than read as 20R.
func parseMagnitude(d Definition, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("param: %s: signed value before side suffix: %q", d.Key, s)
	}

	return parseNumber(d, s)
}

func parseNumber(d Definition, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("param: %s: %w", d.Key, err)
	}

	return d.Sanitize(v), nil
}
