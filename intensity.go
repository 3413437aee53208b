package cachemgr

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Intensity is an escalating cleanup severity. Values are totally ordered.
type Intensity int

// Cleanup intensities, from least to most aggressive.
const (
	IntensityLight      Intensity = 1
	IntensityNormal     Intensity = 2
	IntensityAggressive Intensity = 3
	IntensityForce      Intensity = 4
)

// String returns the lower-case name of the intensity.
func (i Intensity) String() string {
	switch i {
	case IntensityLight:
		return "light"
	case IntensityNormal:
		return "normal"
	case IntensityAggressive:
		return "aggressive"
	case IntensityForce:
		return "force"
	default:
		return fmt.Sprintf("intensity(%d)", int(i))
	}
}

// Valid reports whether i is one of the defined intensities.
func (i Intensity) Valid() bool {
	return i >= IntensityLight && i <= IntensityForce
}

// ParseIntensity converts a string to an Intensity. Matching is case-insensitive.
func ParseIntensity(s string) (Intensity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return IntensityLight, nil
	case "normal":
		return IntensityNormal, nil
	case "aggressive":
		return IntensityAggressive, nil
	case "force":
		return IntensityForce, nil
	default:
		return 0, configError("intensity", "invalid cleanup intensity: %q", s)
	}
}

// UnmarshalYAML accepts either an intensity name or its numeric value.
func (i *Intensity) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err == nil {
		v := Intensity(n)
		if !v.Valid() {
			return configError("intensity", "invalid cleanup intensity: %d", n)
		}
		*i = v
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseIntensity(s)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// MarshalYAML encodes the intensity by name.
func (i Intensity) MarshalYAML() (any, error) {
	return i.String(), nil
}

// IntensityForPressure maps a 0-100 memory pressure sample to the intensity the
// scheduler uses for the next pass.
func IntensityForPressure(pressure float64) Intensity {
	switch {
	case pressure > 80:
		return IntensityAggressive
	case pressure > 60:
		return IntensityNormal
	default:
		return IntensityLight
	}
}
