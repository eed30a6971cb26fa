package registry

import (
	"fmt"
	"strings"
)

// Unit is the unit of a metric, rendered on the UNIT line and appended to
// the metric name as a suffix.
type Unit string

// Base units recognised by OpenMetrics. Any other valid name can be used
// with Unit("name").
const (
	UnitAmperes Unit = "amperes"
	UnitBytes   Unit = "bytes"
	UnitCelsius Unit = "celsius"
	UnitGrams   Unit = "grams"
	UnitJoules  Unit = "joules"
	UnitMeters  Unit = "meters"
	UnitRatios  Unit = "ratios"
	UnitSeconds Unit = "seconds"
	UnitVolts   Unit = "volts"
)

// Descriptor holds the metadata of one metric family. When returned by
// Walk, Name is fully qualified and Help is normalized.
type Descriptor struct {
	Name string
	Help string
	Unit Unit
}

// ValidMetricName reports whether name matches [a-zA-Z_][a-zA-Z0-9_]*.
func ValidMetricName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// qualify builds the fully qualified descriptor of name under prefix:
// prefix_name, followed by _unit unless the name already ends with it.
// Help text gets a trailing period unless it already ends with one, so
// empty help becomes ".".
func qualify(prefix, name, help string, unit Unit) (Descriptor, error) {
	fqName := joinName(prefix, name)
	if !ValidMetricName(fqName) {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidName, fqName)
	}
	if unit != "" {
		if !ValidMetricName(string(unit)) {
			return Descriptor{}, fmt.Errorf("%w: unit %q", ErrInvalidName, unit)
		}
		if !strings.HasSuffix(fqName, "_"+string(unit)) {
			fqName += "_" + string(unit)
		}
	}
	if !strings.HasSuffix(help, ".") {
		help += "."
	}
	return Descriptor{Name: fqName, Help: help, Unit: unit}, nil
}

func joinName(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "_" + name
	}
}
