// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"strconv"
	"strings"
)

// Vehicle is a vehicle registered to the person.
type Vehicle struct {
	Common
	IsVINValid bool

	VIN         string
	Year        int64
	Make        string
	Model       string
	Color       string
	VehicleType string
	Display     string
}

func (v *Vehicle) Kind() Kind { return KindVehicle }

func (v *Vehicle) decode(m wireMap) error {
	if err := v.Common.decode(m); err != nil {
		return err
	}
	v.IsVINValid = m.bool("is_vin_valid")
	v.VIN = m.str("vin")
	v.Year = m.int("year")
	v.Make = m.str("make")
	v.Model = m.str("model")
	v.Color = m.str("color")
	v.VehicleType = m.str("vehicle_type")
	v.Display = v.display()
	return nil
}

func (v *Vehicle) ToWire() map[string]any {
	w := v.Common.writer()
	w.attr("is_vin_valid", v.IsVINValid)
	w.child("vin", v.VIN)
	w.child("year", v.Year)
	w.child("make", v.Make)
	w.child("model", v.Model)
	w.child("color", v.Color)
	w.child("vehicle_type", v.VehicleType)
	w.child("display", v.Display)
	return w.m
}

func (v *Vehicle) Representation() string { return representation(KindVehicle, v.ToWire()) }

// IsSearchable requires a VIN that passes ValidVIN.
func (v *Vehicle) IsSearchable() bool { return ValidVIN(v.VIN) }

// String is the year, make, model, type and color, then "- VIN <vin>".
func (v *Vehicle) String() string { return v.display() }

// display renders e.g. "2012 Toyota Camry Sedan Silver - VIN 1M8GDM9AXKP042788".
func (v *Vehicle) display() string {
	var parts []string
	if v.Year != 0 {
		parts = append(parts, strconv.FormatInt(v.Year, 10))
	}
	for _, s := range []string{v.Make, v.Model, v.VehicleType, v.Color} {
		if s != "" {
			parts = append(parts, title(s))
		}
	}
	if len(parts) > 0 {
		parts = append(parts, "-")
	}
	parts = append(parts, "VIN")
	if v.VIN != "" {
		parts = append(parts, v.VIN)
	}
	return strings.Join(parts, " ")
}

var (
	vinWeights = [17]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}
	vinLetters = map[rune]int{
		'a': 1, 'j': 1,
		'b': 2, 'k': 2, 's': 2,
		'c': 3, 'l': 3, 't': 3,
		'd': 4, 'm': 4, 'u': 4,
		'e': 5, 'n': 5, 'v': 5,
		'f': 6, 'w': 6,
		'g': 7, 'p': 7, 'x': 7,
		'h': 8, 'y': 8,
		'r': 9, 'z': 9,
	}
)

// ValidVIN checks a vehicle identification number: 17 letters and digits,
// no I, O or Q, a tenth character other than U, Z or 0, and a matching
// mod-11 check digit in the ninth position ("X" stands for 10).
func ValidVIN(vin string) bool {
	vin = strings.ToLower(vin)
	if len(vin) != 17 || strings.ContainsAny(vin, "ioq") || strings.ContainsRune("uz0", rune(vin[9])) {
		return false
	}
	sum := 0
	for i, r := range vin {
		var n int
		switch {
		case r >= '0' && r <= '9':
			n = int(r - '0')
		case r >= 'a' && r <= 'z':
			n = vinLetters[r]
		default:
			return false
		}
		sum += n * vinWeights[i]
	}
	check := strconv.Itoa(sum % 11)
	if check == "10" {
		check = "x"
	}
	return check == vin[8:9]
}
