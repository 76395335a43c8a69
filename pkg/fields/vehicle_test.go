// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidVIN(t *testing.T) {
	tests := []struct {
		name string
		vin  string
		want bool
	}{
		{"check digit X", "1M8GDM9AXKP042788", true},
		{"lower case", "1m8gdm9axkp042788", true},
		{"all ones", "11111111111111111", true},
		{"honda", "1HGCM82633A004352", true},
		{"acura", "JH4KA7561PC008269", true},
		{"wrong check digit", "1M8GDM9A1KP042788", false},
		{"too short", "1M8GDM9AXKP04278", false},
		{"too long", "1M8GDM9AXKP0427881", false},
		{"contains I", "1M8GDM9AXKP04I788", false},
		{"contains O", "1M8GDM9AXKP04O788", false},
		{"contains Q", "1M8GDM9AXKP04Q788", false},
		{"tenth is zero", "1111111110" + "1111111", false},
		{"tenth is U", "1HGCM8263UA004352", false},
		{"punctuation", "1M8GDM9AXKP-42788", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidVIN(tt.vin))
		})
	}
}

func TestValidVINSingleFlipInCheckPosition(t *testing.T) {
	valid := "1HGCM82633A004352"
	for _, c := range "0124567889X" {
		if c == '3' {
			continue
		}
		flipped := valid[:8] + string(c) + valid[9:]
		assert.False(t, ValidVIN(flipped), flipped)
	}
	assert.True(t, ValidVIN(strings.ToLower(valid)))
}

func TestVehicleIsSearchable(t *testing.T) {
	assert.True(t, (&Vehicle{VIN: "1M8GDM9AXKP042788"}).IsSearchable())
	assert.False(t, (&Vehicle{VIN: "1M8GDM9A1KP042788"}).IsSearchable())
	assert.False(t, (&Vehicle{Make: "Toyota"}).IsSearchable())
}
