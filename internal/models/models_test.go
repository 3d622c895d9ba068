package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/liftedinit/propchain/internal/models"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100000, "100000.0"},
		{250000.5, "250000.5"},
		{-0.5, "-0.5"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{2.5e20, "2.5e+20"},
		{math.Inf(1), "inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.FormatFloat(tt.in))
	}
}

func TestAssetViewString(t *testing.T) {
	v := models.AssetView{PropertyID: 3, Owner: "carol", Value: 1e16, Location: "Dock 4", Status: "Not For Sale"}
	assert.Equal(t, "Property NFT - ID: 3, Owner: carol, Value: 1e+16, Location: Dock 4, Status: Not For Sale", v.String())
}
