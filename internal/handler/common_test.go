package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turfease/turf-booking/internal/model"
)

func TestPubliclyVisible(t *testing.T) {
	cases := []struct {
		name     string
		active   bool
		verified bool
		want     bool
	}{
		{"active and verified", true, true, true},
		{"active but unverified", true, false, false},
		{"verified but deactivated", false, true, false},
		{"neither", false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			turf := model.Turf{IsActive: tc.active, IsVerified: tc.verified}
			assert.Equal(t, tc.want, publiclyVisible(turf))
		})
	}
}
