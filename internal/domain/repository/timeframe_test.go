package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeframes(t *testing.T) {
	got, rejected := ParseTimeframes([]string{"4H", "1M", "2h", "4h", ""})
	assert.Equal(t, []Timeframe{TF4h, TF1mo}, got)
	assert.Equal(t, []string{"2h"}, rejected)
}

func TestParseTimeframesFallsBack(t *testing.T) {
	for _, raw := range [][]string{nil, {}, {"2h", "bogus"}} {
		got, _ := ParseTimeframes(raw)
		assert.Equal(t, []Timeframe{TF1d, TF1w}, got)
	}
}
