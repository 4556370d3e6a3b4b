package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mayagamaleldin/graduationproject/models"
)

func TestWindow(t *testing.T) {
	records := []models.RawUserRecord{{UserName: "a"}, {UserName: "b"}, {UserName: "c"}, {UserName: "d"}}
	names := func(rs []models.RawUserRecord) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.DisplayName())
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, names(window(records, 0, 0)))
	assert.Equal(t, []string{"b", "c"}, names(window(records, 1, 2)))
	assert.Equal(t, []string{"c", "d"}, names(window(records, 2, 10)))
	assert.Empty(t, window(records, 9, 0))
}

func TestFlagFallbacks(t *testing.T) {
	assert.Equal(t, "cli.json", firstNonEmpty("cli.json", "cfg.json"))
	assert.Equal(t, "cfg.json", firstNonEmpty("", "cfg.json"))
	assert.Equal(t, 3, firstPositive(0, 3))
	assert.Equal(t, 0, firstPositive(0, -1))
	assert.Equal(t, 15*time.Second, seconds(0, 15))
	assert.Equal(t, 2*time.Second, seconds(2, 15))
}
