package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

const fixturePath = "../../data/fixtures/wildfire.yaml"

func TestRun_AlertsBySeverity(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-file", fixturePath, "-kind", "alert", "-sort", "severity", "-dir", "desc", "-format", "json"}, &out)
	require.NoError(t, err)

	var alerts []domain.AlertRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &alerts))
	require.Len(t, alerts, 3)
	assert.Equal(t, domain.SeverityEmergency, alerts[0].Severity)
	assert.Equal(t, domain.SeverityInfo, alerts[2].Severity)
}

func TestRun_FiresFilteredByProvince(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-file", fixturePath, "-kind", "fire", "-filter", "province=BC", "-sort", "area_burned_hectares", "-dir", "desc"}, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3, out.String())
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Donnie Creek")
	assert.Contains(t, lines[2], "Elephant Hill")
}

func TestRun_RisksTopN(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-file", fixturePath, "-sort", "risk_score", "-dir", "desc", "-limit", "1"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Fort McMurray")
	assert.NotContains(t, out.String(), "Kamloops")
	assert.Contains(t, out.String(), "extreme")
}

func TestRun_JSONFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"risks":[{"id":"r1","location_name":"Kelowna","risk_score":44,"risk_level":"moderate"}]}`), 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-file", path, "-filter", "risk_level=moderate"}, &out))
	assert.Contains(t, out.String(), "Kelowna")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file flag", args: []string{"-kind", "risk"}},
		{name: "unknown kind", args: []string{"-file", fixturePath, "-kind", "smoke"}},
		{name: "unknown format", args: []string{"-file", fixturePath, "-format", "csv"}},
		{name: "bad direction", args: []string{"-file", fixturePath, "-dir", "sideways"}},
		{name: "bad filter syntax", args: []string{"-file", fixturePath, "-filter", "severity"}},
		{name: "unknown sort field", args: []string{"-file", fixturePath, "-sort", "colour"}},
		{name: "unknown enum value", args: []string{"-file", fixturePath, "-kind", "alert", "-filter", "severity=apocalyptic"}},
		{name: "missing file", args: []string{"-file", "does-not-exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.Error(t, run(tt.args, &out))
		})
	}
}
