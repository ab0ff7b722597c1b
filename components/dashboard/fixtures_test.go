package dashboard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overrideFixtures = `version: "1"
name: staging
profile:
  name: Ops Lead
  email: ops@example.com
  avatar_seed: ops
users:
  - name: Ann Lee
    email: ann@example.com
    role: Admin
    status: Active
    last_active: now
home_charts:
  daily:
    labels: [Mon, Tue]
    data: [1, 2]
`

func TestDecodeFixturesOverridesSections(t *testing.T) {
	doc, err := DecodeFixtures(strings.NewReader(overrideFixtures))
	require.NoError(t, err)
	assert.Equal(t, "staging", doc.Name)

	data := doc.Dataset
	assert.Equal(t, "Ops Lead", data.Profile.Name)
	require.Len(t, data.Users, 1)
	assert.Equal(t, UserActive, data.Users[0].Status)

	// untouched sections keep their defaults, maps merge by key
	defaults := DefaultDataset()
	assert.Equal(t, defaults.LiveMetrics, data.LiveMetrics)
	assert.Equal(t, []float64{1, 2}, data.HomeCharts["daily"].Data)
	assert.Equal(t, defaults.HomeCharts["weekly"], data.HomeCharts["weekly"])
}

func TestDecodeFixturesRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":          "  \n",
		"no version":     "name: x\n",
		"wrong version":  "version: \"2\"\n",
		"unknown root":   "version: \"1\"\nwidgets: []\n",
		"unknown nested": "version: \"1\"\nusers:\n  - name: Ann\n    status: Active\n    age: 3\n",
		"bad enum":       "version: \"1\"\nusers:\n  - name: Ann\n    status: Away\n",
		"bad tab":        "version: \"1\"\nnotifications:\n  archived: []\n",
		"bad chart kind": "version: \"1\"\nanalytics_panels:\n  overview:\n    - title: T\n      kind: radar\n      series: {labels: [], data: []}\n",
		"not yaml":       "version: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeFixtures(strings.NewReader(body))
			if !errors.Is(err, ErrInvalidFixtures) {
				t.Fatalf("expected ErrInvalidFixtures, got %v", err)
			}
		})
	}
}

func TestLoadDataset(t *testing.T) {
	data, err := LoadDataset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDataset(), data)

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overrideFixtures), 0o600))
	data, err = LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", data.Profile.Email)

	doc, err := ReadFixtures(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
