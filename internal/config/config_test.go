package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfind.yaml")
	cfg := Default()

	require.NoError(t, cfg.Write(path))

	read, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, read, "read data should equal written data")
}

func TestConfig_WriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfind.yaml")
	require.NoError(t, Default().Write(path))

	cfg := Default()
	cfg.CostInf = 42
	cfg.Timeout = 250 * time.Millisecond
	require.NoError(t, cfg.Write(path))

	read, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 42.0, read.CostInf)
	assert.Equal(t, 250*time.Millisecond, read.Timeout)
}

func TestConfig_ReadNonexistent(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nonsense.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestConfig_ReadOrDefault(t *testing.T) {
	cfg, err := ReadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = ReadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_Equality(t *testing.T) {
	a := Configuration{
		Hazard:  HazardMultiplier{Unknown: 2, NonSolid: 3, Solid: 5, Dangerous: 7},
		CostInf: 11,
		Timeout: 13 * time.Millisecond,
	}
	b := Configuration{
		Hazard:  HazardMultiplier{Unknown: 2, NonSolid: 3, Solid: 5, Dangerous: 7},
		CostInf: 11,
		Timeout: 13 * time.Millisecond,
	}
	assert.Equal(t, a, b)
}

func TestConfig_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: "hazard:\n  unknown: 1\n  non_solid: 2\n  solid: 3\n  dangerous: 4\ncost_inf: 500\ntimeout: 1s\n",
		},
		{
			name:    "unknown field",
			yaml:    "cost_inf: 500\ntimeout: 1s\ntimout: 2s\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "bad duration",
			yaml:    "cost_inf: 500\ntimeout: soon\n",
			wantErr: "invalid timeout",
		},
		{
			name:    "zero cost_inf",
			yaml:    "cost_inf: 0\ntimeout: 1s\n",
			wantErr: "invalid configuration",
		},
		{
			name:    "negative timeout",
			yaml:    "cost_inf: 10\ntimeout: -1s\n",
			wantErr: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.yaml))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_FileIsHumanReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfind.yaml")
	require.NoError(t, Default().Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cost_inf: 100000")
	assert.Contains(t, string(data), "timeout: 2s")
	assert.Contains(t, string(data), "dangerous: 50")
}
