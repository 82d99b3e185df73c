package model

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

func TestAPITime_UnmarshalLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"microseconds", `"2026-08-28T10:30:00.123456"`},
		{"milliseconds", `"2026-08-28T10:30:00.123"`},
		{"plain", `"2026-08-28T10:30:00"`},
		{"rfc3339", `"2026-08-28T10:30:00Z"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts APITime
			require.NoError(t, ts.UnmarshalJSON([]byte(tt.raw)))
			require.Equal(t, 2026, ts.Year())
			require.Equal(t, time.August, ts.Month())
			require.Equal(t, 10, ts.Hour())
		})
	}
}

func TestAPITime_UnparsableLeavesZeroTime(t *testing.T) {
	var ts APITime
	require.NoError(t, ts.UnmarshalJSON([]byte(`"28/08/2026"`)))
	require.True(t, ts.IsZero())
}

func TestAPITime_NullAndEmpty(t *testing.T) {
	var ts APITime
	require.NoError(t, ts.UnmarshalJSON([]byte(`null`)))
	require.True(t, ts.IsZero())

	require.NoError(t, ts.UnmarshalJSON([]byte(`""`)))
	require.True(t, ts.IsZero())
}

func TestAPITime_InsideStruct(t *testing.T) {
	var g Game
	err := sonic.Unmarshal([]byte(`{"id": 1, "last_updated": "2026-08-28T10:30:00.000000"}`), &g)
	require.NoError(t, err)
	require.Equal(t, 2026, g.LastUpdated.Year())
}
