package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid evening time", input: "19:00", want: "19:00"},
		{name: "valid half hour", input: "12:30", want: "12:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "missing leading zero", input: "9:05", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minutes", input: "19:60", wantErr: true},
		{name: "garbage", input: "evening", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2024, 6, 10, 19, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("19:30"), NewTimeString(moment))
}

func TestTimeString_Comparisons(t *testing.T) {
	tests := []struct {
		name       string
		a, b       TimeString
		wantBefore bool
		wantAfter  bool
	}{
		{name: "earlier", a: "18:00", b: "18:30", wantBefore: true, wantAfter: false},
		{name: "later", a: "20:30", b: "18:30", wantBefore: false, wantAfter: true},
		{name: "equal", a: "19:00", b: "19:00", wantBefore: false, wantAfter: false},
		{name: "midnight boundary", a: "23:30", b: "24:00", wantBefore: true, wantAfter: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantBefore, tt.a.IsBefore(tt.b))
			assert.Equal(t, tt.wantAfter, tt.a.IsAfter(tt.b))
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "within hour", start: "18:00", minutes: 30, want: "18:30"},
		{name: "across hour", start: "18:45", minutes: 30, want: "19:15"},
		{name: "to midnight boundary", start: "23:30", minutes: 30, want: "24:00"},
		{name: "past midnight", start: "23:45", minutes: 30, wantErr: true},
		{name: "negative result", start: "00:00", minutes: -30, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTimeOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("19:00"))
	assert.Equal(t, TimeString("19:00"), ts)

	require.NoError(t, ts.Scan([]byte("12:30")))
	assert.Equal(t, TimeString("12:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
