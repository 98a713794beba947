package appointment

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFormatSchedule(t *testing.T) {
	tests := []struct {
		name    string
		timer   Timer
		want    Schedule
		wantErr bool
	}{
		{name: "padded", timer: Timer{Date: "5", Month: "3", Hours: "9", Minute: "0"}, want: Schedule{Date: "05", Month: "03", Hour: "09", Minute: "00"}},
		{name: "already padded", timer: Timer{Date: "25", Month: "12", Hours: "23", Minute: "59"}, want: Schedule{Date: "25", Month: "12", Hour: "23", Minute: "59"}},
		{name: "missing minute", timer: Timer{Date: "25", Month: "12", Hours: "23"}, wantErr: true},
		{name: "empty", timer: Timer{}, wantErr: true},
		{name: "date out of range", timer: Timer{Date: "32", Month: "1", Hours: "1", Minute: "1"}, wantErr: true},
		{name: "month out of range", timer: Timer{Date: "1", Month: "13", Hours: "1", Minute: "1"}, wantErr: true},
		{name: "hours out of range", timer: Timer{Date: "1", Month: "1", Hours: "24", Minute: "1"}, wantErr: true},
		{name: "not a number", timer: Timer{Date: "1", Month: "1", Hours: "1", Minute: "ab"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatSchedule(tt.timer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatSchedule() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatWeekSchedule(t *testing.T) {
	got, err := FormatWeekSchedule(map[string]Timer{
		"Mon":    {Hours: "10", Minute: "00"},
		"quarta": {Hours: "8", Minute: "5"},
	})
	if assert.NoError(t, err) {
		assert.Equal(t, WeekSchedule{
			"Mon": {Hour: "10", Minute: "00"},
			"Wed": {Hour: "08", Minute: "05"},
		}, got)
	}

	_, err = FormatWeekSchedule(nil)
	assert.Equal(t, ErrEmptyWeekSchedule, err)

	_, err = FormatWeekSchedule(map[string]Timer{"Mon": {Hours: "10"}})
	assert.Equal(t, ErrIncompleteSchedule, errors.Cause(err))

	_, err = FormatWeekSchedule(map[string]Timer{"Someday": {Hours: "10", Minute: "00"}})
	assert.Equal(t, ErrUnknownWeekday, errors.Cause(err))
}

func TestCanonicalWeekday(t *testing.T) {
	for in, want := range map[string]string{"Mon": "Mon", "monday": "Mon", " SEG ": "Mon", "sábado": "Sat", "Dom": "Sun"} {
		got, err := CanonicalWeekday(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := CanonicalWeekday("")
	assert.Error(t, err)
}

func TestSchedule_document(t *testing.T) {
	assert.Equal(t,
		map[string]interface{}{"date": "05", "month": "03", "hour": "09", "minute": "00"},
		Schedule{Date: "05", Month: "03", Hour: "09", Minute: "00"}.document(),
	)
	assert.Equal(t,
		map[string]interface{}{"Mon": map[string]interface{}{"hour": "10", "minute": "00"}},
		WeekSchedule{"Mon": {Hour: "10", Minute: "00"}}.document(),
	)
}
