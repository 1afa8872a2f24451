package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTo24Hour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9:30 AM", "09:30:00"},
		{"12:00 AM", "00:00:00"}, // 深夜0時
		{"12:15 PM", "12:15:00"}, // 正午過ぎ
		{"1:05 PM", "13:05:00"},
		{"11:59 PM", "23:59:00"},
		{"10:45 AM", "10:45:00"},
	}
	for _, c := range cases {
		got, err := to24Hour(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestTo24HourRejectsGarbage(t *testing.T) {
	for _, s := range []string{"13:30 PM", "9:30", "", "noon"} {
		_, err := to24Hour(s)
		assert.Error(t, err, s)
	}
}
