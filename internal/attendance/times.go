package attendance

import "time"

const (
	clock12Layout = "3:04 PM"
	clock24Layout = "15:04:05"
)

// to24Hour: "9:30 AM" → "09:30:00"。"12:xx AM" は 00時、"12:xx PM" は 12時。
func to24Hour(s string) (string, error) {
	t, err := time.Parse(clock12Layout, s)
	if err != nil {
		return "", err
	}
	return t.Format(clock24Layout), nil
}
