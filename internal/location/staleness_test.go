package location

import (
	"testing"
	"time"
)

func TestLastUpdateAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"30 detik lalu", 30 * time.Second, "just now"},
		{"90 detik lalu", 90 * time.Second, "1 minute ago"},
		{"150 detik lalu", 150 * time.Second, "2 minutes ago"},
		{"1 jam lalu", 3600 * time.Second, "1 hour ago"},
		{"2 jam lalu", 7200 * time.Second, "2 hours ago"},
		{"3 hari lalu", 72 * time.Hour, "3 days ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := now.Add(-tc.ago).Format(time.RFC3339)
			if got := LastUpdateAgo(ts, now); got != tc.want {
				t.Errorf("LastUpdateAgo(%s) = %q, want %q", ts, got, tc.want)
			}
		})
	}
}

func TestLastUpdateAgo_MissingOrBroken(t *testing.T) {
	now := time.Now()

	if got := LastUpdateAgo("", now); got != "unknown" {
		t.Errorf("empty timestamp = %q, want unknown", got)
	}
	if got := LastUpdateAgo("bukan-timestamp", now); got != "unknown" {
		t.Errorf("broken timestamp = %q, want unknown", got)
	}
}

func TestLastUpdateAgo_FutureTimestampClamped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(5 * time.Minute).Format(time.RFC3339)

	// clock skew dari client tidak boleh menghasilkan "-5 minutes ago"
	if got := LastUpdateAgo(future, now); got != "just now" {
		t.Errorf("future timestamp = %q, want just now", got)
	}
}
