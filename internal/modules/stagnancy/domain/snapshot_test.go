package domain

import (
	"testing"
	"time"
)

func TestSnapshotStagnant(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		age        time.Duration
		replyCount int
		want       bool
	}{
		{name: "3 days old, no replies", age: 72 * time.Hour, replyCount: 0, want: true},
		{name: "1 hour old", age: time.Hour, replyCount: 0, want: false},
		{name: "5 days old with replies", age: 120 * time.Hour, replyCount: 5, want: false},
		{name: "exactly 48h", age: 48 * time.Hour, replyCount: 0, want: false},
		{name: "just over 48h", age: 48*time.Hour + time.Second, replyCount: 0, want: true},
		{name: "old with single reply", age: 72 * time.Hour, replyCount: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot{Timestamp: now.Add(-tt.age), ReplyCount: tt.replyCount}
			if got := s.Stagnant(now); got != tt.want {
				t.Errorf("Stagnant = %v, want %v", got, tt.want)
			}
		})
	}
}
