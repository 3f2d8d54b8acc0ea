package version

import (
	"strings"
	"testing"
)

func TestDaysSinceFirstRoom(t *testing.T) {
	tests := []struct {
		date    string
		want    int
		wantErr bool
	}{
		{date: "2026-01-12", want: 0},
		{date: "2026-01-13", want: 1},
		{date: "2027-01-12", want: 365},
		{date: "2030-01-12", want: 1461}, // с 29 февраля 2028
		{date: "12.01.2026", wantErr: true},
		{date: "", wantErr: true},
		{date: "2026-01-11", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.date, func(t *testing.T) {
			t.Parallel()

			got, err := daysSinceFirstRoom(tt.date)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("daysSinceFirstRoom(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestInfoAndString(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = "2026-02-01"
	info := Info()
	if !info.Known || info.Build != 20 {
		t.Errorf("info = %+v", info)
	}
	if info.Replays != 1 || info.Levels != 1 {
		t.Errorf("formats = svrp/%d svlv/%d", info.Replays, info.Levels)
	}
	s := String()
	for _, part := range []string{"#20", "ci local", "svrp/1 svlv/1"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}

	BuildDate = ""
	if info := Info(); info.Known || info.Error == "" {
		t.Errorf("info without date = %+v", info)
	}
	if s := String(); !strings.Contains(s, "dev build") {
		t.Errorf("String() = %q", s)
	}
}
