package version

import (
	"fmt"
	"runtime"
	"time"

	"stealth-server/internal/infrastructure/storage"
)

const name = "stealth-server"

// Метаданные сборки, проставляются при сборке:
//
//	go build -ldflags "-X stealth-server/internal/version.BuildDate=2026-02-01 -X ..."
var (
	BuildDate   string // YYYY-MM-DD, UTC
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Первый день, когда сервер собирал комнаты с камерами. Номер сборки считается от него.
var firstRoomDay = time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)

// VersionInfo отдается в /version. Кроме сборки в нем версии файловых форматов,
// чтобы клиент знал, какие .svrp и .svlv сервер примет.
type VersionInfo struct {
	Name    string `json:"name"`
	Build   int    `json:"build"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Branch  string `json:"branch,omitempty"`
	CI      string `json:"ci,omitempty"`
	Go      string `json:"go"`
	Replays uint32 `json:"replayFormat"`
	Levels  uint32 `json:"levelFormat"`

	// Known = false, если дату сборки не передали или она некорректна
	Known bool   `json:"known"`
	Error string `json:"error,omitempty"`
}

// BuildNumber - число дней от firstRoomDay до BuildDate.
func BuildNumber() (int, error) {
	return daysSinceFirstRoom(BuildDate)
}

func daysSinceFirstRoom(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is not set")
	}
	day, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("build date %q: %w", date, err)
	}
	if day.Before(firstRoomDay) {
		return 0, fmt.Errorf("build date %s is before %s", date, firstRoomDay.Format(time.DateOnly))
	}
	return int(day.Sub(firstRoomDay).Hours()) / 24, nil
}

func Info() VersionInfo {
	info := VersionInfo{
		Name:    name,
		Date:    BuildDate,
		Commit:  BuildCommit,
		Branch:  BuildBranch,
		CI:      BuildCI,
		Go:      runtime.Version(),
		Replays: storage.Version1,
		Levels:  storage.LevelVersion1,
	}

	n, err := BuildNumber()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Build = n
	info.Known = true
	return info
}

// String - строка для лога при старте
func String() string {
	info := Info()
	formats := fmt.Sprintf("svrp/%d svlv/%d", info.Replays, info.Levels)

	if !info.Known {
		return fmt.Sprintf("%s dev build (%s), %s, %s", info.Name, info.Error, formats, info.Go)
	}
	return fmt.Sprintf("%s #%d from %s, commit %s on %s, ci %s, %s, %s",
		info.Name, info.Build, info.Date,
		orDefault(info.Commit, "unknown"),
		orDefault(info.Branch, "unknown"),
		orDefault(info.CI, "local"),
		formats, info.Go,
	)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
