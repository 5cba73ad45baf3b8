package version

import (
	"fmt"
	"runtime/debug"
)

// Name: имя сервиса в логах, health-ответах и gRPC reflection.
const Name = "pizzaria-order-service"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(info)
	}
}

// applyBuildInfo берёт ревизию и время коммита из build info, которую вшивает go build.
// Значения из -ldflags имеют приоритет.
func applyBuildInfo(info *debug.BuildInfo) {
	if commit != "unknown" || info == nil {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if s.Value != "" {
				commit = s.Value
			}
		case "vcs.time":
			if s.Value != "" && date == "unknown" {
				date = s.Value
			}
		}
	}
}

// Info returns version information populated via -ldflags.
func Info() (v, c, d string) { return version, commit, date }

func GetVersion() string { return version }

func GetCommit() string { return commit }

func GetDate() string { return date }

func String() string {
	return fmt.Sprintf("%s version=%s commit=%s date=%s", Name, version, commit, date)
}
