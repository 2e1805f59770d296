package util

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"
)

func Stats() func() {
	return func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		log.Debug().Msgf("Alloc: %d MB, TotalAlloc: %d MB, Requested: %d MB",
			ms.Alloc/1024/1024, ms.TotalAlloc/1024/1024, ms.Sys/1024/1024)
		log.Debug().Msgf("Mallocs: %d, Frees: %d, GC: %d", ms.Mallocs, ms.Frees, ms.NumGC)
		log.Debug().Msgf("HeapObjects: %d", ms.HeapObjects)
	}
}

func ApplyCliSettings(verbose bool, profile bool, pprofPort uint16) {
	if verbose {
		log.Warn().Msgf("Verbosity up")
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if profile {
		log.Info().Msgf("Profiling is enabled for this session. Server will listen on port %d", pprofPort)
		go func() {
			if err := http.ListenAndServe(fmt.Sprintf(":%d", pprofPort), nil); err != nil {
				log.Error().Err(err).Msgf("Error starting profiling server on port %d", pprofPort)
				return
			}
		}()
	}
}

// CheckRam warns when holding the given number of blacklist digests in
// memory would exceed the available RAM. Each entry costs roughly 64 bytes
// as a map key plus overhead.
func CheckRam(items uint64) {
	required := (items * 64) / (1024 * 1024)
	if memStat, err := mem.VirtualMemory(); err == nil {
		log.Debug().Msgf("System has %.2f MiB of RAM available", float64(memStat.Available)/(1024*1024))
		if required > memStat.Available/(1024*1024) {
			log.Fatal().Msgf("Your system does not have the RAM required (%d MiB) to load this blacklist corpus.", required)
		}
	} else {
		log.Warn().Msgf("Estimated memory use for %d blacklist entries: %d MiB", items, required)
	}
}

// ToScreamingSnakeCase turns Go field names into their environment variable
// spelling, e.g. "DBDriver" -> "DB_DRIVER".
func ToScreamingSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
