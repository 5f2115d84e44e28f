package stats

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
)

const statsFilename = "stats"

// EnableMemoryStatistics starts a go routine that periodically logs the
// memory usage of the process. When the context is done, the metrics of the
// given gatherer are dumped to a file in dumpDir, if not empty.
func EnableMemoryStatistics(
	ctx context.Context, interval time.Duration,
	gatherer prometheus.Gatherer, dumpDir string,
) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				LogMemoryStatistics()
			case <-ctx.Done():
				if len(dumpDir) <= 0 {
					return
				}
				if err := DumpMetrics(gatherer, dumpDir); err != nil {
					log.WithError(err).Warn("failed to dump metrics")
				}
				return
			}
		}
	}()
}

// LogMemoryStatistics logs memory statistics and number of running go
// routines.
func LogMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"total allocated: %.3fMB, heap allocated: %.3fMB, "+
			"allocated objects: %v, freed objects: %v, go routines: %v",
		toMegabytes(memStats.TotalAlloc),
		toMegabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
		runtime.NumGoroutine(),
	)
}

// DumpMetrics appends the metrics of the given gatherer to the stats file in
// the given directory.
func DumpMetrics(gatherer prometheus.Gatherer, dir string) error {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return err
	}

	file, err := os.OpenFile(
		filepath.Join(dir, statsFilename),
		os.O_APPEND|os.O_CREATE|os.O_RDWR,
		0644,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, v := range metricFamilies {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func toMegabytes(bytes uint64) float64 {
	return float64(bytes) / MEGABYTE
}
