package util

import (
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Log logs a message if verbose is true.
func Log(verbose bool, format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// ProgressLogger tracks and prints progress for a long-running pass over
// totalEvents items, such as the driver processing a large command file.
type ProgressLogger struct {
	totalEvents    uint64
	prefix         string
	suffix         string
	loggedEvents   uint64
	logStep        uint64
	nextEventToLog uint64
	enabled        bool
	startTime      time.Time
	limiter        *rate.Limiter
}

// NewProgressLogger creates a new progress logger, printing at most 10
// updates per second via limiter instead of a hand-rolled time.Since check.
func NewProgressLogger(totalEvents uint64, prefix, suffix string, enable bool) *ProgressLogger {
	pl := &ProgressLogger{
		totalEvents: totalEvents,
		prefix:      prefix,
		suffix:      suffix,
		enabled:     enable,
		startTime:   time.Now(),
		limiter:     rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}

	percFraction := uint64(20) // Default to 5% steps
	if totalEvents >= 100_000_000 {
		percFraction = 100 // 1% steps for large counts
	}
	pl.logStep = (totalEvents + percFraction - 1) / percFraction
	if pl.logStep == 0 {
		pl.logStep = 1
	}

	if enable {
		pl.nextEventToLog = pl.logStep
		pl.update(false)
	} else {
		pl.nextEventToLog = ^uint64(0)
	}
	return pl
}

// Log increments the counter and updates progress if the step is reached.
func (pl *ProgressLogger) Log() {
	if !pl.enabled {
		return
	}
	pl.loggedEvents++
	if pl.loggedEvents >= pl.nextEventToLog {
		pl.update(false)
		pl.nextEventToLog += pl.logStep
		if pl.nextEventToLog > pl.totalEvents {
			pl.nextEventToLog = pl.totalEvents
		}
	}
}

// Finalize prints the 100% progress update, bypassing the rate limiter.
func (pl *ProgressLogger) Finalize() {
	if !pl.enabled {
		return
	}
	pl.loggedEvents = pl.totalEvents
	pl.update(true)
}

// update prints the progress status.
func (pl *ProgressLogger) update(final bool) {
	perc := uint64(0)
	if pl.totalEvents > 0 {
		perc = (100 * pl.loggedEvents) / pl.totalEvents
	}
	if final {
		fmt.Print(strings.Repeat(" ", 10))
		fmt.Printf("\r%s%d%%%s", pl.prefix, perc, pl.suffix)
		elapsed := time.Since(pl.startTime)
		fmt.Printf(" (%.2fs) \n", elapsed.Seconds())
		return
	}
	if pl.limiter.Allow() {
		fmt.Print(strings.Repeat(" ", 10))
		fmt.Printf("\r%s%d%%%s", pl.prefix, perc, pl.suffix)
	}
}
