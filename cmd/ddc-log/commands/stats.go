package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/displayctl/ddc-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Displays          map[string]*DisplayStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// DisplayStats holds statistics for a single display.
type DisplayStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Backend   string

	// Requests counts outgoing exchanges; Retries the ones past attempt 1.
	Requests int
	Retries  int
	Errors   int
}

// CollectStats reads the log file and aggregates its events.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Displays:          make(map[string]*DisplayStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++
		stats.EventsByDirection[event.Direction]++
		if event.Error != nil {
			stats.Errors++
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.DisplayID == "" {
			continue
		}
		ds, ok := stats.Displays[event.DisplayID]
		if !ok {
			ds = &DisplayStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp, Backend: event.Backend}
			stats.Displays[event.DisplayID] = ds
		}
		ds.Events++
		if event.Timestamp.After(ds.LastSeen) {
			ds.LastSeen = event.Timestamp
		}
		if ex := event.Exchange; ex != nil && event.Direction == log.DirectionOut {
			ds.Requests++
			if ex.Attempt > 1 {
				ds.Retries++
			}
		}
		if event.Error != nil {
			ds.Errors++
		}
	}
	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== DDC/CI Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerDisplay, log.LayerDiscovery} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryExchange, log.CategoryState, log.CategoryDiscovery, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Displays: %d\n", len(stats.Displays))
	for _, id := range slices.Sorted(maps.Keys(stats.Displays)) {
		ds := stats.Displays[id]
		fmt.Fprintf(w, "  [%s] %d events, %d requests, %d retries, duration %s\n",
			id, ds.Events, ds.Requests, ds.Retries, ds.LastSeen.Sub(ds.FirstSeen).Round(time.Millisecond))
		if ds.Errors > 0 {
			fmt.Fprintf(w, "           Errors: %d\n", ds.Errors)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
