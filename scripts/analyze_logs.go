package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// entry is one line of the zap JSON logs written by utils.InitLogger.
type entry struct {
	Level    string  `json:"level"`
	Msg      string  `json:"msg"`
	Method   string  `json:"method"`
	Path     string  `json:"path"`
	Status   int     `json:"status"`
	Duration float64 `json:"duration"`
}

type LogStats struct {
	TotalErrors       int
	Selections        map[string]int
	ReadyViews        int
	SupersededDrops   int
	DiscardedFailures int
	CredentialResets  int
	Evictions         int
	APIFailures       int
	Requests          int
	FailedRequests    int
	SlowestRequests   []entry
	OrderActivities   map[string]int
	ErrorPatterns     map[string]int
}

var (
	selectionRe = regexp.MustCompile(`opened generation \d+ for order (\S+) \((\w+)\)`)
	orderRe     = regexp.MustCompile(`order (\S+?)[:, )]`)
	digitsRe    = regexp.MustCompile(`\d+`)
	uuidRe      = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

func main() {
	logDir := flag.String("dir", "./logs", "log directory")
	day := flag.String("date", time.Now().Format("2006-01-02"), "day to analyze (YYYY-MM-DD)")
	flag.Parse()

	stats := &LogStats{
		Selections:      make(map[string]int),
		OrderActivities: make(map[string]int),
		ErrorPatterns:   make(map[string]int),
	}

	scan(filepath.Join(*logDir, fmt.Sprintf("error-%s.log", *day)), stats, analyzeError)
	scan(filepath.Join(*logDir, fmt.Sprintf("info-%s.log", *day)), stats, analyzeInfo)
	scan(filepath.Join(*logDir, fmt.Sprintf("debug-%s.log", *day)), stats, analyzeDebug)

	printReport(stats)
}

func scan(logFile string, stats *LogStats, fn func(entry, *LogStats)) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var e entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		fn(e, stats)
	}
}

func analyzeError(e entry, stats *LogStats) {
	stats.TotalErrors++
	if strings.HasPrefix(e.Msg, "API ") {
		stats.APIFailures++
	}
	extractOrder(e.Msg, stats)
	stats.ErrorPatterns[errorPattern(e.Msg)]++
}

func analyzeInfo(e entry, stats *LogStats) {
	switch {
	case e.Msg == "request":
		stats.Requests++
		if e.Status >= 500 {
			stats.FailedRequests++
		}
		stats.SlowestRequests = append(stats.SlowestRequests, e)
	case selectionRe.MatchString(e.Msg):
		m := selectionRe.FindStringSubmatch(e.Msg)
		stats.OrderActivities[m[1]]++
		stats.Selections[m[2]]++
	case strings.Contains(e.Msg, " ready for order "):
		stats.ReadyViews++
	case strings.HasPrefix(e.Msg, "Credentials changed for checkout session"):
		stats.CredentialResets++
	}
}

func analyzeDebug(e entry, stats *LogStats) {
	switch {
	case strings.Contains(e.Msg, "dropped superseded generation"):
		stats.SupersededDrops++
	case strings.Contains(e.Msg, "discarded failure of superseded generation"):
		stats.DiscardedFailures++
	case strings.HasPrefix(e.Msg, "Evicting checkout session"):
		stats.Evictions++
	}
}

func extractOrder(msg string, stats *LogStats) {
	if m := orderRe.FindStringSubmatch(msg + " "); m != nil {
		stats.OrderActivities[m[1]]++
	}
}

// errorPattern folds ids and numbers out of a message so that repeats group together.
func errorPattern(msg string) string {
	if i := strings.Index(msg, ": "); i > 0 {
		msg = msg[:i]
	}
	msg = uuidRe.ReplaceAllString(msg, "<id>")
	return digitsRe.ReplaceAllString(msg, "N")
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Checkout Activity:")
	for method, count := range stats.Selections {
		fmt.Printf("   %s selections: %d\n", method, count)
	}
	fmt.Printf("   Payment views ready: %d\n", stats.ReadyViews)
	fmt.Printf("   Superseded generations dropped: %d\n", stats.SupersededDrops)
	fmt.Printf("   Stale failures discarded: %d\n", stats.DiscardedFailures)
	fmt.Printf("   Sessions reset on credential change: %d\n", stats.CredentialResets)
	fmt.Printf("   Sessions evicted: %d\n", stats.Evictions)

	fmt.Println("\n2. HTTP Requests:")
	fmt.Printf("   Total: %d\n", stats.Requests)
	fmt.Printf("   Server errors: %d\n", stats.FailedRequests)
	printSlowest(stats.SlowestRequests, 5)

	fmt.Println("\n3. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)
	fmt.Printf("   Marketplace API failures: %d\n", stats.APIFailures)

	fmt.Println("\n4. Most Active Orders:")
	printTop(stats.OrderActivities, 5, "events")

	fmt.Println("\n5. Most Common Errors:")
	printTop(stats.ErrorPatterns, 5, "occurrences")
}

func printSlowest(requests []entry, limit int) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].Duration > requests[j].Duration
	})
	for i, r := range requests {
		if i >= limit {
			break
		}
		fmt.Printf("   %s %s -> %d in %.3fs\n", r.Method, r.Path, r.Status, r.Duration)
	}
}

func printTop(counts map[string]int, limit int, unit string) {
	type keyCount struct {
		key   string
		count int
	}

	var list []keyCount
	for k, c := range counts {
		list = append(list, keyCount{k, c})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].count > list[j].count
	})

	for i, kc := range list {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d %s\n", kc.key, kc.count, unit)
	}
}
