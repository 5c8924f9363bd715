package handlers

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"futarinavi/internal/config"
	"futarinavi/internal/logger"
)

// counterData is the on-disk shape of the usage counter.
type counterData struct {
	Timelines   int64 `json:"timelines"`
	Simulations int64 `json:"simulations"`
}

var (
	counterMu     sync.Mutex
	counter       counterData
	pendingWrites int
	counterOnce   sync.Once
)

const flushEveryN = 10
const flushInterval = 30 * time.Second

// InitCounter loads the counter from COUNTER_PATH and starts the periodic flush.
func InitCounter() {
	counterMu.Lock()
	defer counterMu.Unlock()

	path := config.Cfg.CounterPath
	data, err := os.ReadFile(path)
	switch {
	case err != nil:
		counter = counterData{}
		logger.Info("counter: no file, starting from zero", map[string]interface{}{"path": path})
	case json.Unmarshal(data, &counter) != nil:
		counter = counterData{}
		logger.Warn("counter: unreadable file, starting from zero", map[string]interface{}{"path": path})
	default:
		logger.Info("counter: loaded", map[string]interface{}{
			"timelines": counter.Timelines, "simulations": counter.Simulations,
		})
	}

	counterOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(flushInterval)
			defer ticker.Stop()
			for range ticker.C {
				FlushCounter()
			}
		}()
	})
}

func incrementTimelines() int64 {
	return increment(func(c *counterData) int64 { c.Timelines++; return c.Timelines })
}

func incrementSimulations() int64 {
	return increment(func(c *counterData) int64 { c.Simulations++; return c.Simulations })
}

func increment(f func(*counterData) int64) int64 {
	counterMu.Lock()
	val := f(&counter)
	pendingWrites++
	shouldFlush := pendingWrites >= flushEveryN
	counterMu.Unlock()

	if shouldFlush {
		FlushCounter()
	}
	return val
}

func getCounter() counterData {
	counterMu.Lock()
	defer counterMu.Unlock()
	return counter
}

// FlushCounter writes pending increments to disk. Called on shutdown too.
func FlushCounter() {
	counterMu.Lock()
	if pendingWrites == 0 {
		counterMu.Unlock()
		return
	}
	snapshot := counter
	pendingWrites = 0
	counterMu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("counter: marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := os.WriteFile(config.Cfg.CounterPath, data, 0644); err != nil {
		logger.Error("counter: write failed", map[string]interface{}{"error": err.Error()})
	}
}
