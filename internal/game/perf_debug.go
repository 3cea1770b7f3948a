package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsThreshold = 50.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

func (gl *GameLoop) maybeLogPerfDrop() {
	if !gl.game.perfDebugEnabled {
		return
	}

	fps := ebiten.ActualFPS()
	if fps >= perfLowFpsThreshold {
		gl.game.perfLowFpsSince = time.Time{}
		gl.game.perfLastPerfLog = time.Time{}
		return
	}

	now := time.Now()
	if gl.game.perfLowFpsSince.IsZero() {
		gl.game.perfLowFpsSince = now
		return
	}

	if now.Sub(gl.game.perfLowFpsSince) < perfLowFpsDuration {
		return
	}

	if !gl.game.perfLastPerfLog.IsZero() && now.Sub(gl.game.perfLastPerfLog) < perfLogInterval {
		return
	}

	gl.game.perfLastPerfLog = now
	gl.logPerfSnapshot(fps)
}

func (gl *GameLoop) logPerfSnapshot(fps float64) {
	stats := gl.game.threading.GetDetailedPerformanceStats()
	metrics := gl.game.threading.GetPerformanceMetrics()
	state := gl.game.session.State()
	grid := gl.game.session.Grid()

	fmt.Printf(
		"[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f\n",
		perfLowFpsThreshold,
		perfLowFpsDuration,
		fps,
		ebiten.ActualTPS(),
	)
	workers := 0
	if pr := gl.game.threading.ParallelRenderer; pr != nil {
		workers = pr.NumWorkers()
	}
	fmt.Printf(
		"[PERF] grid=%dx%d columns=%d stride=%d workers=%d pos=(%.2f, %.2f) facing=%s\n",
		grid.Width,
		grid.Height,
		gl.game.caster.Columns(),
		gl.game.caster.Stride(),
		workers,
		state.Position.X,
		state.Position.Y,
		gl.game.facingTileName(),
	)
	fmt.Printf(
		"[PERF] update=%.2fms draw=%.2fms budget=%.2fms idle=%.2fms avg_frame=%.2fms raycast=%.2fms compose=%.2fms goroutines=%d vsync=%v target_tps=%d\n",
		float64(gl.lastUpdateDuration.Microseconds())/1000.0,
		float64(gl.lastDrawDuration.Microseconds())/1000.0,
		frameBudgetMs(fps),
		idleBudgetMs(fps, gl.lastUpdateDuration, gl.lastDrawDuration),
		getPerfFloat(stats, "avg_frame_time_ms"),
		float64(metrics.RaycastTime.Microseconds())/1000.0,
		float64(metrics.ComposeTime.Microseconds())/1000.0,
		getPerfInt(stats, "goroutines"),
		ebiten.IsVsyncEnabled(),
		gl.game.config.Display.TPS,
	)
	fmt.Printf(
		"[PERF] columns_cast=%d mem_alloc=%dMB mem_sys=%dMB gc_cycles=%d\n",
		metrics.ColumnsCast,
		metrics.MemoryUsageMB,
		getPerfUint(stats, "memory_sys_mb"),
		getPerfUint(stats, "gc_cycles"),
	)
	for _, alert := range gl.game.threading.CheckPerformanceAlerts() {
		fmt.Printf("[PERF] alert %s: %s (%.1f, threshold %.1f)\n", alert.Type, alert.Message, alert.Value, alert.Threshold)
	}
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	switch v := stats[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	default:
		return 0
	}
}

func getPerfInt(stats map[string]interface{}, key string) int {
	switch v := stats[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return 0
	}
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	switch v := stats[key].(type) {
	case uint64:
		return v
	case uint32:
		return uint64(v)
	default:
		return 0
	}
}
