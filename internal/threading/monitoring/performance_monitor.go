package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Alert thresholds
const (
	lowFPSThreshold     = 30.0
	highMemoryThreshold = 500.0 // MB
)

// PerformanceMonitor tracks frame and raycast timing
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame

	// Rendering metrics
	raycastTime   atomic.Uint64 // nanoseconds, last frame's casts
	composeTime   atomic.Uint64 // nanoseconds, last frame's compositing
	columnsCast   atomic.Uint64
	raycastFrames atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	totalFrameTime float64 // nanoseconds
	totalRaycast   float64 // nanoseconds
	startTime      time.Time

	// Configuration
	enableDetailed bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.RecordFrame(time.Since(ft.startTime))
}

// RecordFrame stores the duration of one frame
func (pm *PerformanceMonitor) RecordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	pm.frameCount.Add(1)

	pm.mutex.Lock()
	if pm.enableDetailed {
		pm.totalFrameTime += float64(d.Nanoseconds())
	}
	pm.mutex.Unlock()
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
	columns   int
}

// StartRaycast begins timing a frame that casts the given number of columns
func (pm *PerformanceMonitor) StartRaycast(columns int) *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
		columns:   columns,
	}
}

// EndRaycast completes raycast timing
func (rt *RaycastTimer) EndRaycast() {
	raycastTime := time.Since(rt.startTime)
	rt.monitor.raycastTime.Store(uint64(raycastTime.Nanoseconds()))
	rt.monitor.columnsCast.Add(uint64(rt.columns))
	rt.monitor.raycastFrames.Add(1)

	rt.monitor.mutex.Lock()
	if rt.monitor.enableDetailed {
		rt.monitor.totalRaycast += float64(raycastTime.Nanoseconds())
	}
	rt.monitor.mutex.Unlock()
}

// Metrics is a snapshot of the renderer's timing
type Metrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	ComposeTime     time.Duration
	ColumnsCast     uint64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	frameTime := pm.frameTime.Load()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Metrics{
		FramesPerSecond: fpsFromNanos(frameTime),
		FrameTime:       time.Duration(frameTime),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		ComposeTime:     time.Duration(pm.composeTime.Load()),
		ColumnsCast:     pm.columnsCast.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	frames := pm.frameCount.Load()
	raycastFrames := pm.raycastFrames.Load()
	avgFrameMs, avgRaycastMs := 0.0, 0.0
	if frames > 0 {
		avgFrameMs = pm.totalFrameTime / float64(frames) / 1e6
	}
	if raycastFrames > 0 {
		avgRaycastMs = pm.totalRaycast / float64(raycastFrames) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds":       time.Since(pm.startTime).Seconds(),
		"frame_count":          frames,
		"avg_frame_time_ms":    avgFrameMs,
		"avg_raycast_time_ms":  avgRaycastMs,
		"last_frame_time_ms":   float64(pm.frameTime.Load()) / 1e6,
		"last_raycast_time_ms": float64(pm.raycastTime.Load()) / 1e6,
		"last_compose_time_ms": float64(pm.composeTime.Load()) / 1e6,
		"current_fps":          fpsFromNanos(pm.frameTime.Load()),
		"columns_cast":         pm.columnsCast.Load(),
		"memory_alloc_mb":      memStats.Alloc / 1024 / 1024,
		"memory_sys_mb":        memStats.Sys / 1024 / 1024,
		"gc_cycles":            memStats.NumGC,
		"cpu_cores":            runtime.NumCPU(),
		"goroutines":           runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		if fps := fpsFromNanos(frameTime); fps < lowFPSThreshold {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: lowFPSThreshold,
				Timestamp: currentTime,
			})
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	if memoryMB := float64(memStats.Alloc) / 1024 / 1024; memoryMB > highMemoryThreshold {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: highMemoryThreshold,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.composeTime.Store(0)
	pm.columnsCast.Store(0)
	pm.raycastFrames.Store(0)

	pm.mutex.Lock()
	pm.totalFrameTime = 0
	pm.totalRaycast = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	// Store timing based on function name
	switch name {
	case "raycast":
		pm.raycastTime.Store(uint64(duration.Nanoseconds()))
	case "compose":
		pm.composeTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}

func fpsFromNanos(nanos uint64) float64 {
	if nanos == 0 {
		return 0
	}
	return 1e9 / float64(nanos)
}
