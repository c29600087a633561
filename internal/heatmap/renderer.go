// Package heatmap renders 256x256 grayscale tiles whose per-pixel
// brightness encodes the shortest combined transit-plus-walking travel time
// to that point, given a reachability table computed elsewhere.
package heatmap

import (
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"transitheat.dev/reachability/internal/geo"
	"transitheat.dev/reachability/internal/transit"
)

const (
	// WalkingSpeed is the assumed walking pace in meters per second used to
	// convert the final leg's distance into a duration. 1.4 m/s is the
	// canonical figure; earlier drafts of this renderer used 1.0 m/s, a
	// debugging artifact that is not carried forward here.
	WalkingSpeed = 1.4

	// MaxWalk bounds how long a traveler is assumed willing to walk the
	// final leg.
	MaxWalk = 45 * time.Minute

	cellSize = 16
)

// RenderStats reports how long the two phases of a render took, surfaced to
// callers as response headers rather than printed.
type RenderStats struct {
	MaxTimeElapsed time.Duration
	DrawElapsed    time.Duration
	MaxTimeSeconds float64
}

// Render produces a 256x256 grayscale image for tile, given the set of
// stops reachable from some origin and their transit arrival durations.
// Rendering the same (tile, table) pair twice yields byte-identical images:
// the algorithm is a pure function of its inputs.
func Render(graph *transit.Graph, table transit.ReachabilityTable, tile geo.TileAddress) (*image.Gray, RenderStats, error) {
	img := image.NewGray(image.Rect(0, 0, geo.TileResolution, geo.TileResolution))

	maxTimeStart := time.Now()
	if len(table) == 0 {
		return img, RenderStats{MaxTimeElapsed: time.Since(maxTimeStart)}, nil
	}

	stops := make([]reachableStop, 0, len(table))
	var maxDuration time.Duration
	for stopID, duration := range table {
		idx, ok := graph.Lookup(stopID)
		if !ok {
			continue
		}
		stops = append(stops, reachableStop{coords: graph.Stop(idx).Coords, duration: duration})
		if duration > maxDuration {
			maxDuration = duration
		}
	}

	maxTime := maxDuration + MaxWalk
	maxTimeSeconds := maxTime.Seconds()
	maxTimeElapsed := time.Since(maxTimeStart)

	drawStart := time.Now()
	cache := NewStopCache(stops)
	drawTile(img, tile, stops, cache, maxTimeSeconds)
	drawElapsed := time.Since(drawStart)

	return img, RenderStats{
		MaxTimeElapsed: maxTimeElapsed,
		DrawElapsed:    drawElapsed,
		MaxTimeSeconds: maxTimeSeconds,
	}, nil
}

// drawTile fills img with brightness values, sharding the tile's cellSize x
// cellSize blocks across a worker pool the way the rest of this codebase
// shards embarrassingly parallel CPU-bound batch work.
func drawTile(img *image.Gray, tile geo.TileAddress, stops []reachableStop, cache *StopCache, maxTimeSeconds float64) {
	cellsPerSide := geo.TileResolution / cellSize
	totalCells := cellsPerSide * cellsPerSide

	type cellJob struct {
		cx, cy int
	}

	jobs := make(chan cellJob, totalCells)
	for cy := 0; cy < cellsPerSide; cy++ {
		for cx := 0; cx < cellsPerSide; cx++ {
			jobs <- cellJob{cx: cx, cy: cy}
		}
	}
	close(jobs)

	numWorkers := runtime.NumCPU()
	if numWorkers > totalCells {
		numWorkers = totalCells
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	searchRadius := WalkingSpeed * MaxWalk.Seconds()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				renderCell(img, tile, stops, cache, maxTimeSeconds, searchRadius, job.cx, job.cy)
			}
		}()
	}
	wg.Wait()
}

func renderCell(img *image.Gray, tile geo.TileAddress, stops []reachableStop, cache *StopCache, maxTimeSeconds, searchRadius float64, cx, cy int) {
	startX, startY := cx*cellSize, cy*cellSize
	centerCoords := tile.PixelCoordinates(startX+cellSize/2, startY+cellSize/2)

	candidates := cache.Within(centerCoords, searchRadius)
	if len(candidates) == 0 {
		candidates = stops
	}

	for py := startY; py < startY+cellSize; py++ {
		for px := startX; px < startX+cellSize; px++ {
			pc := tile.PixelCoordinates(px, py)
			best := bestTravelSeconds(pc, candidates)
			img.SetGray(px, py, toGray(best, maxTimeSeconds))
		}
	}
}

func bestTravelSeconds(point geo.Coordinates, candidates []reachableStop) float64 {
	best := -1.0
	for _, s := range candidates {
		walkSeconds := geo.Haversine(s.coords, point) / WalkingSpeed
		total := s.duration.Seconds() + walkSeconds
		if best < 0 || total < best {
			best = total
		}
	}
	return best
}

func toGray(bestSeconds, maxTimeSeconds float64) color.Gray {
	if bestSeconds < 0 || maxTimeSeconds <= 0 {
		return color.Gray{Y: 255}
	}
	value := bestSeconds * 255 / maxTimeSeconds
	if value < 0 {
		value = 0
	}
	if value > 255 {
		value = 255
	}
	return color.Gray{Y: uint8(value)}
}
