package navigation

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// heightmapMetadata is the JSON sidecar format (version 1) paired with a
// little-endian f32 binary grid, matching the terrain exporter's output.
type heightmapMetadata struct {
	Version     int     `json:"version"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	WorldMinX   float32 `json:"world_min_x"`
	WorldMaxX   float32 `json:"world_max_x"`
	WorldMinZ   float32 `json:"world_min_z"`
	WorldMaxZ   float32 `json:"world_max_z"`
	TerrainSize float32 `json:"terrain_size"`
}

// Heightmap samples terrain height with bilinear interpolation.
type Heightmap struct {
	width, height        int
	minX, maxX, minZ, maxZ float32
	heights              []float32
}

// LoadHeightmap loads metadata from jsonPath and the paired binary grid
// from the same path with a ".bin" extension.
func LoadHeightmap(jsonPath string) (*Heightmap, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("reading heightmap metadata %s: %w", jsonPath, err)
	}
	var meta heightmapMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parsing heightmap metadata %s: %w", jsonPath, err)
	}
	if meta.Version != 1 {
		return nil, fmt.Errorf("unsupported heightmap version %d", meta.Version)
	}

	binPath := jsonPath[:len(jsonPath)-len(filepath.Ext(jsonPath))] + ".bin"
	grid, err := os.ReadFile(binPath)
	if err != nil {
		return nil, fmt.Errorf("reading heightmap grid %s: %w", binPath, err)
	}
	expected := meta.Width * meta.Height * 4
	if len(grid) != expected {
		return nil, fmt.Errorf("heightmap grid size mismatch: expected %d bytes, got %d", expected, len(grid))
	}

	heights := make([]float32, meta.Width*meta.Height)
	for i := range heights {
		bits := binary.LittleEndian.Uint32(grid[i*4:])
		heights[i] = math.Float32frombits(bits)
	}

	return &Heightmap{
		width: meta.Width, height: meta.Height,
		minX: meta.WorldMinX, maxX: meta.WorldMaxX,
		minZ: meta.WorldMinZ, maxZ: meta.WorldMaxZ,
		heights: heights,
	}, nil
}

// GetHeight samples terrain height at world (x, z) with bilinear
// interpolation. Out-of-bounds queries clamp to the heightmap border.
func (h *Heightmap) GetHeight(x, z float32) float32 {
	normX := clamp01((x - h.minX) / (h.maxX - h.minX))
	normZ := clamp01((z - h.minZ) / (h.maxZ - h.minZ))

	px := normX * float32(h.width-1)
	pz := normZ * float32(h.height-1)

	x0 := int(math.Floor(float64(px)))
	z0 := int(math.Floor(float64(pz)))
	x1 := min(x0+1, h.width-1)
	z1 := min(z0+1, h.height-1)
	fx := px - float32(x0)
	fz := pz - float32(z0)

	h00 := h.at(x0, z0)
	h10 := h.at(x1, z0)
	h01 := h.at(x0, z1)
	h11 := h.at(x1, z1)

	r0 := h00*(1-fx) + h10*fx
	r1 := h01*(1-fx) + h11*fx
	return r0*(1-fz) + r1*fz
}

func (h *Heightmap) at(x, z int) float32 {
	idx := z*h.width + x
	if idx < 0 || idx >= len(h.heights) {
		return 0
	}
	return h.heights[idx]
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// VillagePlateauHeight is the fallback terrain height used when a zone
// has no loaded heightmap.
const VillagePlateauHeight float32 = 1.0
