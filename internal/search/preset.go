package search

import (
	"fmt"

	"github.com/park285/chesscore/internal/domain"
)

// Preset ties a difficulty to its search depth in plies.
type Preset struct {
	Name  string
	Depth int
}

var defaultPresets = map[domain.Difficulty]Preset{
	domain.Easy:   {Name: "easy", Depth: 1},
	domain.Medium: {Name: "medium", Depth: 2},
	domain.Hard:   {Name: "hard", Depth: 3},
}

func GetPreset(d domain.Difficulty) (Preset, error) {
	p, ok := defaultPresets[d]
	if !ok {
		return Preset{}, fmt.Errorf("unknown difficulty %d", int(d))
	}
	return p, nil
}

// DepthFor falls back to the medium depth for unknown difficulties.
func DepthFor(d domain.Difficulty) int {
	if p, err := GetPreset(d); err == nil {
		return p.Depth
	}
	return defaultPresets[domain.Medium].Depth
}
