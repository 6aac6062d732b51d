package store

import (
	"fmt"
	"time"

	"github.com/five82/stateful/internal/catalog"
)

var (
	adjectives = []string{"amber", "brisk", "quiet", "lucid", "rustic", "velvet", "hollow", "bright"}
	nouns      = []string{"harbor", "meadow", "signal", "lantern", "orchard", "circuit", "canyon", "atlas"}
)

// Generate returns the i-th (zero-based) generated catalog item. Items are
// spaced one minute apart, newest last.
func Generate(i int, now time.Time) catalog.Item {
	adj := adjectives[i%len(adjectives)]
	noun := nouns[(i/len(adjectives))%len(nouns)]
	return catalog.Item{
		Title:     fmt.Sprintf("%s %s #%03d", adj, noun, i+1),
		Summary:   fmt.Sprintf("Generated entry %d of the demo catalog", i+1),
		CreatedAt: catalog.FormatTime(now.Add(time.Duration(i) * time.Minute)),
	}
}
