package media

import (
	"fmt"

	"townkeeper/internal/catalog"
)

// Filenames are derived from the catalog key, with overrides for the few
// assets whose files don't follow the pattern.
var iconOverrides = map[string]string{
	"pekka":           "p.e.k.k.a.png",
	"xbow":            "x-bow.png",
	"grandwarden":     "grand-warden.png",
	"royalchampion":   "royal-champion.png",
	"barbarianking":   "barbarian-king.png",
	"archerqueen":     "archer-queen.png",
	"wallwrecker":     "wall-wrecker.png",
	"battleblimp":     "battle-blimp.png",
	"stoneslammer":    "stone-slammer.png",
	"siegebarracks":   "siege-barracks.png",
	"loglauncher":     "log-launcher.png",
	"electrodragon":   "electro-dragon.png",
	"infernodragon":   "inferno-dragon.png",
	"icehound":        "ice-hound.png",
	"superwallbreaker": "super-wall-breaker.png",
}

// EntityImageFilename maps an entity name to its artwork file under the
// category's folder in the bucket.
func (s *Service) EntityImageFilename(category catalog.Category, name string) (string, bool) {
	key := catalog.NormalizeKey(name)
	if key == "" {
		return "", false
	}
	if override, ok := iconOverrides[key]; ok {
		return fmt.Sprintf("%s/%s", category, override), true
	}
	return fmt.Sprintf("%s/%s.png", category, key), true
}
