package riot

import "github.com/riskibarqy/lol-companion/internal/domain/match"

// Regional routing values for match-v5. Match data is served per region,
// not per platform.
const (
	RegionAmericas = "americas"
	RegionEurope   = "europe"
	RegionAsia     = "asia"
	RegionSEA      = "sea"
)

var platformRegions = map[match.Platform]string{
	match.PlatformBR1:  RegionAmericas,
	match.PlatformLA1:  RegionAmericas,
	match.PlatformLA2:  RegionAmericas,
	match.PlatformNA1:  RegionAmericas,
	match.PlatformEUN1: RegionEurope,
	match.PlatformEUW1: RegionEurope,
	match.PlatformRU:   RegionEurope,
	match.PlatformTR1:  RegionEurope,
	match.PlatformJP1:  RegionAsia,
	match.PlatformKR:   RegionAsia,
	match.PlatformOC1:  RegionSEA,
}

// RegionFor returns the routing region serving platform.
func RegionFor(platform match.Platform) (string, bool) {
	region, ok := platformRegions[platform]
	return region, ok
}
