package match

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Platform is the region code a game was played on. Game ids are only unique
// within one platform.
type Platform string

const (
	PlatformBR1  Platform = "BR1"
	PlatformEUN1 Platform = "EUN1"
	PlatformEUW1 Platform = "EUW1"
	PlatformJP1  Platform = "JP1"
	PlatformKR   Platform = "KR"
	PlatformLA1  Platform = "LA1"
	PlatformLA2  Platform = "LA2"
	PlatformNA1  Platform = "NA1"
	PlatformOC1  Platform = "OC1"
	PlatformRU   Platform = "RU"
	PlatformTR1  Platform = "TR1"
)

var AllPlatforms = map[Platform]struct{}{
	PlatformBR1:  {},
	PlatformEUN1: {},
	PlatformEUW1: {},
	PlatformJP1:  {},
	PlatformKR:   {},
	PlatformLA1:  {},
	PlatformLA2:  {},
	PlatformNA1:  {},
	PlatformOC1:  {},
	PlatformRU:   {},
	PlatformTR1:  {},
}

func (p Platform) Valid() bool {
	_, ok := AllPlatforms[p]
	return ok
}

func (p Platform) String() string {
	return string(p)
}

// ParsePlatform accepts any casing, e.g. "euw1".
func ParsePlatform(raw string) (Platform, error) {
	platform := Platform(strings.ToUpper(strings.TrimSpace(raw)))
	if !platform.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, raw)
	}
	return platform, nil
}
