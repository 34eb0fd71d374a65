package domain

import (
	"fmt"
	"strings"
)

// Platform is a per-server routing value, e.g. EUW1
type Platform string

// Region is the regional routing value shared by several platforms, e.g. europe
type Region string

const (
	RegionAmericas Region = "americas"
	RegionEurope   Region = "europe"
	RegionAsia     Region = "asia"
	RegionSEA      Region = "sea"
)

var platformsByRegion = map[Region][]Platform{
	RegionAmericas: {"BR1", "LA1", "LA2", "NA1"},
	RegionEurope:   {"EUN1", "EUW1", "TR1", "ME1", "RU"},
	RegionAsia:     {"KR", "JP1"},
	RegionSEA:      {"OC1", "SG2", "TW2", "VN2"},
}

// ParsePlatform accepts platform ids in any case
func ParsePlatform(raw string) (Platform, error) {
	candidate := Platform(strings.ToUpper(strings.TrimSpace(raw)))
	for _, platforms := range platformsByRegion {
		for _, platform := range platforms {
			if platform == candidate {
				return platform, nil
			}
		}
	}
	return "", fmt.Errorf("%w: unknown platform %q", ErrInvalidArgument, raw)
}

// Region returns the regional routing value for the platform
//
// Unknown platforms route to europe.
func (p Platform) Region() Region {
	for region, platforms := range platformsByRegion {
		for _, platform := range platforms {
			if platform == p {
				return region
			}
		}
	}
	return RegionEurope
}

func (p Platform) Host() string {
	return fmt.Sprintf("%s.api.riotgames.com", strings.ToLower(string(p)))
}

func (r Region) Host() string {
	return fmt.Sprintf("%s.api.riotgames.com", string(r))
}
