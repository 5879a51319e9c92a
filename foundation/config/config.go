package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

func GetProfile(profilePath string, profileID string) (Profile, error) {
	file, err := os.Open(profilePath)
	if err != nil {
		return Profile{}, err
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Profile{}, err
	}

	var config Config

	if err := json.Unmarshal(bytes, &config); err != nil {
		return Profile{}, err
	}

	profile, exists := profileExists(config.Profiles, profileID)
	if !exists {
		return Profile{}, fmt.Errorf("profile[%s] does not exist", profileID)
	}

	return profile, nil
}

func profileExists(profiles []Profile, profileID string) (Profile, bool) {
	for _, profile := range profiles {
		if profile.ID == profileID {
			return profile, true
		}
	}
	return Profile{}, false
}
