package models

import "time"

// Keyframe is one persisted (time, image) pair of a clip's track.
type Keyframe struct {
	Time  float64 `yaml:"time"`
	Image string  `yaml:"image,omitempty"`
}

// KeyframeTrack is the persisted form of an animation: ordered keyframes
// plus the track-wide sample rate and loop flag. The duration of the last
// frame is encoded by a terminal key repeating the last image.
type KeyframeTrack struct {
	SampleRate int        `yaml:"sample_rate"`
	Loop       bool       `yaml:"loop"`
	Keys       []Keyframe `yaml:"keys"`
}

// Clip is a named animation stored as a YAML file in the project.
type Clip struct {
	Name     string        `yaml:"name"`
	Path     string        `yaml:"-"`
	Track    KeyframeTrack `yaml:"track"`
	Modified time.Time     `yaml:"-"`
}
