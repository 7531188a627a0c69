package models

// Settings represents the application configuration
type Settings struct {
	Defaults DefaultFrameSettings `yaml:"defaults"`
	UI       UISettings           `yaml:"ui"`
	Playback PlaybackSettings     `yaml:"playback"`
	Export   ExportSettings       `yaml:"export"`
}

// DefaultFrameSettings is used only when inserting into an empty clip:
// the first frame gets this length, and the clip's sample rate is derived
// from samples/length.
type DefaultFrameSettings struct {
	FrameLength  float64 `yaml:"frame_length"`  // seconds
	FrameSamples int     `yaml:"frame_samples"` // samples in a default frame
}

// UISettings controls UI preferences
type UISettings struct {
	ShowAssets   bool `yaml:"show_assets"`
	ShowPreview  bool `yaml:"show_preview"`
	RulerLabels  bool `yaml:"ruler_labels"`
	PreviewWidth int  `yaml:"preview_width"` // terminal columns reserved for the sprite preview
}

// PlaybackSettings controls the initial playback state of the editor
type PlaybackSettings struct {
	Speed float64 `yaml:"speed"`
	Loop  bool    `yaml:"loop"`
}

// ExportSettings controls the export command's defaults
type ExportSettings struct {
	Format     string `yaml:"format"` // "gif" or "sheet"
	ExportPath string `yaml:"export_path"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Defaults: DefaultFrameSettings{
			FrameLength:  0.25,
			FrameSamples: 6,
		},
		UI: UISettings{
			ShowAssets:   true,
			ShowPreview:  true,
			RulerLabels:  true,
			PreviewWidth: 32,
		},
		Playback: PlaybackSettings{
			Speed: 1.0,
			Loop:  true,
		},
		Export: ExportSettings{
			Format:     "gif",
			ExportPath: "./",
		},
	}
}
