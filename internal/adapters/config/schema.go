package config

// TableFile represents the structure of a packsweep.yaml pack table.
type TableFile struct {
	Version string     `yaml:"version"`
	Packs   []*PackDTO `yaml:"packs"`
}

// PackDTO represents one pack definition in the table.
type PackDTO struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
	// Released is the release date in YYYY-MM-DD form. It is the only
	// source of release order; file timestamps are never consulted.
	Released string `yaml:"released"`
	// Path is the pack's archive directory, relative to the installation
	// root. Forward slashes regardless of platform.
	Path string `yaml:"path"`
}
