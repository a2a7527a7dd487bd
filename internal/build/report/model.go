package report

type (
	Model struct {
		Mode         string       `yaml:"mode"`
		Patches      Patches      `yaml:"patches"`
		Substitution Substitution `yaml:"substitution"`
		Hipify       Hipify       `yaml:"hipify"`
	}

	Patches struct {
		Applied []string `yaml:"applied"`
	}

	Substitution struct {
		FilesScanned  int `yaml:"files-scanned"`
		FilesModified int `yaml:"files-modified"`
		Replacements  int `yaml:"replacements"`
	}

	Hipify struct {
		ProjectDirectory string   `yaml:"project-directory"`
		OutputDirectory  string   `yaml:"output-directory"`
		Includes         []string `yaml:"includes"`
		Ignores          []string `yaml:"ignores"`
		JSONSettings     string   `yaml:"json-settings,omitempty"`
		AddStaticCasts   bool     `yaml:"add-static-casts"`
	}
)

const (
	ModeInPlace        = "in-place"
	ModeOutOfPlaceOnly = "out-of-place-only"
)
