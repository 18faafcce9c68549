package config

// forgeFile is the YAML shape of forge.yaml. Durations use Go duration
// syntax ("5s", "100ms"). Omitted fields fall back to engine defaults.
type forgeFile struct {
	// Transport holds the coordination transport settings.
	Transport transportSection `yaml:"transport"`

	// Journal holds change-journal settings.
	Journal journalSection `yaml:"journal"`

	// Recovery holds startup recovery settings.
	Recovery recoverySection `yaml:"recovery"`
}

type transportSection struct {
	URL         string       `yaml:"url"`
	CallTimeout string       `yaml:"callTimeout"`
	Retry       retrySection `yaml:"retry"`
}

type retrySection struct {
	Mode       string `yaml:"mode"`
	Initial    string `yaml:"initial"`
	Max        string `yaml:"max"`
	MaxRetries *int   `yaml:"maxRetries"`
}

type journalSection struct {
	// ProjectedDirs lists virtualized directory roots whose change implies
	// the projection layer itself changed.
	ProjectedDirs []string `yaml:"projectedDirs"`

	// TreatDirChangesAsUnknown opts into the conservative fallback for
	// membership-only change sets.
	TreatDirChangesAsUnknown bool `yaml:"treatDirChangesAsUnknown"`
}

type recoverySection struct {
	ContinueOnFailure bool `yaml:"continueOnFailure"`
}
