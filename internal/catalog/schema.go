package catalog

// catalogFile is the top-level structure of one embedded catalog table.
type catalogFile struct {
	Objects []objectEntry `yaml:"objects"`
}

// objectEntry is one raw catalog row before mapping and validation.
type objectEntry struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	RA          *float64 `yaml:"ra"`
	Dec         *float64 `yaml:"dec"`
	Magnitude   *float64 `yaml:"magnitude,omitempty"`
	Size        string   `yaml:"size,omitempty"`
	CommonNames string   `yaml:"common_names,omitempty"`
	Alternates  []string `yaml:"alternates,omitempty"`
}
