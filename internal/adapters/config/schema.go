package config

// File represents the structure of the pacdb.yaml configuration file.
type File struct {
	Root     string   `yaml:"root"`
	DBPath   string   `yaml:"dbpath"`
	SigLevel []string `yaml:"siglevel"`
}
