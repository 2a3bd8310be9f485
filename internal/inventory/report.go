package inventory

import "github.com/mvp-joe/api-inventory/internal/config"

// SchemaVersion identifies the report layout. Bump on any breaking change
// to field names or nesting.
const SchemaVersion = "1.0"

// Stats counts what one run saw. Field order is the serialization order.
type Stats struct {
	FilesScanned     int `yaml:"files_scanned"`
	FilesExcluded    int `yaml:"files_excluded"`
	FilesParsedOK    int `yaml:"files_parsed_ok"`
	FilesParseErrors int `yaml:"files_parse_errors"`
	Packages         int `yaml:"packages"`
	Modules          int `yaml:"modules"`
	Classes          int `yaml:"classes"`
	Methods          int `yaml:"methods"`
	Constants        int `yaml:"constants"`
	Enums            int `yaml:"enums"`
	Functions        int `yaml:"functions"`
}

// PackageMeta is the analyzed project's identity from its manifest; both
// fields stay null when no manifest was given or readable.
type PackageMeta struct {
	Name    *string `yaml:"name"`
	Version *string `yaml:"version"`
}

// Meta is the report header: schema identity, generation time, and the
// effective configuration echoed back for reproducibility.
type Meta struct {
	SchemaVersion   string         `yaml:"schema_version"`
	GeneratedAt     string         `yaml:"generated_at"`
	Package         PackageMeta    `yaml:"package"`
	Root            string         `yaml:"root"`
	ConfigEffective *config.Config `yaml:"config_effective"`
}

// Report is the complete inventory of one run.
type Report struct {
	Meta     Meta            `yaml:"meta"`
	Stats    Stats           `yaml:"stats"`
	Packages []PackageRecord `yaml:"packages"`
}
