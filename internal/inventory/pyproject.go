package inventory

import (
	"os"

	"github.com/BurntSushi/toml"
)

type projectManifest struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ReadProjectMeta looks up the analyzed project's name and version from a
// pyproject.toml. A PEP 621 [project] table wins over [tool.poetry]; a
// missing file, a parse failure, or an absent key all yield nils. Never
// fatal: the report simply carries null metadata.
func ReadProjectMeta(path string) (name, version *string) {
	if path == "" {
		return nil, nil
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return nil, nil
	}

	var m projectManifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, nil
	}

	if md.IsDefined("project") {
		if md.IsDefined("project", "name") {
			name = &m.Project.Name
		}
		if md.IsDefined("project", "version") {
			version = &m.Project.Version
		}
		return name, version
	}

	if md.IsDefined("tool", "poetry") {
		if md.IsDefined("tool", "poetry", "name") {
			name = &m.Tool.Poetry.Name
		}
		if md.IsDefined("tool", "poetry", "version") {
			version = &m.Tool.Poetry.Version
		}
	}
	return name, version
}
