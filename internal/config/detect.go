package config

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
)

// DetectProjectName infers the name of the repository rooted at dir from its
// manifest: go.mod, Cargo.toml, package.json or pyproject.toml, first match
// wins. It falls back to the directory name. Manifest errors are ignored.
func DetectProjectName(dir string) string {
	for _, detect := range []func(string) string{
		detectFromGoMod,
		detectFromCargo,
		detectFromPackageJSON,
		detectFromPyproject,
	} {
		if name := detect(dir); name != "" {
			return name
		}
	}
	return filepath.Base(dir)
}

// detectFromGoMod returns the last element of the module path.
func detectFromGoMod(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	mod := modfile.ModulePath(data)
	if mod == "" {
		return ""
	}
	return path.Base(mod)
}

type cargoTOML struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

func detectFromCargo(dir string) string {
	var c cargoTOML
	if _, err := toml.DecodeFile(filepath.Join(dir, "Cargo.toml"), &c); err != nil {
		return ""
	}
	return c.Package.Name
}

type packageJSON struct {
	Name string `json:"name"`
}

func detectFromPackageJSON(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var p packageJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return ""
	}
	return p.Name
}

type pyprojectTOML struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
}

func detectFromPyproject(dir string) string {
	var p pyprojectTOML
	if _, err := toml.DecodeFile(filepath.Join(dir, "pyproject.toml"), &p); err != nil {
		return ""
	}
	return p.Project.Name
}
