package manifest

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Validate checks the manifest for errors and reports all of them at once.
func (m *Manifest) Validate() error {
	errs := &ErrorList{}

	if strings.TrimSpace(m.App.Repo) == "" {
		errs.Add("app.repo", "is required", "set the git URL of the shell repository")
	}
	if strings.TrimSpace(m.App.Path) == "" {
		errs.Add("app.path", "is required", "set where the shell is checked out, e.g. ~/.config/Ax-Shell")
	}
	if m.App.Depth < 0 {
		errs.Add("app.depth", "must not be negative", "use 1 for a shallow clone")
	}

	seen := make(map[string]bool, len(m.Tools))
	for i, t := range m.Tools {
		field := fmt.Sprintf("tools[%d]", i)
		if t.Name == "" {
			errs.Add(field+".name", "is required", "")
		} else if seen[t.Name] {
			errs.Add(field+".name", fmt.Sprintf("duplicate tool %q", t.Name), "tool names must be unique")
		}
		seen[t.Name] = true

		if t.Repo == "" {
			errs.Add(field+".repo", "is required", "")
		}
		if !t.Build.Valid() {
			errs.Add(field+".build", fmt.Sprintf("unknown build kind %q", t.Build), "use one of: "+joinKinds())
		}
		if t.Artifact == "" {
			errs.Add(field+".artifact", "is required", "name the installed binary or its absolute path")
		}
		if t.Depth < 0 {
			errs.Add(field+".depth", "must not be negative", "")
		}
	}

	for i, f := range m.Fonts {
		field := fmt.Sprintf("fonts[%d]", i)
		if f.Name == "" {
			errs.Add(field+".name", "is required", "")
		}
		if (f.URL == "") == (f.Source == "") {
			errs.Add(field, "exactly one of url or source is required", "")
		}
		if f.Target == "" {
			errs.Add(field+".target", "is required", "e.g. ~/.fonts/zed-sans")
		}
	}

	for i, s := range m.Services {
		if strings.TrimSpace(s.Name) == "" {
			errs.Add(fmt.Sprintf("services[%d].name", i), "is required", "")
		}
	}

	for i, r := range m.Rc {
		if strings.TrimSpace(r.Line) == "" {
			errs.Add(fmt.Sprintf("rc[%d].line", i), "is required", "")
		}
		if strings.Contains(r.Line, "\n") {
			errs.Add(fmt.Sprintf("rc[%d].line", i), "must be a single line", "add one rc entry per line")
		}
	}

	for i, b := range m.Verify.Binaries {
		field := fmt.Sprintf("verify.binaries[%d]", i)
		if b.Name == "" {
			errs.Add(field+".name", "is required", "")
		}
		if b.MinVersion != "" && !semver.IsValid(NormalizeVersion(b.MinVersion)) {
			errs.Add(field+".min_version", fmt.Sprintf("invalid version %q", b.MinVersion), "use a semantic version such as 0.10.1")
		}
	}

	if !m.Launch.Disabled && len(m.Launch.Command) == 0 {
		errs.Add("launch.command", "is required unless launch.disabled is set", "")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NormalizeVersion ensures a version has the "v" prefix semver expects.
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

func joinKinds() string {
	names := make([]string, len(BuildKinds))
	for i, k := range BuildKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
