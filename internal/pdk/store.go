package pdk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// The on-disk store keeps every installed version of a family under
// <root>/pdkman/<family>/versions/<name>, with <root>/pdkman/<family>/current
// symlinked to the enabled one.
const storeDirName = "pdkman"

// StoreDir returns the pdkman store directory under a PDK root.
func StoreDir(root string) string {
	return filepath.Join(root, storeDirName)
}

// FamilyDir returns the store directory for one PDK family.
func FamilyDir(root, family string) string {
	return filepath.Join(StoreDir(root), family)
}

// Dir returns the install directory of this version under a PDK root.
func (v Version) Dir(root string) string {
	return filepath.Join(FamilyDir(root, v.Family), "versions", v.Name)
}

// Installed reports whether this version's directory exists under root.
func (v Version) Installed(root string) bool {
	info, err := os.Stat(v.Dir(root))
	return err == nil && info.IsDir()
}

// InstalledVersions lists the versions of family present under root, sorted
// by name. Only directory names are known locally; upload dates live on the
// remote feed.
func InstalledVersions(root, family string) ([]Version, error) {
	entries, err := os.ReadDir(filepath.Join(FamilyDir(root, family), "versions"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version store: %w", err)
	}

	var versions []Version
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		versions = append(versions, Version{Name: entry.Name(), Family: family})
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Name < versions[j].Name
	})
	return versions, nil
}

func currentLink(root, family string) string {
	return filepath.Join(FamilyDir(root, family), "current")
}

// Current returns the enabled version of family under root, or nil if no
// version is enabled.
func Current(root, family string) (*Version, error) {
	target, err := os.Readlink(currentLink(root, family))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading current link: %w", err)
	}
	return &Version{Name: filepath.Base(target), Family: family}, nil
}

// IsCurrent reports whether this version is the enabled one under root.
func (v Version) IsCurrent(root string) bool {
	current, err := Current(root, v.Family)
	return err == nil && current != nil && current.Name == v.Name
}

// SetCurrent points the family's current link at this version. The switch is
// atomic: the new link is created next to the old one and renamed over it.
func (v Version) SetCurrent(root string) error {
	if !v.Installed(root) {
		return fmt.Errorf("version %s is not installed", v)
	}

	link := currentLink(root, v.Family)
	tmp := link + ".tmp"
	os.Remove(tmp)
	if err := os.Symlink(v.Dir(root), tmp); err != nil {
		return fmt.Errorf("creating current link: %w", err)
	}
	if err := os.Rename(tmp, link); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("switching current link: %w", err)
	}
	return nil
}

// Uninstall removes this version's directory. Uninstalling the enabled
// version also removes the now-dangling current link.
func (v Version) Uninstall(root string) error {
	if !v.Installed(root) {
		return fmt.Errorf("version %s is not installed", v)
	}
	wasCurrent := v.IsCurrent(root)
	if err := os.RemoveAll(v.Dir(root)); err != nil {
		return fmt.Errorf("removing %s: %w", v, err)
	}
	if wasCurrent {
		os.Remove(currentLink(root, v.Family))
	}
	return nil
}
