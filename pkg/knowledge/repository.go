package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directories holds the content locations on disk.
type Directories struct {
	Combos   string
	Builds   string
	Guides   string
	Playbook string
}

// Repository is the read only store of the static coaching content.
// Everything is loaded into memory at startup, lookups never touch disk.
type Repository struct {
	combos   map[string]string
	builds   map[string]map[string]string
	guides   map[string]map[string]string
	playbook map[string]string
}

// Maps the normalized role to its playbook file index.
var roleIndexes = map[string]int{
	"top":     0,
	"jungle":  1,
	"mid":     2,
	"adc":     3,
	"support": 4,
}

// NewRepository loads all the content directories.
// Any missing directory is a startup failure, not a runtime one.
func NewRepository(dirs Directories) (*Repository, error) {
	for _, dir := range []string{dirs.Combos, dirs.Builds, dirs.Guides, dirs.Playbook} {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("content directory not found: %s", dir)
		}
	}

	combos, err := loadFlatFiles(dirs.Combos, ".xml")
	if err != nil {
		return nil, fmt.Errorf("couldn't load the combos: %w", err)
	}

	builds, err := loadNestedFiles(dirs.Builds, ".xml")
	if err != nil {
		return nil, fmt.Errorf("couldn't load the builds: %w", err)
	}

	guides, err := loadNestedFiles(dirs.Guides, ".xml")
	if err != nil {
		return nil, fmt.Errorf("couldn't load the guides: %w", err)
	}

	playbook, err := loadFlatFiles(dirs.Playbook, ".txt")
	if err != nil {
		return nil, fmt.Errorf("couldn't load the playbook: %w", err)
	}

	return &Repository{
		combos:   combos,
		builds:   builds,
		guides:   guides,
		playbook: playbook,
	}, nil
}

// loadFlatFiles maps each file stem (lowercase) to its content.
func loadFlatFiles(dir string, extension string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		stem := strings.TrimSuffix(entry.Name(), extension)
		files[strings.ToLower(stem)] = string(content)
	}

	return files, nil
}

// loadNestedFiles maps champion -> role -> content for per champion
// directories with files named like "aatrox-build-jungle.xml".
func loadNestedFiles(dir string, extension string) (map[string]map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	champions := make(map[string]map[string]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		champion := strings.ToLower(entry.Name())
		champions[champion] = make(map[string]string)

		files, err := os.ReadDir(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), extension) {
				continue
			}

			// The role is the last dash separated part of the stem.
			stem := strings.TrimSuffix(file.Name(), extension)
			parts := strings.Split(stem, "-")
			if len(parts) < 3 {
				continue
			}
			role := parts[len(parts)-1]

			content, err := os.ReadFile(filepath.Join(dir, entry.Name(), file.Name()))
			if err != nil {
				return nil, err
			}
			champions[champion][role] = string(content)
		}
	}

	return champions, nil
}

// ContentCounts reports how many entries each content family loaded.
type ContentCounts struct {
	Combos   int
	Builds   int
	Guides   int
	Playbook int
}

// Counts returns the loaded content sizes, used by the revalidation job.
func (r *Repository) Counts() ContentCounts {
	return ContentCounts{
		Combos:   len(r.combos),
		Builds:   len(r.builds),
		Guides:   len(r.guides),
		Playbook: len(r.playbook),
	}
}

// GetCombo returns the combo content of a champion, empty when unknown.
func (r *Repository) GetCombo(champion string) string {
	return r.combos[strings.ToLower(champion)]
}

// GetBuild returns the build content of a champion and role.
func (r *Repository) GetBuild(champion string, role string) string {
	return r.builds[strings.ToLower(champion)][strings.ToLower(role)]
}

// GetGuide returns the guide content of a champion and role.
func (r *Repository) GetGuide(champion string, role string) string {
	return r.guides[strings.ToLower(champion)][strings.ToLower(role)]
}

// GetRolePlaybook assembles the playbook for one role: the general advice,
// the role advice, the laning (or early clear for jungle) notes and the
// three game phases.
func (r *Repository) GetRolePlaybook(role string) string {
	roleLower := strings.ToLower(role)
	index, exists := roleIndexes[roleLower]
	if !exists {
		return ""
	}

	keys := []string{
		"0.0-general",
		fmt.Sprintf("1.%d-%s", index, roleLower),
	}

	if roleLower == "jungle" {
		keys = append(keys, fmt.Sprintf("2.%d.0-%s-early-clear", index, roleLower))
	} else {
		keys = append(keys, fmt.Sprintf("2.%d.0-%s-laning", index, roleLower))
	}

	for phaseIndex, phase := range []string{"early", "mid", "late"} {
		keys = append(keys, fmt.Sprintf("2.%d.%d-%s-%s-game", index, phaseIndex+1, roleLower, phase))
	}

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if content := r.playbook[key]; content != "" {
			parts = append(parts, content)
		}
	}

	return strings.Join(parts, "\n\n")
}

// GetFullPlaybook concatenates every playbook file in alphabetical order,
// used by the out of game knowledge mode.
func (r *Repository) GetFullPlaybook() string {
	keys := make([]string, 0, len(r.playbook))
	for key := range r.playbook {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if content := r.playbook[key]; content != "" {
			parts = append(parts, fmt.Sprintf("### %s\n%s", key, content))
		}
	}

	return strings.Join(parts, "\n\n")
}
