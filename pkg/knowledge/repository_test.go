package knowledge

import (
	"path/filepath"
	"strings"
	"testing"

	"gocoach/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Build a content tree on disk for the repository to load.
func setupContentDirs(t *testing.T) Directories {
	t.Helper()
	root := t.TempDir()

	dirs := Directories{
		Combos:   filepath.Join(root, "champion-combos"),
		Builds:   filepath.Join(root, "champion-builds"),
		Guides:   filepath.Join(root, "champion-guide"),
		Playbook: filepath.Join(root, "playbook"),
	}

	testutil.WriteFiles(t, root, map[string]string{
		"champion-combos/Aatrox.xml":                     "<combos>aatrox</combos>",
		"champion-combos/readme.md":                      "not a combo",
		"champion-builds/aatrox/aatrox-build-jungle.xml": "<build>jungle</build>",
		"champion-builds/aatrox/aatrox-build-top.xml":    "<build>top</build>",
		"champion-guide/aatrox/aatrox-guide-top.xml":     "<guide>top</guide>",
		"playbook/0.0-general.txt":                       "general advice",
		"playbook/1.1-jungle.txt":                        "jungle advice",
		"playbook/2.1.0-jungle-early-clear.txt":          "clear route",
		"playbook/2.1.1-jungle-early-game.txt":           "early plan",
		"playbook/1.2-mid.txt":                           "mid advice",
		"playbook/2.2.0-mid-laning.txt":                  "mid laning",
	})

	return dirs
}

// Test the fail fast behavior on a missing content directory.
func TestNewRepositoryMissingDirectory(t *testing.T) {
	dirs := setupContentDirs(t)
	dirs.Playbook = filepath.Join(dirs.Playbook, "does-not-exist")

	_, err := NewRepository(dirs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content directory not found")
}

// Test the case insensitive lookups.
func TestRepositoryLookups(t *testing.T) {
	repo, err := NewRepository(setupContentDirs(t))
	require.NoError(t, err)

	assert.Equal(t, "<combos>aatrox</combos>", repo.GetCombo("Aatrox"))
	assert.Equal(t, "<combos>aatrox</combos>", repo.GetCombo("AATROX"))
	assert.Empty(t, repo.GetCombo("Teemo"))

	assert.Equal(t, "<build>jungle</build>", repo.GetBuild("Aatrox", "Jungle"))
	assert.Equal(t, "<build>top</build>", repo.GetBuild("aatrox", "top"))
	assert.Empty(t, repo.GetBuild("aatrox", "support"))

	assert.Equal(t, "<guide>top</guide>", repo.GetGuide("aatrox", "top"))
}

// Test the role playbook assembly order and the jungle special file.
func TestRepositoryRolePlaybook(t *testing.T) {
	repo, err := NewRepository(setupContentDirs(t))
	require.NoError(t, err)

	jungle := repo.GetRolePlaybook("jungle")
	assert.Equal(t, "general advice\n\njungle advice\n\nclear route\n\nearly plan", jungle)

	mid := repo.GetRolePlaybook("MID")
	assert.Equal(t, "general advice\n\nmid advice\n\nmid laning", mid)

	assert.Empty(t, repo.GetRolePlaybook("unknown"))
}

// Test the knowledge mode concatenation of the whole playbook.
func TestRepositoryFullPlaybook(t *testing.T) {
	repo, err := NewRepository(setupContentDirs(t))
	require.NoError(t, err)

	full := repo.GetFullPlaybook()

	assert.Contains(t, full, "### 0.0-general\ngeneral advice")
	assert.Contains(t, full, "### 1.1-jungle\njungle advice")
	// Alphabetical ordering of the file keys.
	assert.Less(t, strings.Index(full, "0.0-general"), strings.Index(full, "1.1-jungle"))
	assert.Less(t, strings.Index(full, "1.2-mid"), strings.Index(full, "2.1.0-jungle-early-clear"))
}
