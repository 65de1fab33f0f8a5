package jobs

import (
	"fmt"
	"gocoach/pkg/config"
	"gocoach/pkg/knowledge"
	"log"
)

// RevalidateContent reloads the knowledge content from disk. Guide edits
// reach the next deploy anyway, this job catches broken content early.
func RevalidateContent() error {
	log.Println("Starting knowledge content revalidation")

	repo, err := knowledge.NewRepository(knowledge.Directories{
		Combos:   config.Content.CombosDir,
		Builds:   config.Content.BuildsDir,
		Guides:   config.Content.GuidesDir,
		Playbook: config.Content.PlaybookDir,
	})
	if err != nil {
		return fmt.Errorf("couldn't reload the knowledge content: %w", err)
	}

	counts := repo.Counts()
	if counts.Playbook == 0 {
		return fmt.Errorf("playbook directory is empty")
	}

	log.Printf("Knowledge content revalidation completed: %d combos, %d builds, %d guides, %d playbook files",
		counts.Combos, counts.Builds, counts.Guides, counts.Playbook)

	return nil
}
