package main

import (
	"fmt"

	"github.com/mitosis-ai/mitosis/internal/ui/panels"
	"github.com/mitosis-ai/mitosis/internal/update"
)

func runVersion(repo string) {
	fmt.Printf("mitosis version %s\n", panels.Version)

	if panels.Version == "dev" {
		fmt.Println("Development build — update check skipped.")
		return
	}

	rel, err := update.CheckForUpdate(panels.Version, repo)
	if err != nil {
		fmt.Printf("Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"mitosis update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
}

func runUpdate(repo string) {
	rel, err := update.Apply(panels.Version, repo)
	if err != nil {
		fmt.Printf("Update failed: %v\n", err)
		return
	}
	fmt.Printf("Updated to v%s\n", rel.Version)
}
