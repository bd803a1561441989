// Package main provides the sideeffect showcase: a scripted client-path run
// of the head manager. Each step logs the notifications the binding receives
// as widgets mount, update, and unmount.
package main

import (
	"log"

	"github.com/go-drift/sideeffect/pkg/core"
	"github.com/go-drift/sideeffect/pkg/head"
)

func main() {
	log.SetFlags(0)

	manager, err := head.NewManager(&head.LogBinding{})
	if err != nil {
		log.Fatalf("head manager: %v", err)
	}

	owner := core.NewBuildOwner()

	log.Println("== mount home page ==")
	root := core.MountRoot(App{Heads: manager, Page: PageHome}, owner)

	log.Println("== navigate to article ==")
	root.Update(App{Heads: manager, Page: PageArticle})
	root.RebuildIfNeeded()
	owner.FlushBuild()

	log.Println("== re-render article (unchanged props stay silent) ==")
	root.Update(App{Heads: manager, Page: PageArticle})
	root.RebuildIfNeeded()
	owner.FlushBuild()

	state := manager.Peek()
	log.Printf("== peek: title=%q, %d meta tag(s) ==", state.Title, len(state.Meta))

	log.Println("== unmount ==")
	root.Unmount()
}
