// Package main provides headgen, a server-pass head renderer. It reads an
// optional head.yaml describing the site's pages, mounts each page's title
// and meta contributions with the DOM flag off, drains the aggregate through
// Rewind, and prints the resulting head markup.
package main

import (
	"flag"
	"fmt"
	"html"
	"os"

	"github.com/go-drift/sideeffect/cmd/headgen/internal/config"
	"github.com/go-drift/sideeffect/pkg/core"
	"github.com/go-drift/sideeffect/pkg/head"
)

// nullBinding discards client notifications. Mount-time notifications fire
// even during a server pass; headgen only cares about the drained aggregate.
type nullBinding struct{}

func (nullBinding) ApplyTitle(string) {}

func (nullBinding) ApplyMeta([]head.Meta) {}

func main() {
	rootFlag := flag.String("root", "", "project root (default: walk up to go.mod)")
	flag.Parse()

	root := *rootFlag
	if root == "" {
		var err error
		root, err = config.FindProjectRoot()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding project root: %v\n", err)
			os.Exit(1)
		}
	}

	resolved, err := config.Resolve(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving config: %v\n", err)
		os.Exit(1)
	}

	for _, page := range resolved.Pages {
		if err := renderPage(resolved, page); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", page.Path, err)
			os.Exit(1)
		}
	}
}

// renderPage runs one server pass: mount the site-wide contributions, then
// the page's own on top so they win, rewind, and print.
func renderPage(site *config.Resolved, page config.PageConfig) error {
	manager, err := head.NewManager(nullBinding{})
	if err != nil {
		return err
	}
	manager.SetCanUseDOM(false)

	children := []core.Widget{
		manager.Title(site.BaseTitle),
	}
	if len(site.SiteMeta) > 0 {
		children = append(children, manager.Meta(site.SiteMeta...))
	}
	children = append(children, manager.Title(page.Title))
	if len(page.Meta) > 0 {
		children = append(children, manager.Meta(page.Meta...))
	}

	owner := core.NewBuildOwner()
	root := core.MountRoot(core.Fragment{Children: children}, owner)
	state, err := manager.Rewind()
	if root != nil {
		root.Unmount()
	}
	if err != nil {
		return err
	}

	fmt.Printf("# %s\n", page.Path)
	fmt.Printf("<title>%s</title>\n", html.EscapeString(state.Title))
	for _, tag := range state.Meta {
		fmt.Printf("<meta name=%q content=%q>\n",
			html.EscapeString(tag.Name), html.EscapeString(tag.Content))
	}
	fmt.Println()
	return nil
}
