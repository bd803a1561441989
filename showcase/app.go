package main

import (
	"github.com/go-drift/sideeffect/pkg/core"
	"github.com/go-drift/sideeffect/pkg/head"
)

// Page identifies one of the demo pages.
type Page int

const (
	PageHome Page = iota
	PageArticle
)

// App is the demo application root. It contributes the site-wide head state
// and mounts the current page beneath it, so page contributions override the
// defaults while the page is up.
type App struct {
	Heads *head.Manager
	Page  Page
}

func (a App) CreateElement() core.Element {
	return core.NewStatelessElement(a, nil)
}

func (a App) Key() any {
	return nil
}

func (a App) Build(ctx core.BuildContext) core.Widget {
	var page core.Widget
	switch a.Page {
	case PageArticle:
		page = articlePage{heads: a.Heads}
	default:
		page = homePage{heads: a.Heads}
	}
	return core.Fragment{Children: []core.Widget{
		a.Heads.Title("Drift Notes"),
		a.Heads.Meta(head.Meta{Name: "generator", Content: "sideeffect showcase"}),
		page,
	}}
}

// homePage contributes nothing beyond the app defaults.
type homePage struct {
	heads *head.Manager
}

func (p homePage) CreateElement() core.Element {
	return core.NewStatelessElement(p, nil)
}

func (p homePage) Key() any {
	return nil
}

func (p homePage) Build(ctx core.BuildContext) core.Widget {
	return p.heads.Meta(head.Meta{Name: "description", Content: "All notes"})
}

// articlePage overrides the title and description while mounted.
type articlePage struct {
	heads *head.Manager
}

func (p articlePage) CreateElement() core.Element {
	return core.NewStatelessElement(p, nil)
}

func (p articlePage) Key() any {
	return nil
}

func (p articlePage) Build(ctx core.BuildContext) core.Widget {
	return core.Fragment{Children: []core.Widget{
		p.heads.Title("Why ordered aggregation? — Drift Notes"),
		p.heads.Meta(head.Meta{Name: "description", Content: "Mount order is aggregation order"}),
	}}
}
