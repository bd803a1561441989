// Package head manages document head state (title and meta tags) contributed
// by widgets anywhere in the tree. It is the canonical consumer of
// pkg/sideeffect: each concern is one side-effect channel, and a Binding
// applies the aggregate to the environment.
package head

import (
	"log"

	"github.com/go-drift/sideeffect/pkg/core"
	"github.com/go-drift/sideeffect/pkg/sideeffect"
)

// Meta is one name/content metadata tag.
type Meta struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// State is the aggregated head of a tree at one point in time.
type State struct {
	Title string
	Meta  []Meta
}

// Binding applies aggregated head state to the environment: a browser shim,
// a test probe, or a logger.
type Binding interface {
	ApplyTitle(title string)
	ApplyMeta(tags []Meta)
}

// LogBinding writes head changes to a logger. The zero value logs through the
// standard logger.
type LogBinding struct {
	Logger *log.Logger
}

func (b *LogBinding) logf(format string, args ...any) {
	if b.Logger != nil {
		b.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (b *LogBinding) ApplyTitle(title string) {
	b.logf("[head] title: %q", title)
}

func (b *LogBinding) ApplyMeta(tags []Meta) {
	b.logf("[head] meta: %d tag(s)", len(tags))
	for _, tag := range tags {
		b.logf("[head]   %s=%q", tag.Name, tag.Content)
	}
}

// titleComponent and metaComponent are the wrapped descriptors. They render
// nothing; mounting them is the whole point.
type titleComponent struct{}

func (titleComponent) Render(ctx core.BuildContext, props string) core.Widget {
	return nil
}

func (titleComponent) DisplayName() string { return "Title" }

type metaComponent struct{}

func (metaComponent) Render(ctx core.BuildContext, props []Meta) core.Widget {
	return nil
}

func (metaComponent) DisplayName() string { return "Meta" }

// reduceTitle keeps the last mounted non-empty title, so deeper or later
// occurrences override outer ones.
func reduceTitle(props []string) string {
	title := ""
	for _, p := range props {
		if p != "" {
			title = p
		}
	}
	return title
}

// reduceMeta concatenates contributions in mount order.
func reduceMeta(props [][]Meta) []Meta {
	var out []Meta
	for _, tags := range props {
		out = append(out, tags...)
	}
	return out
}

// dedupeMeta collapses tags with the same name. The first occurrence keeps
// its position; the last occurrence supplies the content. Applied only to the
// server pass, where the drained aggregate becomes document markup.
func dedupeMeta(tags []Meta) []Meta {
	index := make(map[string]int, len(tags))
	out := make([]Meta, 0, len(tags))
	for _, tag := range tags {
		if i, ok := index[tag.Name]; ok {
			out[i].Content = tag.Content
			continue
		}
		index[tag.Name] = len(out)
		out = append(out, tag)
	}
	return out
}

// Manager owns the title and meta channels for one logical document.
type Manager struct {
	binding Binding
	title   *sideeffect.SideEffect[string, string]
	meta    *sideeffect.SideEffect[[]Meta, []Meta]
}

// NewManager wires both channels to binding. A nil binding logs through a
// zero LogBinding.
func NewManager(binding Binding) (*Manager, error) {
	if binding == nil {
		binding = &LogBinding{}
	}
	m := &Manager{binding: binding}

	titleFactory, err := sideeffect.New(reduceTitle, binding.ApplyTitle)
	if err != nil {
		return nil, err
	}
	m.title, err = titleFactory.Wrap(titleComponent{})
	if err != nil {
		return nil, err
	}

	metaFactory, err := sideeffect.New(reduceMeta, binding.ApplyMeta,
		sideeffect.WithMapStateOnServer(dedupeMeta))
	if err != nil {
		return nil, err
	}
	m.meta, err = metaFactory.Wrap(metaComponent{})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// SetCanUseDOM switches both channels between the client path (updates notify
// the binding) and the server path (updates stay silent, reads drain through
// Rewind).
func (m *Manager) SetCanUseDOM(canUseDOM bool) {
	m.title.CanUseDOM = canUseDOM
	m.meta.CanUseDOM = canUseDOM
}

// Title returns a widget that contributes text to the document title while
// mounted. Empty text contributes nothing but keeps its mount slot.
func (m *Manager) Title(text string) core.Widget {
	return m.title.Widget(text)
}

// Meta returns a widget that contributes tags to the document metadata while
// mounted.
func (m *Manager) Meta(tags ...Meta) core.Widget {
	return m.meta.Widget(tags)
}

// Peek reads the aggregated head without draining either channel.
func (m *Manager) Peek() State {
	return State{
		Title: m.title.Peek(),
		Meta:  m.meta.Peek(),
	}
}

// Rewind drains both channels after a server pass. Meta tags come back
// deduplicated by name. Fails on the client path.
func (m *Manager) Rewind() (State, error) {
	title, err := m.title.Rewind()
	if err != nil {
		return State{}, err
	}
	meta, err := m.meta.Rewind()
	if err != nil {
		return State{}, err
	}
	return State{Title: title, Meta: meta}, nil
}
