package head

import (
	"reflect"
	"testing"

	"github.com/go-drift/sideeffect/pkg/core"
	setest "github.com/go-drift/sideeffect/pkg/testing"
)

// recordBinding captures every applied title and meta aggregate.
type recordBinding struct {
	titles []string
	metas  [][]Meta
}

func (b *recordBinding) ApplyTitle(title string) {
	b.titles = append(b.titles, title)
}

func (b *recordBinding) ApplyMeta(tags []Meta) {
	b.metas = append(b.metas, tags)
}

func newManager(t *testing.T) (*Manager, *recordBinding) {
	t.Helper()
	binding := &recordBinding{}
	m, err := NewManager(binding)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, binding
}

func TestTitle_LastNonEmptyWins(t *testing.T) {
	m, _ := newManager(t)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		m.Title("Outer"),
		m.Title("Inner"),
		m.Title(""),
	}})

	if got := m.Peek().Title; got != "Inner" {
		t.Errorf("Peek().Title = %q, want Inner", got)
	}
}

func TestTitle_EmptyRegistryYieldsEmptyTitle(t *testing.T) {
	m, _ := newManager(t)
	if got := m.Peek().Title; got != "" {
		t.Errorf("Peek().Title = %q, want empty", got)
	}
}

func TestTitle_BindingNotifiedOnMountAndUpdate(t *testing.T) {
	m, binding := newManager(t)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(m.Title("First"))
	tester.PumpWidget(m.Title("Second"))
	tester.PumpWidget(m.Title("Second")) // unchanged, deduplicated

	want := []string{"First", "Second"}
	if !reflect.DeepEqual(binding.titles, want) {
		t.Errorf("applied titles = %v, want %v", binding.titles, want)
	}
}

func TestMeta_ConcatenatesInMountOrder(t *testing.T) {
	m, _ := newManager(t)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		m.Meta(Meta{Name: "description", Content: "outer"}),
		m.Meta(
			Meta{Name: "author", Content: "drift"},
			Meta{Name: "description", Content: "inner"},
		),
	}})

	want := []Meta{
		{Name: "description", Content: "outer"},
		{Name: "author", Content: "drift"},
		{Name: "description", Content: "inner"},
	}
	if got := m.Peek().Meta; !reflect.DeepEqual(got, want) {
		t.Errorf("Peek().Meta = %v, want %v", got, want)
	}
}

func TestRewind_DedupesMetaAndDrains(t *testing.T) {
	m, _ := newManager(t)
	m.SetCanUseDOM(false)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		m.Title("Server Page"),
		m.Meta(Meta{Name: "description", Content: "outer"}),
		m.Meta(Meta{Name: "description", Content: "inner"}),
	}})

	state, err := m.Rewind()
	if err != nil {
		t.Fatalf("Rewind: %v", err)
	}
	if state.Title != "Server Page" {
		t.Errorf("Title = %q, want Server Page", state.Title)
	}
	// First occurrence keeps its slot, last occurrence supplies content.
	wantMeta := []Meta{{Name: "description", Content: "inner"}}
	if !reflect.DeepEqual(state.Meta, wantMeta) {
		t.Errorf("Meta = %v, want %v", state.Meta, wantMeta)
	}

	// Drained: a second pass starts from nothing.
	again, err := m.Rewind()
	if err != nil {
		t.Fatalf("second Rewind: %v", err)
	}
	if again.Title != "" || len(again.Meta) != 0 {
		t.Errorf("second Rewind = %+v, want empty state", again)
	}
}

func TestPeek_DoesNotDedupeOrDrain(t *testing.T) {
	m, _ := newManager(t)
	m.SetCanUseDOM(false)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		m.Meta(Meta{Name: "description", Content: "outer"}),
		m.Meta(Meta{Name: "description", Content: "inner"}),
	}})

	if got := len(m.Peek().Meta); got != 2 {
		t.Errorf("Peek().Meta has %d tags, want 2 (no server mapping)", got)
	}
	if got := len(m.Peek().Meta); got != 2 {
		t.Errorf("repeated Peek drained the channel, got %d tags", got)
	}
}

func TestRewind_FailsOnClient(t *testing.T) {
	m, _ := newManager(t)
	tester := setest.NewComponentTesterWithT(t)
	tester.PumpWidget(m.Title("Client Page"))

	if _, err := m.Rewind(); err == nil {
		t.Fatal("expected Rewind to fail on the client path")
	}
	if got := m.Peek().Title; got != "Client Page" {
		t.Errorf("failed Rewind must not drain; Peek().Title = %q", got)
	}
}

func TestUnmount_RemovesContribution(t *testing.T) {
	m, binding := newManager(t)
	tester := setest.NewComponentTesterWithT(t)

	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		m.Title("Keep"),
		m.Title("Drop"),
	}})
	tester.PumpWidget(core.Fragment{Children: []core.Widget{
		m.Title("Keep"),
	}})

	if got := m.Peek().Title; got != "Keep" {
		t.Errorf("Peek().Title = %q, want Keep", got)
	}
	last := binding.titles[len(binding.titles)-1]
	if last != "Keep" {
		t.Errorf("last applied title = %q, want Keep", last)
	}
}

func TestNewManager_NilBindingLogs(t *testing.T) {
	m, err := NewManager(nil)
	if err != nil {
		t.Fatalf("NewManager(nil): %v", err)
	}
	if m == nil {
		t.Fatal("expected a manager")
	}
}
