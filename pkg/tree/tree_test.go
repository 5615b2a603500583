package tree

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/render"
)

func TestSampleTraversals(t *testing.T) {
	tr := Sample()
	tests := []struct {
		order Order
		want  []int
	}{
		{InOrder, []int{10, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80}},
		{PreOrder, []int{50, 30, 20, 10, 25, 40, 35, 45, 70, 60, 80}},
		{PostOrder, []int{10, 25, 20, 35, 45, 40, 30, 60, 80, 70, 50}},
		{LevelOrder, []int{50, 30, 70, 20, 40, 60, 80, 10, 25, 35, 45}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			if got := tr.Values(tt.order); !slices.Equal(got, tt.want) {
				t.Errorf("Values(%s) = %v, want %v", tt.order, got, tt.want)
			}
		})
	}
}

func TestInsertIgnoresDuplicates(t *testing.T) {
	tr := New()
	for _, v := range []int{5, 3, 5, 8, 3} {
		tr.Insert(v)
	}
	if tr.Len() != 3 {
		t.Errorf("Len = %d, want 3", tr.Len())
	}
	if tr.Insert(8) {
		t.Error("Insert of existing value reported true")
	}
	if !tr.Contains(3) || tr.Contains(4) {
		t.Error("Contains mismatch")
	}
	tr.Clear()
	if !tr.Empty() || tr.Len() != 0 || tr.Height() != 0 {
		t.Error("Clear left nodes behind")
	}
}

func TestTraverseEmptyAndEarlyStop(t *testing.T) {
	for _, o := range Orders() {
		for range Traverse(nil, o) {
			t.Errorf("%s: empty tree yielded a node", o)
		}
		n := 0
		for range Traverse(Sample().Root, o) {
			n++
			if n == 2 {
				break
			}
		}
		if n != 2 {
			t.Errorf("%s: consumed %d nodes", o, n)
		}
	}
}

func TestLayout(t *testing.T) {
	tr := Sample()
	pos := Layout(tr.Root)
	if len(pos) != tr.Len() {
		t.Fatalf("positions = %d, want %d", len(pos), tr.Len())
	}
	if p := pos[tr.Root]; p != (Position{400, 50}) {
		t.Errorf("root at %v", p)
	}
	if p := pos[tr.Root.Left]; p != (Position{200, 130}) {
		t.Errorf("30 at %v", p)
	}
	if p := pos[tr.Root.Left.Left.Left]; p != (Position{50, 290}) {
		t.Errorf("10 at %v", p)
	}

	shape := Shape(tr)
	if shape[0].HasParent || shape[0].Value != 50 {
		t.Errorf("first shape node = %+v", shape[0])
	}
	if !shape[1].HasParent || shape[1].ParentX != 400 {
		t.Errorf("second shape node = %+v", shape[1])
	}
}

func TestToDOT(t *testing.T) {
	tr := New()
	for _, v := range []int{2, 1, -3} {
		tr.Insert(v)
	}
	dot := ToDOT(tr, DOTOptions{States: map[int]render.State{1: render.StateVisited}})
	for _, want := range []string{"n2 -> n1;", "n1 -> nm3;", "style=invis", render.Fill(render.StateVisited)} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="62" height="44"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
}

func TestRun(t *testing.T) {
	tr := Sample()
	board := render.NewBoard()
	var slept []time.Duration
	clock := anim.ClockFunc(func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	})
	seq, err := Run(context.Background(), tr, InOrder, anim.NewPacer(clock, 0), board, DefaultVisitDelay, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Equal(seq, tr.Values(InOrder)) {
		t.Errorf("sequence = %v", seq)
	}
	if len(slept) != tr.Len() || slept[0] != 800*time.Millisecond {
		t.Errorf("sleeps = %v", slept)
	}
	want := "Traversal sequence: 10 → 20 → 25 → 30 → 35 → 40 → 45 → 50 → 60 → 70 → 80"
	if got := board.Message(render.ScopeTree); got != want {
		t.Errorf("message = %q", got)
	}
	for _, v := range board.Nodes() {
		if n, _ := board.Node(v); n.State() != render.StateVisited {
			t.Errorf("node %d state %q", v, n.State())
		}
	}
}

func TestRunEmptyTree(t *testing.T) {
	var rec render.Recorder
	seq, err := Run(context.Background(), New(), PreOrder, anim.NewPacer(anim.Instant, 0), &rec, 0, log.New(io.Discard))
	if err != nil || seq != nil || rec.Len() != 0 {
		t.Errorf("Run on empty tree = %v, %v, %d events", seq, err, rec.Len())
	}
}

func ExampleTree_Values() {
	tr := New()
	for _, v := range []int{4, 2, 6, 1, 3} {
		tr.Insert(v)
	}
	fmt.Println(FormatSequence(tr.Values(PostOrder)))
	// Output: 1 → 3 → 2 → 6 → 4
}
