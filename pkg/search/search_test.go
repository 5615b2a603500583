package search

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/render"
)

func visits(values []int, target int, alg Algorithm) []int {
	var out []int
	for s := range Steps(values, target, alg) {
		if s.Kind == Visit {
			out = append(out, s.Index)
		}
	}
	return out
}

func TestFind(t *testing.T) {
	sorted := []int{1, 3, 5, 7, 9, 11}
	tests := []struct {
		name   string
		values []int
		target int
		alg    Algorithm
		want   int
	}{
		{"linear hit", []int{4, 2, 9, 2}, 2, Linear, 1},
		{"linear miss", []int{4, 2, 9}, 5, Linear, NotFound},
		{"linear empty", nil, 1, Linear, NotFound},
		{"binary hit", sorted, 9, Binary, 4},
		{"binary first", sorted, 1, Binary, 0},
		{"binary miss", sorted, 4, Binary, NotFound},
		{"binary empty", nil, 1, Binary, NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(tt.values, tt.target, tt.alg); got != tt.want {
				t.Errorf("Find = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVisitOrder(t *testing.T) {
	if got := visits([]int{4, 2, 9}, 9, Linear); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("linear visits = %v", got)
	}
	// mid = 3 (7), then lo=4: mid = 5 (11), then hi=4: mid = 4 (9)
	if got := visits([]int{1, 3, 5, 7, 9, 11, 13}, 9, Binary); !slices.Equal(got, []int{3, 5, 4}) {
		t.Errorf("binary visits = %v", got)
	}
}

func TestParseAlgorithm(t *testing.T) {
	if a, err := ParseAlgorithm("Binary"); err != nil || a != Binary {
		t.Errorf("ParseAlgorithm(Binary) = %q, %v", a, err)
	}
	if _, err := ParseAlgorithm("jump"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestGenerate(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	values := Generate(rng, DefaultSize, DefaultMaxValue, true)
	if len(values) != DefaultSize {
		t.Fatalf("len = %d", len(values))
	}
	if !slices.IsSorted(values) {
		t.Errorf("values not sorted: %v", values)
	}
	for _, v := range values {
		if v < 1 || v > DefaultMaxValue {
			t.Errorf("value %d out of range", v)
		}
	}
}

func TestRunBinarySortsFirst(t *testing.T) {
	values := []int{9, 1, 5}
	board := render.NewBoard()
	var slept []time.Duration
	clock := anim.ClockFunc(func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	})

	got, err := Run(context.Background(), values, 5, Binary, anim.NewPacer(clock, 0), board, DefaultTiming(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
	if !slices.Equal(board.Values(render.ScopeSearch), []int{1, 5, 9}) {
		t.Errorf("board values = %v", board.Values(render.ScopeSearch))
	}
	if want := []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}; !slices.Equal(slept, want) {
		t.Errorf("sleeps = %v, want %v", slept, want)
	}
	if msg := board.Message(render.ScopeSearch); msg != "Found 5 at index 1" {
		t.Errorf("message = %q", msg)
	}
	if s := board.Array(render.ScopeSearch)[1].State(); s != render.StateFound {
		t.Errorf("slot 1 state = %q, want found", s)
	}
}

func TestRunLinearMiss(t *testing.T) {
	board := render.NewBoard()
	pacer := anim.NewPacer(anim.Instant, 0)
	got, err := Run(context.Background(), []int{4, 2}, 7, Linear, pacer, board, DefaultTiming(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != NotFound {
		t.Errorf("index = %d, want NotFound", got)
	}
	for i, s := range board.Array(render.ScopeSearch) {
		if s.State() != render.StateChecked {
			t.Errorf("slot %d state = %q, want checked", i, s.State())
		}
	}
	if msg := board.Message(render.ScopeSearch); msg != "7 not found in array" {
		t.Errorf("message = %q", msg)
	}
}

func ExampleResultText() {
	fmt.Println(ResultText(3, 42))
	fmt.Println(ResultText(NotFound, 42))
	// Output:
	// Found 42 at index 3
	// 42 not found in array
}
