package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/algoviz/pkg/engine"
	verrors "github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/pathfind"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/search"
	"github.com/matzehuels/algoviz/pkg/sorting"
	"github.com/matzehuels/algoviz/pkg/tree"
)

// formValue is a value typed into an input box. It accepts a JSON string or
// number; strings are parsed leniently like the form controls.
type formValue string

func (f *formValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = formValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = formValue(n.String())
	return nil
}

// actionRequest is the body of every engine command. Each action reads only
// the fields it needs.
type actionRequest struct {
	Algorithm string        `json:"algorithm,omitempty"`
	Order     string        `json:"order,omitempty"`
	Target    formValue     `json:"target,omitempty"`
	Value     formValue     `json:"value,omitempty"`
	Values    []int         `json:"values,omitempty"`
	Size      int           `json:"size,omitempty"`
	Speed     int           `json:"speed,omitempty"`
	Row       int           `json:"row"`
	Col       int           `json:"col"`
	Walls     []render.Cell `json:"walls,omitempty"`
}

// actionResult is the reply to a command; fields are set per action.
type actionResult map[string]any

// action performs one command. Runs are started on ctx, which outlives the
// request; wait blocks until the run ends.
type action func(ctx context.Context, v *engine.Visualizer, req actionRequest, wait bool) (actionResult, error)

var actions = map[string]map[string]action{
	"sort": {
		"start": sortStart,
		"generate": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Sort.Generate(ctx)
		},
		"size": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			return nil, v.Sort.SetSize(ctx, req.Size)
		},
		"values": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			return nil, v.Sort.SetValues(ctx, req.Values)
		},
		"speed": func(_ context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			if err := v.Sort.SetSpeed(req.Speed); err != nil {
				return nil, err
			}
			return actionResult{"delay_ms": v.Sort.Delay().Milliseconds()}, nil
		},
		"pause": func(_ context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return actionResult{"paused": v.Sort.TogglePause()}, nil
		},
		"reset": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Sort.Reset(ctx)
		},
	},
	"search": {
		"start": searchStart,
		"generate": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			alg, err := optional(req.Algorithm, search.Linear, search.ParseAlgorithm)
			if err != nil {
				return nil, err
			}
			return nil, v.Search.Generate(ctx, alg)
		},
		"values": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			return nil, v.Search.SetValues(ctx, req.Values)
		},
		"pause": func(_ context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return actionResult{"paused": v.Search.TogglePause()}, nil
		},
		"reset": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Search.Reset(ctx)
		},
	},
	"grid": {
		"start": gridStart,
		"wall": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			wall, err := v.Grid.ToggleWall(ctx, req.Row, req.Col)
			if err != nil {
				return nil, err
			}
			return actionResult{"wall": wall}, nil
		},
		"walls": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			return nil, v.Grid.SetWalls(ctx, req.Walls)
		},
		"maze": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Grid.GenerateMaze(ctx)
		},
		"clear": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Grid.ClearGrid(ctx)
		},
		"clear-path": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Grid.ClearPath(ctx)
		},
		"pause": func(_ context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return actionResult{"paused": v.Grid.TogglePause()}, nil
		},
		"reset": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Grid.Reset(ctx)
		},
	},
	"tree": {
		"start": treeStart,
		"insert": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			inserted, err := v.Tree.Insert(ctx, string(req.Value))
			if err != nil {
				return nil, err
			}
			return actionResult{"inserted": inserted}, nil
		},
		"sample": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Tree.Sample(ctx)
		},
		"clear": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Tree.Clear(ctx)
		},
		"pause": func(_ context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return actionResult{"paused": v.Tree.TogglePause()}, nil
		},
		"reset": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Tree.Reset(ctx)
		},
	},
	"stack": {
		"push": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			return addItem(ctx, req, v.Structures.Push)
		},
		"pop": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return takeItem(v.Structures.Pop(ctx))
		},
		"clear": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Structures.ClearStack(ctx)
		},
	},
	"queue": {
		"enqueue": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			return addItem(ctx, req, v.Structures.Enqueue)
		},
		"dequeue": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return takeItem(v.Structures.Dequeue(ctx))
		},
		"clear": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Structures.ClearQueue(ctx)
		},
	},
	"list": {
		"insert": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			return addItem(ctx, req, v.Structures.Insert)
		},
		"delete": func(ctx context.Context, v *engine.Visualizer, req actionRequest, _ bool) (actionResult, error) {
			value, ok := verrors.ParseValue(string(req.Value))
			if !ok {
				return actionResult{"deleted": false}, nil
			}
			found, err := v.Structures.Delete(ctx, value)
			return actionResult{"deleted": found}, err
		},
		"clear": func(ctx context.Context, v *engine.Visualizer, _ actionRequest, _ bool) (actionResult, error) {
			return nil, v.Structures.ClearList(ctx)
		},
	},
}

// handleAction dispatches POST /api/sessions/{id}/{target}/{action}.
// Adding ?wait=1 to a start command replies only once the run has ended.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	target, name := chi.URLParam(r, "target"), chi.URLParam(r, "action")
	act, ok := actions[target][name]
	if !ok {
		s.writeError(w, verrors.New(verrors.ErrCodeNotFound, "unknown command %s/%s", target, name))
		return
	}
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req actionRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))

	ctx := s.runCtx
	if wait {
		// Waiting ties the run to the request: a client that goes away
		// cancels it.
		ctx = r.Context()
	}
	res, err := act(ctx, sess.Viz, req, wait)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if res == nil {
		res = actionResult{}
	}
	res["ok"] = true
	s.writeJSON(w, http.StatusOK, res)
}

// optional parses name with parse, or returns def for an empty name.
func optional[T any](name string, def T, parse func(string) (T, error)) (T, error) {
	if name == "" {
		return def, nil
	}
	return parse(name)
}

// started reports a run in the background, or its outcome when wait is set.
func started(ctx context.Context, done <-chan error, wait bool, outcome func() actionResult) (actionResult, error) {
	if !wait {
		return actionResult{"started": true}, nil
	}
	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	res := actionResult{"started": true}
	if outcome != nil {
		for k, v := range outcome() {
			res[k] = v
		}
	}
	return res, nil
}

func sortStart(ctx context.Context, v *engine.Visualizer, req actionRequest, wait bool) (actionResult, error) {
	alg, err := sorting.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	done, err := v.Sort.Start(ctx, alg)
	if err != nil {
		return nil, err
	}
	return started(ctx, done, wait, func() actionResult {
		return actionResult{"values": v.Sort.Values()}
	})
}

func searchStart(ctx context.Context, v *engine.Visualizer, req actionRequest, wait bool) (actionResult, error) {
	alg, err := search.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	done, err := v.Search.Start(ctx, string(req.Target), alg)
	if err != nil {
		return nil, err
	}
	return started(ctx, done, wait, func() actionResult {
		return actionResult{"index": v.Search.Result()}
	})
}

func gridStart(ctx context.Context, v *engine.Visualizer, req actionRequest, wait bool) (actionResult, error) {
	alg, err := pathfind.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	done, err := v.Grid.Start(ctx, alg)
	if err != nil {
		return nil, err
	}
	return started(ctx, done, wait, func() actionResult {
		res := v.Grid.Result()
		return actionResult{
			"state":   res.State.String(),
			"visited": len(res.Visited),
			"path":    res.Path,
		}
	})
}

func treeStart(ctx context.Context, v *engine.Visualizer, req actionRequest, wait bool) (actionResult, error) {
	name := req.Order
	if name == "" {
		name = req.Algorithm
	}
	order, err := tree.ParseOrder(name)
	if err != nil {
		return nil, err
	}
	done, err := v.Tree.Start(ctx, order)
	if err != nil {
		return nil, err
	}
	return started(ctx, done, wait, func() actionResult {
		return actionResult{"sequence": v.Tree.Sequence()}
	})
}

// addItem parses the value and adds it with add. Input that is not a
// number is ignored.
func addItem(ctx context.Context, req actionRequest, add func(context.Context, int) error) (actionResult, error) {
	value, ok := verrors.ParseValue(string(req.Value))
	if !ok {
		return actionResult{"added": false}, nil
	}
	if err := add(ctx, value); err != nil {
		return nil, err
	}
	return actionResult{"added": true}, nil
}

func takeItem(value int, ok bool, err error) (actionResult, error) {
	if err != nil {
		return nil, err
	}
	if !ok {
		return actionResult{"empty": true}, nil
	}
	return actionResult{"value": value}, nil
}
