package server

import (
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/algoviz/pkg/engine"
	verrors "github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/session"
	"github.com/matzehuels/algoviz/pkg/trace"
	"github.com/matzehuels/algoviz/pkg/tree"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(static, "static/index.html")
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	out := make(map[engine.Category][]engine.AlgorithmInfo)
	for _, c := range engine.Categories() {
		out[c] = engine.Catalog(c)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) session(r *http.Request) (*session.Session, error) {
	return s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snapshotOf(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshotOf(sess))
}

// snapshot is the whole displayed state of a session, used to draw the page
// before the event stream takes over.
type snapshot struct {
	ID       string                  `json:"id"`
	Sort     []render.Slot           `json:"sort"`
	Search   []render.Slot           `json:"search"`
	Grid     gridView                `json:"grid"`
	Tree     []treeNode              `json:"tree"`
	Stack    []int                   `json:"stack"`
	Queue    []int                   `json:"queue"`
	List     []int                   `json:"list"`
	Messages map[render.Scope]string `json:"messages"`
	Running  map[string]bool         `json:"running"`
	DelayMS  int64                   `json:"delay_ms"`
}

type gridView struct {
	Size    int           `json:"size"`
	Start   render.Cell   `json:"start"`
	End     render.Cell   `json:"end"`
	Walls   []render.Cell `json:"walls"`
	Visited []render.Cell `json:"visited"`
	Path    []render.Cell `json:"path"`
}

type treeNode struct {
	Value   int          `json:"value"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	ParentX *float64     `json:"parent_x,omitempty"`
	ParentY *float64     `json:"parent_y,omitempty"`
	State   render.State `json:"state,omitempty"`
}

func snapshotOf(sess *session.Session) snapshot {
	b, v := sess.Board, sess.Viz
	g := v.Grid.Grid()

	states := b.NodeStates()
	shape := v.Tree.Shape()
	nodes := make([]treeNode, 0, len(shape))
	for _, n := range shape {
		tn := treeNode{Value: n.Value, X: n.X, Y: n.Y, State: states[n.Value]}
		if n.HasParent {
			px, py := n.ParentX, n.ParentY
			tn.ParentX, tn.ParentY = &px, &py
		}
		nodes = append(nodes, tn)
	}

	messages := make(map[render.Scope]string)
	for _, scope := range []render.Scope{render.ScopeSort, render.ScopeSearch, render.ScopeGrid, render.ScopeTree} {
		if m := b.Message(scope); m != "" {
			messages[scope] = m
		}
	}

	return snapshot{
		ID:     sess.ID,
		Sort:   b.Array(render.ScopeSort),
		Search: b.Array(render.ScopeSearch),
		Grid: gridView{
			Size:    g.Size(),
			Start:   g.Start(),
			End:     g.End(),
			Walls:   b.CellsIn(render.StateWall),
			Visited: b.CellsIn(render.StateVisited),
			Path:    b.CellsIn(render.StatePath),
		},
		Tree:     nodes,
		Stack:    b.Items(render.ScopeStack),
		Queue:    b.Items(render.ScopeQueue),
		List:     b.Items(render.ScopeList),
		Messages: messages,
		Running: map[string]bool{
			"sort":   v.Sort.Running(),
			"search": v.Search.Running(),
			"grid":   v.Grid.Running(),
			"tree":   v.Tree.Running(),
		},
		DelayMS: v.Sort.Delay().Milliseconds(),
	}
}

// handleTreeSVG renders the session's tree with Graphviz, coloured as it is
// currently displayed.
func (s *Server) handleTreeSVG(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if sess.Viz.Tree.Len() == 0 {
		s.writeError(w, verrors.New(verrors.ErrCodeNotFound, "the tree is empty"))
		return
	}
	svg, err := tree.RenderSVG(r.Context(), sess.Viz.Tree.DOT(sess.Board.NodeStates()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// handleTrace computes or loads a full trace. Inputs come from the query:
// values=5,3,8  target=8  walls=4:5,6:7  refresh=1.
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	req, err := traceRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	tr, hit, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", map[bool]string{true: "HIT", false: "MISS"}[hit])
	s.writeJSON(w, http.StatusOK, tr)
}

func traceRequest(r *http.Request) (trace.Request, error) {
	eng, err := trace.ParseEngine(chi.URLParam(r, "engine"))
	if err != nil {
		return trace.Request{}, err
	}
	q := r.URL.Query()
	req := trace.Request{Engine: eng, Algorithm: chi.URLParam(r, "algorithm")}
	req.Refresh, _ = strconv.ParseBool(q.Get("refresh"))

	if raw := q.Get("values"); raw != "" {
		if req.Values, err = verrors.ParseInts(raw); err != nil {
			return req, err
		}
	}
	if raw := q.Get("walls"); raw != "" {
		if req.Walls, err = render.ParseCells(raw); err != nil {
			return req, err
		}
	}
	if eng == trace.EngineSearch {
		target, err := verrors.ParseTarget(q.Get("target"))
		if err != nil {
			return req, err
		}
		req.Target = &target
	}
	return req, nil
}
