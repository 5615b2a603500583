package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/engine"
	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
)

var containerScopes = map[string]render.Scope{
	"stack": render.ScopeStack,
	"queue": render.ScopeQueue,
	"list":  render.ScopeList,
}

func (c *CLI) dsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ds stack|queue|list OP...",
		Short: "Apply operations to a stack, queue or linked list",
		Long: `Apply operations to a container and print it after each one.

  stack: push:V  pop  clear
  queue: enqueue:V  dequeue  clear
  list:  insert:V  delete:V  clear

Values that are not numbers are ignored, as are pops from empty containers.`,
		Example: `  algoviz ds stack push:3 push:5 pop
  algoviz ds list insert:1 insert:2 insert:1 delete:1`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"stack", "queue", "list"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDS(cmd.Context(), args[0], args[1:])
		},
	}
}

func (c *CLI) runDS(ctx context.Context, container string, ops []string) error {
	scope, ok := containerScopes[container]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown container %q (want stack, queue or list)", container)
	}

	board := render.NewBoard()
	v := c.newVisualizer(board, 0, true)
	defer v.Stop()

	for _, op := range ops {
		note, err := applyOp(ctx, v.Structures, container, op)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, StyleDim.Render(op)+" "+StyleDim.Render(note))
		fmt.Fprintln(c.out, viewItems(board, scope))
	}
	return nil
}

// applyOp performs one "name[:value]" operation and describes its effect.
func applyOp(ctx context.Context, s *engine.Structures, container, op string) (string, error) {
	name, raw, _ := strings.Cut(strings.ToLower(op), ":")
	value, hasValue := errors.ParseValue(raw)

	switch container + "." + name {
	case "stack.push", "queue.enqueue", "list.insert":
		if !hasValue {
			return "(ignored: not a number)", nil
		}
		var err error
		switch container {
		case "stack":
			err = s.Push(ctx, value)
		case "queue":
			err = s.Enqueue(ctx, value)
		default:
			err = s.Insert(ctx, value)
		}
		return "", err

	case "stack.pop", "queue.dequeue":
		pop := s.Pop
		if container == "queue" {
			pop = s.Dequeue
		}
		v, ok, err := pop(ctx)
		if !ok {
			return "(empty)", err
		}
		return iconArrow + " " + strconv.Itoa(v), err

	case "list.delete":
		if !hasValue {
			return "(ignored: not a number)", nil
		}
		found, err := s.Delete(ctx, value)
		if !found {
			return "(not found)", err
		}
		return "", err

	case "stack.clear":
		return "", s.ClearStack(ctx)
	case "queue.clear":
		return "", s.ClearQueue(ctx)
	case "list.clear":
		return "", s.ClearList(ctx)
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown %s operation %q", container, op)
}
