package davclient

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/cyp0633/libwebdav/dav"
	"golang.org/x/sync/errgroup"
)

// SkipDir can be returned by a WalkFunc to skip the members of a collection.
var SkipDir = fs.SkipDir

// WalkFunc is called once per visited resource. Calls are never concurrent.
type WalkFunc func(r *dav.Resource) error

// Walk visits the resource at url and, level by level, every resource below
// it. Collections of one level are listed in parallel; fn sees members in
// the order the server listed them.
func (c *davClient) Walk(ctx context.Context, urlStr string, fn WalkFunc) error {
	if urlStr == "" {
		return ErrInvalidURL
	}
	if fn == nil {
		return errors.New("walk function is required")
	}

	root, err := c.Stat(ctx, urlStr)
	if err != nil {
		return err
	}
	if err := fn(root); err != nil {
		if errors.Is(err, SkipDir) {
			return nil
		}
		return err
	}
	if !root.IsDirectory() {
		return nil
	}

	// Some servers list a collection under a second spelling; never
	// descend into the same path twice.
	visited := map[string]bool{visitKey(root): true}
	level := []*dav.Resource{root}
	for len(level) > 0 {
		members := make([][]*dav.Resource, len(level))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency)
		for i, col := range level {
			g.Go(func() error {
				children, err := c.List(gctx, col.RawPath())
				members[i] = children
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var next []*dav.Resource
		for _, children := range members {
			for _, child := range children {
				err := fn(child)
				if errors.Is(err, SkipDir) {
					continue
				}
				if err != nil {
					return err
				}
				if child.IsDirectory() && !visited[visitKey(child)] {
					visited[visitKey(child)] = true
					next = append(next, child)
				}
			}
		}
		c.logger.Debug("walked level", "url", urlStr, "collections", len(level), "next", len(next))
		level = next
	}
	return nil
}

func visitKey(r *dav.Resource) string {
	return strings.TrimSuffix(r.Path(), "/")
}
