// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"sync"

	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/internal/logx"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/node"
)

// attached tracks which context currently owns each graph, so a scene
// cannot be attached to two contexts at once.
var attached sync.Map // *node.Graph -> *Context

// command is one marshaled caller request.
type command struct {
	fn   func() error
	err  error
	done bool
}

// Context is the render context. All exported methods marshal their
// work through the single worker goroutine, one command at a time: a
// bounded single-item slot guarded by a mutex and three condition
// variables (slot free, work ready, command done).
type Context struct {
	ctx    gpu.GpuCtx
	config Config

	mu       sync.Mutex
	slotFree *sync.Cond // signaled when the slot empties
	workCond *sync.Cond // signaled when a command lands or quit is set
	doneCond *sync.Cond // signaled when a command completes
	pending  *command
	quit     bool
	joined   sync.WaitGroup

	// Worker-only state below; caller code never touches it directly.
	graph *node.Graph
	root  node.Handle

	mv       matrixStack
	pr       matrixStack
	rts      rtStack
	viewport gpu.Viewport
	scissor  gpu.Scissor

	cmd   gpu.CmdBuffer
	frame float64
	hud   func(*Context)

	sceneAspect [2]int
}

// New creates a render context over ctx using the package
// configuration, and starts its worker.
func New(ctx gpu.GpuCtx) (*Context, error) {
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates a render context with an explicit
// configuration.
func NewWithConfig(ctx gpu.GpuCtx, config Config) (*Context, error) {
	if ctx == nil {
		return nil, newErr(errs.InvalidArg, "nil GPU context")
	}
	if err := ctx.Init(config.Backend); err != nil {
		return nil, err
	}
	c := &Context{ctx: ctx, config: config}
	c.slotFree = sync.NewCond(&c.mu)
	c.workCond = sync.NewCond(&c.mu)
	c.doneCond = sync.NewCond(&c.mu)
	c.mv.init()
	c.pr.init()
	c.rts.init(ctx.DefaultRendertarget())
	c.resetViewport(config.Width, config.Height)

	var proj linear.M4
	proj.Orthographic(-1, 1, -1, 1, -1, 1)
	ctx.TransformProjectionMatrix(&proj)
	c.pr.ms[0] = proj

	c.joined.Add(1)
	go c.work()
	logx.Infof("render context on %s", ctx.Name())
	return c, nil
}

// work is the worker loop: it pulls one command at a time, runs it, and
// signals completion.
func (c *Context) work() {
	defer c.joined.Done()
	c.mu.Lock()
	for {
		for c.pending == nil && !c.quit {
			c.workCond.Wait()
		}
		if c.pending == nil && c.quit {
			c.mu.Unlock()
			return
		}
		cmd := c.pending
		c.mu.Unlock()

		err := cmd.fn()

		c.mu.Lock()
		cmd.err = err
		cmd.done = true
		c.pending = nil
		c.slotFree.Signal()
		c.doneCond.Broadcast()
	}
}

// exec submits fn to the worker and blocks until it completes.
// Commands submitted by one caller goroutine run in submission order
// and never concurrently with one another.
func (c *Context) exec(fn func() error) error {
	c.mu.Lock()
	for c.pending != nil {
		c.slotFree.Wait()
	}
	if c.quit {
		c.mu.Unlock()
		return newErr(errs.InvalidUsage, "context is closed")
	}
	cmd := &command{fn: fn}
	c.pending = cmd
	c.workCond.Signal()
	for !cmd.done {
		c.doneCond.Wait()
	}
	c.mu.Unlock()
	return cmd.err
}

// Close shuts the worker down and releases the GPU context.
func (c *Context) Close() {
	c.exec(func() error {
		if c.graph != nil {
			c.graph.UnrefTree(c.root)
			attached.Delete(c.graph)
			c.graph = nil
		}
		return c.ctx.WaitIdle()
	})
	c.mu.Lock()
	c.quit = true
	c.workCond.Signal()
	c.mu.Unlock()
	c.joined.Wait()
	c.ctx.Close()
}

// SetScene attaches the graph rooted at root. It rejects a graph
// already attached to another context and initializes the root's
// subtree. It runs no cycle scan of its own: Graph.Reparent rejects any
// link that would close a cycle.
func (c *Context) SetScene(g *node.Graph, root node.Handle) error {
	return c.exec(func() error {
		if prev, ok := attached.Load(g); ok && prev != c {
			return newErr(errs.InvalidUsage, "scene is attached to another context")
		}
		if c.graph != nil {
			c.graph.UnrefTree(c.root)
			attached.Delete(c.graph)
			c.graph = nil
		}
		if err := g.RefTree(root); err != nil {
			return err
		}
		attached.Store(g, c)
		c.graph = g
		c.root = root
		if o, ok := g.Opts(root).(*SceneOpts); ok && o.AspectRatio[1] > 0 {
			c.sceneAspect = o.AspectRatio
		} else {
			c.sceneAspect = [2]int{0, 0}
		}
		w, h := c.ctx.DefaultRendertargetSize()
		c.resetViewport(w, h)
		return nil
	})
}

// Scene returns the attached graph and root.
func (c *Context) Scene() (*node.Graph, node.Handle) {
	var g *node.Graph
	var root node.Handle
	c.exec(func() error { g, root = c.graph, c.root; return nil })
	return g, root
}

// Resize forwards the new surface size to the GPU and recomputes the
// letterbox viewport.
func (c *Context) Resize(width, height int) error {
	return c.exec(func() error {
		if err := c.ctx.Resize(width, height); err != nil {
			return err
		}
		c.rts.init(c.ctx.DefaultRendertarget())
		c.resetViewport(width, height)
		return nil
	})
}

// resetViewport computes the letterbox viewport for the given surface
// size and the scene's aspect ratio, if it declares one.
func (c *Context) resetViewport(width, height int) {
	vw, vh := float32(width), float32(height)
	x, y := float32(0), float32(0)
	if ar := c.sceneAspect; ar[0] > 0 && ar[1] > 0 {
		want := float32(ar[0]) / float32(ar[1])
		have := vw / vh
		switch {
		case have > want:
			w := vh * want
			x = (vw - w) / 2
			vw = w
		case have < want:
			h := vw / want
			y = (vh - h) / 2
			vh = h
		}
	}
	c.viewport = gpu.Viewport{X: x, Y: y, Width: vw, Height: vh, MaxDepth: 1}
	c.scissor = gpu.Scissor{X: int(x), Y: int(y), Width: int(vw), Height: int(vh)}
}

// PrepareDraw runs the pre-draw half of a frame at time t: the
// release/prefetch flush followed by the update pass.
func (c *Context) PrepareDraw(t float64) error {
	return c.exec(func() error { return c.prepareDraw(t) })
}

func (c *Context) prepareDraw(t float64) error {
	if c.graph == nil {
		return newErr(errs.InvalidUsage, "no scene attached")
	}
	c.frame = t
	if err := c.graph.Visit(c.root, true, t); err != nil {
		return err
	}
	if err := c.graph.HonorReleasePrefetch(t, c); err != nil {
		return err
	}
	if err := c.ctx.BeginUpdate(); err != nil {
		return err
	}
	err := c.graph.Update(c.root, t, c)
	if eerr := c.ctx.EndUpdate(); err == nil {
		err = eerr
	}
	return err
}

// Draw renders the frame at time t: prepare, then a clear pass over the
// default rendertarget, the scene's draw, and (when enabled) the HUD in
// a load-variant pass.
func (c *Context) Draw(t float64) error {
	return c.exec(func() error {
		if err := c.prepareDraw(t); err != nil {
			return err
		}
		mvDepth, prDepth := c.mv.depth(), c.pr.depth()

		cb, err := c.ctx.BeginDraw()
		if err != nil {
			return err
		}
		c.cmd = cb
		cb.SetViewport(c.viewport)
		cb.SetScissor(c.scissor)

		if err := c.ctx.BeginRenderPass(cb, c.rts.top().rt, true); err != nil {
			c.ctx.EndDraw()
			return err
		}
		c.rts.top().cleared = true
		derr := c.graph.Draw(c.root, c)
		if err := c.ctx.EndRenderPass(cb); derr == nil {
			derr = err
		}

		if derr == nil && c.config.HUD && c.hud != nil {
			// HUD re-enters the default target without clearing.
			if err := c.ctx.BeginRenderPass(cb, c.rts.top().rt, false); err != nil {
				derr = err
			} else {
				c.hud(c)
				if err := c.ctx.EndRenderPass(cb); err != nil {
					derr = err
				}
			}
		}

		if err := c.ctx.EndDraw(); derr == nil {
			derr = err
		}
		c.cmd = nil

		// The stacks must be balanced whatever happened inside.
		if c.mv.depth() != mvDepth || c.pr.depth() != prDepth {
			return newErr(errs.Bug, "unbalanced matrix stack after draw")
		}
		return derr
	})
}

// SetHUD installs the HUD callback invoked after the main pass when the
// configuration enables it.
func (c *Context) SetHUD(f func(*Context)) {
	c.exec(func() error { c.hud = f; return nil })
}

// SetLogger replaces the engine's log sink. Passing nil restores the
// default.
func (c *Context) SetLogger(f func(level logx.Level, msg string)) {
	if f == nil {
		logx.SetSink(nil)
		return
	}
	logx.SetSink(logx.Func(f))
}

// DrawTime reports the GPU time spent on the most recent frame.
func (c *Context) DrawTime() (float64, error) {
	var t float64
	err := c.exec(func() error {
		var err error
		t, err = c.ctx.QueryDrawTime()
		return err
	})
	return t, err
}

// Gpu returns the GPU context. Worker-side callees (node dispatch) use
// this during prepare/update/draw.
func (c *Context) Gpu() gpu.GpuCtx { return c.ctx }

// Cmd returns the command buffer of the in-progress frame. It is valid
// only inside the draw bracket.
func (c *Context) Cmd() gpu.CmdBuffer { return c.cmd }

// ModelView returns the top of the modelview stack.
func (c *Context) ModelView() *linear.M4 { return c.mv.top() }

// Projection returns the top of the projection stack.
func (c *Context) Projection() *linear.M4 { return c.pr.top() }

// Viewport returns the current letterbox viewport.
func (c *Context) Viewport() gpu.Viewport { return c.viewport }

// FrameTime returns the time of the frame being processed.
func (c *Context) FrameTime() float64 { return c.frame }
