// SPDX-License-Identifier: Unlicense OR MIT

// Package kernel wires the independently-testable packages of this
// module into the single-threaded cooperative frame loop spec.md §2 and
// §4.H describe: Update (reactive) -> Build (widget) -> Layout (layout)
// -> Paint (dlist + input hit-index) -> Render (app.Platform), short-
// circuiting after Update on a quiet frame.
//
// Config follows the teacher's own functional-option idiom (app.Option,
// widget.Option-style constructors elsewhere in this module) rather than
// a struct literal with exported fields, so embedders get sensible
// defaults (dark theme, 1:1 metric, the full built-in highlighter
// language set, a 1000-iteration settle cap) and only override what they
// need.
package kernel

import (
	"time"

	"kernelui.dev/app"
	"kernelui.dev/dlist"
	"kernelui.dev/font/gofont"
	"kernelui.dev/geom"
	"kernelui.dev/input"
	"kernelui.dev/klog"
	"kernelui.dev/layout"
	"kernelui.dev/markdown"
	"kernelui.dev/reactive"
	"kernelui.dev/text"
	"kernelui.dev/theme"
	"kernelui.dev/unit"
	"kernelui.dev/widget"
)

// Config holds the tunables spec.md §6 names as "passed through
// programmatic configuration at initialization": debounce interval for
// streaming markdown sources, the enabled highlighter language subset,
// and the reactive scheduler's settling iteration cap. It has no atlas
// sizing setting; the Platform builds its own text.Atlas.
type Config struct {
	Theme  *theme.Theme
	Metric unit.Metric
	Logger klog.Logger

	// MarkdownDebounce is the default debounce passed to
	// NewMarkdownSource; individual sources may still be built directly
	// against markdown.NewStreamingMarkdown with a different interval.
	MarkdownDebounce time.Duration

	// HighlightLanguages restricts the markdown highlighter to this
	// subset of the built-in set (see markdown.NewHighlighterWithLanguages).
	// Empty means "all built-in languages."
	HighlightLanguages []string

	// IterationCap overrides the reactive scheduler's settling iteration
	// cap (spec.md §5's "maximum settling iteration count"). Zero keeps
	// reactive.Runtime's own default.
	IterationCap int

	// Fonts is the face collection the shaper resolves against. Nil
	// uses font/gofont.Collection(), the module's bundled fallback
	// family.
	Fonts *text.Collection
}

// Option configures a Config.
type Option func(*Config)

func WithTheme(t *theme.Theme) Option { return func(c *Config) { c.Theme = t } }

func WithMetric(m unit.Metric) Option { return func(c *Config) { c.Metric = m } }

func WithLogger(l klog.Logger) Option { return func(c *Config) { c.Logger = l } }

func WithMarkdownDebounce(d time.Duration) Option {
	return func(c *Config) { c.MarkdownDebounce = d }
}

func WithHighlightLanguages(langs ...string) Option {
	return func(c *Config) { c.HighlightLanguages = langs }
}

func WithIterationCap(n int) Option { return func(c *Config) { c.IterationCap = n } }

func WithFonts(fonts *text.Collection) Option { return func(c *Config) { c.Fonts = fonts } }

// NewConfig builds a Config from Options, defaulting to the dark theme, a
// 1:1 density metric, a no-op logger, a 16ms markdown debounce, the full
// built-in highlighter language set, and the bundled gofont collection.
func NewConfig(opts ...Option) Config {
	c := Config{
		Theme:            theme.Dark(),
		Metric:           unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Logger:           klog.Nop(),
		MarkdownDebounce: 16 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Theme == nil {
		c.Theme = theme.Dark()
	}
	if c.Fonts == nil {
		c.Fonts = gofont.Collection()
	}
	return c
}

// Engine owns one UI tree's worth of runtime state -- the reactive
// scheduler, layout tree, display list, input router and hit-test index,
// text system, markdown highlighter, and the Platform it renders
// through -- and drives the five-phase frame loop over it.
type Engine struct {
	cfg Config

	Runtime *reactive.Runtime
	Scope   *reactive.Scope

	Tree    *layout.Tree
	Display *dlist.List
	HitIdx  *input.HitTestIndex
	Router  *input.Router

	Shaper      *text.Shaper
	Fonts       *text.HandleRegistry
	Highlighter *markdown.Highlighter

	Platform app.Platform

	cx   *widget.Context
	root widget.Widget
}

// New wires an Engine rendering through platform.
func New(cfg Config, platform app.Platform) *Engine {
	tree := layout.NewTree()
	idx := input.NewHitTestIndex()
	router := input.NewRouter(tree, idx)
	router.SetLogger(cfg.Logger)
	rt := reactive.NewRuntime(cfg.Logger)
	if cfg.IterationCap > 0 {
		rt.SetMaxIterations(cfg.IterationCap)
	}

	var hl *markdown.Highlighter
	if len(cfg.HighlightLanguages) > 0 {
		hl = markdown.NewHighlighterWithLanguages(cfg.HighlightLanguages)
	} else {
		hl = markdown.NewHighlighter()
	}

	e := &Engine{
		cfg:         cfg,
		Runtime:     rt,
		Scope:       reactive.NewScope(rt),
		Tree:        tree,
		Display:     dlist.NewList(false),
		HitIdx:      idx,
		Router:      router,
		Shaper:      text.NewShaper(cfg.Fonts),
		Fonts:       text.NewHandleRegistry(),
		Highlighter: hl,
		Platform:    platform,
	}
	e.cx = &widget.Context{
		Tree:    tree,
		Display: e.Display,
		Shaper:  e.Shaper,
		Fonts:   e.Fonts,
		Theme:   cfg.Theme,
		Router:  router,
		Runtime: rt,
		Metric:  cfg.Metric,
	}
	return e
}

// Context returns the widget.Context every widget's RequestLayout/Paint
// call is driven through.
func (e *Engine) Context() *widget.Context { return e.cx }

// NewMarkdownSource builds a markdown.StreamingMarkdown sharing this
// Engine's highlighter and configured debounce interval.
func (e *Engine) NewMarkdownSource() *markdown.StreamingMarkdown {
	return markdown.NewStreamingMarkdown(e.cfg.MarkdownDebounce, e.Highlighter)
}

// SetRoot installs w as the tree's single root widget. Call before the
// first RunFrame.
func (e *Engine) SetRoot(w widget.Widget) {
	e.root = w
	node := w.RequestLayout(e.cx)
	e.Tree.SetRoot(node)
}

// Dispatch routes one already-normalized input event through the
// installed handler tree.
func (e *Engine) Dispatch(ev input.Event) input.Disposition {
	return e.Router.Dispatch(ev)
}

// RunFrame drives one iteration of spec.md §4.H's frame loop: Update
// (reactive), and only if it produced dirty work, Build (re-running
// RequestLayout over the root so widgets reconcile their own retained
// state), Layout (constraining the root to the Platform's current
// logical size), Paint (a fresh display list plus a repopulated
// hit-test index, in paint-tree order per spec.md §5), and Render
// (submitting the display list to the Platform). now is the frame
// timestamp handed to registered AnimationTick-driven work via the
// caller (RunFrame itself does not call AnimationTick callbacks --
// Platform.AnimationTick and Tick, where implemented, own that).
func (e *Engine) RunFrame(now time.Duration) error {
	var renderErr error
	err := e.Runtime.RunFrame(reactive.FrameCallbacks{
		Build: func() {
			if e.root != nil {
				node := e.root.RequestLayout(e.cx)
				e.Tree.SetRoot(node)
			}
		},
		Layout: func() {
			size := e.Platform.LogicalSize()
			e.Tree.Layout(geom.Point{}, layout.Tight(size))
		},
		Paint: func() {
			e.Display.Clear()
			e.HitIdx.Reset()
			if e.root != nil {
				widget.PaintTree(e.cx, e.root)
				widget.InstallHandlers(e.Router, e.root)
				e.populateHitIndex(e.root)
			}
		},
		Render: func() {
			renderErr = e.Platform.Render(e.Display)
		},
	})
	if err != nil {
		return err
	}
	return renderErr
}

// populateHitIndex walks the widget tree in the same paint-tree order as
// PaintTree, recording each widget's current bounds so the router's
// pointer hit-testing (spec.md §4.G) reflects this frame's layout.
func (e *Engine) populateHitIndex(w widget.Widget) {
	e.HitIdx.Add(w.Node(), e.Tree.Bounds(w.Node()))
	if c, ok := w.(widget.Container); ok {
		for _, child := range c.Widgets() {
			e.populateHitIndex(child)
		}
	}
}
