package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// View is the capability set every display surface offers.
type View[T any] interface {
	Render(data T) ([]Patch, error)
	Update(data T) ([]Patch, error)
	RenderError(msg string) Patch
	RenderSpinner() Patch
	RenderMessage(msg string) Patch
	HTML() string
}

// Surface owns one container element of the page. It keeps the tree the browser
// currently shows so later updates can be reconciled against it.
type Surface[T any] struct {
	target     string
	markup     func(T) (string, error)
	empty      func(T) bool
	errorMsg   string
	successMsg string

	data T
	root *html.Node
}

var _ View[int] = (*Surface[int])(nil)

// NewSurface creates a surface for the container matched by target. empty may be nil
// when every value of T renders.
func NewSurface[T any](target string, markup func(T) (string, error), empty func(T) bool, errorMsg, successMsg string) *Surface[T] {
	return &Surface[T]{
		target:     target,
		markup:     markup,
		empty:      empty,
		errorMsg:   errorMsg,
		successMsg: successMsg,
	}
}

// Target is the container selector.
func (s *Surface[T]) Target() string {
	return s.target
}

// Data returns the last data rendered or updated.
func (s *Surface[T]) Data() T {
	return s.data
}

// Markup generates the markup for data without touching the container.
func (s *Surface[T]) Markup(data T) (string, error) {
	return s.markup(data)
}

// Render replaces the container with the markup for data. Empty data renders the
// surface's error message instead.
func (s *Surface[T]) Render(data T) ([]Patch, error) {
	if s.empty != nil && s.empty(data) {
		return []Patch{s.RenderError("")}, nil
	}
	markup, err := s.markup(data)
	if err != nil {
		return nil, err
	}
	root, err := parseInto(markup)
	if err != nil {
		return nil, err
	}
	s.data = data
	s.root = root
	return []Patch{s.replace()}, nil
}

// Update reconciles the shown tree with the markup for data, touching only changed
// text and attributes. Before the first render it behaves like Render.
func (s *Surface[T]) Update(data T) ([]Patch, error) {
	if s.root == nil {
		return s.Render(data)
	}
	markup, err := s.markup(data)
	if err != nil {
		return nil, err
	}
	next, err := parseInto(markup)
	if err != nil {
		return nil, err
	}
	s.data = data
	diff := Reconcile(s.root, next)
	if len(diff.Changes) == 0 {
		return nil, nil
	}
	return []Patch{{Op: OpReconcile, Target: s.target, Changes: diff.Changes}}, nil
}

// RenderError shows msg, or the surface's default error message when msg is empty.
func (s *Surface[T]) RenderError(msg string) Patch {
	if msg == "" {
		msg = s.errorMsg
	}
	return s.static("status", statusData{Class: "error", Icon: "alert-triangle", Message: msg})
}

// RenderMessage shows msg, or the surface's default success message when msg is empty.
func (s *Surface[T]) RenderMessage(msg string) Patch {
	if msg == "" {
		msg = s.successMsg
	}
	return s.static("status", statusData{Class: "message", Icon: "smile", Message: msg})
}

// RenderSpinner shows the loading spinner.
func (s *Surface[T]) RenderSpinner() Patch {
	return s.static("spinner", nil)
}

// Clear empties the container.
func (s *Surface[T]) Clear() Patch {
	s.root = newContainer()
	return s.replace()
}

// HTML is the container's current inner markup.
func (s *Surface[T]) HTML() string {
	if s.root == nil {
		return ""
	}
	return innerHTML(s.root)
}

// Find runs selector against the shown tree.
func (s *Surface[T]) Find(selector string) *goquery.Selection {
	if s.root == nil {
		s.root = newContainer()
	}
	return goquery.NewDocumentFromNode(s.root).Find(selector)
}

// InnerOf returns the inner markup of the first element matching selector.
func (s *Surface[T]) InnerOf(selector string) string {
	sel := s.Find(selector)
	if sel.Length() == 0 {
		return ""
	}
	return innerHTML(sel.Get(0))
}

// SetInner replaces the children of the first element matching selector.
func (s *Surface[T]) SetInner(selector, markup string) (Patch, error) {
	sel := s.Find(selector)
	if sel.Length() > 0 {
		n := sel.Get(0)
		nodes, err := html.ParseFragment(strings.NewReader(markup), n)
		if err != nil {
			return Patch{}, err
		}
		setText(n, "")
		for _, c := range nodes {
			n.AppendChild(c)
		}
		markup = innerHTML(n)
	}
	return Patch{Op: OpInner, Target: selector, HTML: markup}, nil
}

// SetAttr sets one attribute on every element matching selector.
func (s *Surface[T]) SetAttr(selector, key, val string) Patch {
	for _, n := range s.Find(selector).Nodes {
		setAttr(n, key, val)
	}
	return Patch{Op: OpAttrs, Target: selector, Attrs: map[string]string{key: val}}
}

type statusData struct {
	Class   string
	Icon    string
	Message string
}

func (s *Surface[T]) static(name string, data interface{}) Patch {
	root := newContainer()
	if markup, err := execute(name, data); err == nil {
		if parsed, err := parseInto(markup); err == nil {
			root = parsed
		}
	}
	s.root = root
	return s.replace()
}

func (s *Surface[T]) replace() Patch {
	return Patch{Op: OpReplace, Target: s.target, HTML: innerHTML(s.root)}
}
