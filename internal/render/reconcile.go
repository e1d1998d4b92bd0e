package render

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Diff is the result of reconciling a rendered tree with freshly generated markup.
type Diff struct {
	Changes []Change
	// ShapeMismatch is set when the two trees have a different number of elements.
	// Reconcile still patches the common prefix and ignores the rest.
	ShapeMismatch bool
}

// Reconcile patches cur in place so its text and attributes follow next. Both are
// containers; their descendant elements are paired by document order. For every pair
// that is not deeply equal, the text content is copied when next's first child is a
// non-blank text node (or next has no children), and every attribute of next is copied
// onto cur. Nodes are never added or removed and attributes missing from next are kept.
func Reconcile(cur, next *html.Node) Diff {
	curEls := elements(cur)
	nextEls := elements(next)

	diff := Diff{ShapeMismatch: len(curEls) != len(nextEls)}
	n := len(nextEls)
	if len(curEls) < n {
		n = len(curEls)
	}

	for i := 0; i < n; i++ {
		c, nx := curEls[i], nextEls[i]
		if nodesEqual(c, nx) {
			continue
		}
		change := Change{Index: i}
		if copiesText(nx) {
			text := textContent(nx)
			setText(c, text)
			change.Text = &text
		}
		if len(nx.Attr) > 0 {
			change.Attrs = make(map[string]string, len(nx.Attr))
			for _, a := range nx.Attr {
				setAttr(c, a.Key, a.Val)
				change.Attrs[a.Key] = a.Val
			}
		}
		if change.Text != nil || change.Attrs != nil {
			diff.Changes = append(diff.Changes, change)
		}
	}
	return diff
}

// elements lists every descendant element of root in document order. The slice is
// taken before any mutation, so a text replacement on an ancestor does not shift it.
func elements(root *html.Node) []*html.Node {
	return goquery.NewDocumentFromNode(root).Find("*").Nodes
}

func copiesText(n *html.Node) bool {
	first := n.FirstChild
	if first == nil {
		return true
	}
	return first.Type == html.TextNode && strings.TrimSpace(first.Data) != ""
}

// nodesEqual compares two subtrees the way the DOM's isEqualNode does: same type,
// name, attribute set (in any order) and equal children in order.
func nodesEqual(a, b *html.Node) bool {
	if a.Type != b.Type || a.Data != b.Data || a.Namespace != b.Namespace {
		return false
	}
	if !attrsEqual(a.Attr, b.Attr) {
		return false
	}
	ac, bc := a.FirstChild, b.FirstChild
	for ac != nil && bc != nil {
		if !nodesEqual(ac, bc) {
			return false
		}
		ac, bc = ac.NextSibling, bc.NextSibling
	}
	return ac == nil && bc == nil
}

func attrsEqual(a, b []html.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(attr html.Attribute) string { return attr.Namespace + ":" + attr.Key }
	as := make([]html.Attribute, len(a))
	bs := make([]html.Attribute, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Slice(as, func(i, j int) bool { return key(as[i]) < key(as[j]) })
	sort.Slice(bs, func(i, j int) bool { return key(bs[i]) < key(bs[j]) })
	for i := range as {
		if key(as[i]) != key(bs[i]) || as[i].Val != bs[i].Val {
			return false
		}
	}
	return true
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// setText replaces every child of n with a single text node.
func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// newContainer returns a detached <div> to hold parsed fragments.
func newContainer() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

// parseInto parses markup as the children of a fresh container.
func parseInto(markup string) (*html.Node, error) {
	root := newContainer()
	nodes, err := html.ParseFragment(strings.NewReader(markup), root)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// innerHTML serializes the children of n.
func innerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&sb, c)
	}
	return sb.String()
}
