package render

// Op names how the browser applies a Patch.
type Op string

// Patch operations.
const (
	// OpReplace sets the inner HTML of Target.
	OpReplace Op = "replace"
	// OpReconcile applies indexed Changes to the elements under Target, in document order.
	OpReconcile Op = "reconcile"
	// OpInner sets the inner HTML of the single element matched by Target.
	OpInner Op = "inner"
	// OpAttrs sets Attrs on every element matched by Target.
	OpAttrs Op = "attrs"
)

// Patch is one DOM mutation sent to the browser.
type Patch struct {
	Op      Op                `json:"op"`
	Target  string            `json:"target"`
	HTML    string            `json:"html,omitempty"`
	Changes []Change          `json:"changes,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// Change updates the element at Index of the container's descendant list.
// Text is set only when the element's text content must be replaced.
type Change struct {
	Index int               `json:"index"`
	Text  *string           `json:"text,omitempty"`
	Attrs map[string]string `json:"attrs,omitempty"`
}
