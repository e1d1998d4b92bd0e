package ws

import (
	"encoding/json"

	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/render"
)

// Intent types sent by the browser.
const (
	MsgTypeNavigate         = "navigate"           // the URL fragment changed
	MsgTypeSearch           = "search"             // search form submitted
	MsgTypePage             = "page"               // pagination button clicked
	MsgTypeSort             = "sort"               // sort by cooking time or ingredient count
	MsgTypeServings         = "servings"           // servings +/- clicked
	MsgTypeBookmark         = "bookmark"           // bookmark button on the recipe
	MsgTypeUpload           = "upload"             // add-recipe form submitted
	MsgTypeUploadAddRow     = "upload_add_row"     // one more ingredient row
	MsgTypeUploadRemoveRow  = "upload_remove_row"  // one less ingredient row
	MsgTypeShoppingList     = "shopping_list"      // build the shopping list
	MsgTypeCalories         = "calories"           // estimate calories per serving
	MsgTypeCalendarAdd      = "calendar_add"       // toolbar: put the recipe on the selected day
	MsgTypeCalendarEmptyDay = "calendar_empty_day" // toolbar: empty the selected day
	MsgTypeCalendarClear    = "calendar_clear"     // empty the whole week
	MsgTypeDayDoubleClick   = "day_dblclick"
	MsgTypeClick            = "click"
	MsgTypeDragStart        = "drag_start"
	MsgTypeDragOver         = "drag_over"
	MsgTypeDropCalendar     = "drop_calendar"
	MsgTypeDropRecipe       = "drop_recipe"
	MsgTypeDragAbort        = "drag_abort"
	MsgTypeSaveKey          = "save_key"
	MsgTypeDeleteKey        = "delete_key"
)

// Message types sent to the browser.
const (
	MsgTypePatches   = "patches"   // DOM patches to apply in order
	MsgTypeSetHash   = "navigate"  // set the URL fragment
	MsgTypeDragData  = "drag_data" // payload to carry through the current drag
	MsgTypeError     = "error"     // Error message
	MsgTypeConnected = "connected" // Connection confirmed
)

// WSMessage is the envelope for all messages sent over the planner WebSocket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NavigatePayload names a recipe id. From the server, Load false only rewrites the
// fragment while Load true also makes the browser report it back as a navigate intent.
type NavigatePayload struct {
	ID   string `json:"id"`
	Load bool   `json:"load,omitempty"`
}

// SearchPayload carries the search query.
type SearchPayload struct {
	Query string `json:"query"`
}

// PagePayload carries the page to go to.
type PagePayload struct {
	Page int `json:"page"`
}

// Sort orders.
const (
	SortByTime        = "time"
	SortByIngredients = "ingredients"
)

// SortPayload selects the sort order.
type SortPayload struct {
	By string `json:"by"`
}

// ServingsPayload carries the requested number of servings.
type ServingsPayload struct {
	Servings int `json:"servings"`
}

// UploadPayload carries the add-recipe form fields by input name.
type UploadPayload struct {
	Fields map[string]string `json:"fields"`
}

// DayPayload names a weekly-plan day; 0 means no day.
type DayPayload struct {
	Day int `json:"day"`
}

// DoubleClickPayload is a double click on a day at page coordinates.
type DoubleClickPayload struct {
	Day int `json:"day"`
	X   int `json:"x"`
	Y   int `json:"y"`
}

// Drag sources.
const (
	DragFromRecipe = "recipe"
	DragFromDay    = "day"
)

// DragStartPayload names what the user started dragging.
type DragStartPayload struct {
	Source string `json:"source"`
	Day    int    `json:"day,omitempty"`
}

// DropPayload is the raw drag data the browser received on drop.
type DropPayload struct {
	Data string `json:"data"`
}

// KeyPayload carries a new user key.
type KeyPayload struct {
	Key string `json:"key"`
}

// PatchesPayload carries patches for the page.
type PatchesPayload struct {
	Patches []render.Patch `json:"patches"`
}

// DragDataPayload carries an encoded models.DragPayload.
type DragDataPayload struct {
	Data string `json:"data"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	SessionID string `json:"session_id"`
	HasKey    bool   `json:"has_key"`
	Days      int    `json:"days"`
}

func encode(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{Type: msgType, Payload: raw})
}

func connectedMessage(sessionID string, hasKey bool) []byte {
	msg, _ := encode(MsgTypeConnected, ConnectedPayload{
		SessionID: sessionID,
		HasKey:    hasKey,
		Days:      models.DaysInPlan,
	})
	return msg
}
