package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"sync"
	"sync/atomic"
	"time"

	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/metrics"
	"github.com/windoze95/saltybytes-planner/internal/planner"
	"github.com/windoze95/saltybytes-planner/internal/remote"
	"github.com/windoze95/saltybytes-planner/internal/render"
	"github.com/windoze95/saltybytes-planner/internal/repository"
	"github.com/windoze95/saltybytes-planner/internal/service"
	"github.com/windoze95/saltybytes-planner/internal/state"
	"go.uber.org/zap"
)

// intentTimeout bounds one intent. Each remote call inside it has its own, shorter budget.
const intentTimeout = 60 * time.Second

// Deps are the collaborators shared by every session.
type Deps struct {
	Hub            *Hub
	Store          repository.SnapshotRepo
	Recipes        remote.RecipeProvider
	Nutrition      remote.NutritionProvider
	Messages       *config.Messages
	ResultsPerPage int
	// ModalCloseDelay is how long the dialogue and the upload result stay visible.
	ModalCloseDelay time.Duration
}

// Shell is the markup of every surface when the page is first served.
type Shell struct {
	Recipe    template.HTML
	Bookmarks template.HTML
	Calendar  template.HTML
	KeyNotice template.HTML
	Upload    template.HTML
	HasKey    bool
}

// Session is one browser tab's planner. Intents run one at a time, in arrival order,
// on the session's own goroutine, which is the only one touching its state.
type Session struct {
	ID       string
	ClientID string

	hub     *Hub
	svc     *service.PlannerService
	views   *render.Views
	machine *planner.Machine
	msgs    *config.Messages
	delay   time.Duration
	log     *zap.Logger

	// activeID is the recipe id of the URL fragment.
	activeID   string
	uploadRows int
	// resetTimer puts the upload form back; its job is dropped once the session closes.
	resetTimer *time.Timer
	shell      Shell

	jobs      chan func()
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	lastSeen  atomic.Int64
}

// NewSession restores the client's persisted planner, renders the initial surfaces
// and starts the intent loop.
func NewSession(id, clientID string, deps Deps) (*Session, error) {
	st := state.New(deps.ResultsPerPage)
	svc := service.NewPlannerService(st, deps.Store, clientID, deps.Recipes, deps.Nutrition)
	if err := svc.Init(); err != nil {
		return nil, fmt.Errorf("failed to restore planner: %w", err)
	}

	delay := deps.ModalCloseDelay
	if delay <= 0 {
		delay = config.ModalCloseDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:         id,
		ClientID:   clientID,
		hub:        deps.Hub,
		svc:        svc,
		views:      render.NewViews(deps.Messages),
		msgs:       deps.Messages,
		delay:      delay,
		log:        logger.WithSession(id, clientID),
		uploadRows: config.DefaultIngredientRows,
		jobs:       make(chan func(), 64),
		ctx:        ctx,
		cancel:     cancel,
	}
	s.machine = planner.New(s.views.Calendar, s.dropOnDay)
	s.touch()

	if err := s.bootstrap(); err != nil {
		cancel()
		return nil, err
	}

	go s.loop()
	return s, nil
}

func (s *Session) bootstrap() error {
	st := s.svc.State
	if _, err := s.views.Bookmarks.Render(render.BookmarkList(st.Bookmarks, "")); err != nil {
		return err
	}
	if _, err := s.views.Calendar.Render(st.WeeklyPlan); err != nil {
		return err
	}
	if _, err := s.views.Key.Render(st.UserKey); err != nil {
		return err
	}
	if _, err := s.views.Upload.Render(s.uploadRows); err != nil {
		return err
	}
	s.shell = Shell{
		Recipe:    template.HTML(s.views.Recipe.RenderMessage(s.msgs.Views.RecipeStart).HTML),
		Bookmarks: template.HTML(s.views.Bookmarks.HTML()),
		Calendar:  template.HTML(s.views.Calendar.HTML()),
		KeyNotice: template.HTML(s.views.Key.HTML()),
		Upload:    template.HTML(s.views.Upload.HTML()),
		HasKey:    st.UserKey != "",
	}
	return nil
}

// Shell returns the markup the page was first served with.
func (s *Session) Shell() Shell {
	return s.shell
}

func (s *Session) loop() {
	for {
		select {
		case job := <-s.jobs:
			job()
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) enqueue(job func()) bool {
	select {
	case s.jobs <- job:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// Do runs fn on the session goroutine and waits for it. It returns false when the
// session is closed.
func (s *Session) Do(fn func()) bool {
	done := make(chan struct{})
	if !s.enqueue(func() {
		fn()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// Submit queues one raw message from the browser.
func (s *Session) Submit(data []byte) {
	s.touch()
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError("invalid message format")
		return
	}
	s.enqueue(func() { s.dispatch(msg) })
}

// ExportWorkbook builds the .xlsx export on the session goroutine.
func (s *Session) ExportWorkbook() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if !s.Do(func() { data, err = s.svc.ExportWorkbook() }) {
		return nil, errors.New("session closed")
	}
	return data, err
}

// Close stops the intent loop. Queued intents are dropped.
func (s *Session) Close() {
	s.closeOnce.Do(s.cancel)
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.ctx.Err() != nil
}

// LastSeen is the time of the latest intent or lookup.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) dispatch(msg WSMessage) {
	ctx, cancel := context.WithTimeout(s.ctx, intentTimeout)
	defer cancel()

	s.log.Debug("received ws message", zap.String("type", msg.Type))

	var err error
	switch msg.Type {
	case MsgTypeNavigate:
		var p NavigatePayload
		if err = decode(msg.Payload, &p); err == nil {
			s.navigate(ctx, p.ID)
		}
	case MsgTypeSearch:
		var p SearchPayload
		if err = decode(msg.Payload, &p); err == nil {
			s.search(ctx, p.Query)
		}
	case MsgTypePage:
		var p PagePayload
		if err = decode(msg.Payload, &p); err == nil {
			s.page(p.Page)
		}
	case MsgTypeSort:
		var p SortPayload
		if err = decode(msg.Payload, &p); err == nil {
			err = s.sort(ctx, p.By)
		}
	case MsgTypeServings:
		var p ServingsPayload
		if err = decode(msg.Payload, &p); err == nil {
			s.servings(p.Servings)
		}
	case MsgTypeBookmark:
		s.bookmark()
	case MsgTypeUpload:
		var p UploadPayload
		if err = decode(msg.Payload, &p); err == nil {
			s.upload(ctx, p.Fields)
		}
	case MsgTypeUploadAddRow:
		s.resizeUpload(1)
	case MsgTypeUploadRemoveRow:
		s.resizeUpload(-1)
	case MsgTypeShoppingList:
		s.shoppingList()
	case MsgTypeCalories:
		s.calories(ctx)
	case MsgTypeCalendarAdd:
		s.calendarAdd()
	case MsgTypeCalendarEmptyDay:
		s.calendarEmptyDay()
	case MsgTypeCalendarClear:
		s.calendarClear()
	case MsgTypeDayDoubleClick:
		var p DoubleClickPayload
		if err = decode(msg.Payload, &p); err == nil {
			err = s.show(s.machine.DoubleClick(p.Day, p.X, p.Y))
		}
	case MsgTypeClick:
		var p DayPayload
		if err = decode(msg.Payload, &p); err == nil {
			s.emitPatches(s.machine.Click(p.Day))
		}
	case MsgTypeDragStart:
		var p DragStartPayload
		if err = decode(msg.Payload, &p); err == nil {
			err = s.dragStart(p)
		}
	case MsgTypeDragOver:
		var p DayPayload
		if err = decode(msg.Payload, &p); err == nil {
			err = s.show(s.machine.DragOver(p.Day))
		}
	case MsgTypeDropCalendar:
		var p DropPayload
		if err = decode(msg.Payload, &p); err == nil {
			err = s.show(s.machine.Drop([]byte(p.Data)))
		}
	case MsgTypeDropRecipe:
		var p DropPayload
		if err = decode(msg.Payload, &p); err == nil {
			s.dropOnRecipe(p.Data)
		}
	case MsgTypeDragAbort:
		err = s.show(s.machine.DragAbort())
	case MsgTypeSaveKey:
		var p KeyPayload
		if err = decode(msg.Payload, &p); err == nil {
			s.saveKey(p.Key)
		}
	case MsgTypeDeleteKey:
		s.deleteKey()
	default:
		metrics.SessionIntents.WithLabelValues("unknown", metrics.OutcomeError).Inc()
		s.sendError("unknown message type: " + msg.Type)
		return
	}

	if err != nil {
		s.log.Warn("intent failed", zap.String("type", msg.Type), zap.Error(err))
		metrics.SessionIntents.WithLabelValues(msg.Type, metrics.OutcomeError).Inc()
		s.sendError(err.Error())
		return
	}
	metrics.SessionIntents.WithLabelValues(msg.Type, metrics.OutcomeOK).Inc()
}

func decode(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 {
		return errors.New("payload is required")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func (s *Session) emit(msgType string, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		s.log.Error("failed to encode ws message", zap.String("type", msgType), zap.Error(err))
		return
	}
	s.hub.Broadcast <- &RoomMessage{RoomID: s.ID, Message: data}
}

func (s *Session) emitPatches(patches []render.Patch) {
	if len(patches) == 0 {
		return
	}
	s.emit(MsgTypePatches, PatchesPayload{Patches: patches})
}

// show sends whatever the surfaces already applied, then reports err.
func (s *Session) show(patches []render.Patch, err error) error {
	s.emitPatches(patches)
	return err
}

func (s *Session) sendError(message string) {
	s.emit(MsgTypeError, ErrorPayload{Message: message})
}

// frame collects the patches of one visible step of a flow.
type frame struct {
	s       *Session
	patches []render.Patch
}

func (s *Session) newFrame() *frame {
	return &frame{s: s}
}

func (f *frame) put(patches ...render.Patch) {
	f.patches = append(f.patches, patches...)
}

// add appends rendered patches. A template failure is logged and the surface is
// left as it was.
func (f *frame) add(patches []render.Patch, err error) {
	if err != nil {
		f.s.log.Error("failed to render surface", zap.Error(err))
		return
	}
	f.put(patches...)
}

// notify shows p in the dialogue window, which hides itself after the modal delay.
func (f *frame) notify(p render.Patch) {
	f.put(p, render.ShowDialogue(f.s.delay))
}

func (f *frame) flush() {
	f.s.emitPatches(f.patches)
	f.patches = nil
}
