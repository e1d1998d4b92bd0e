package ws

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/render"
	"github.com/windoze95/saltybytes-planner/internal/service"
	"go.uber.org/zap"
)

// StartupPatches set the page controls that depend on the restored state.
func (s *Session) StartupPatches() []render.Patch {
	var patches []render.Patch
	s.Do(func() {
		patches = render.KeyControls(s.svc.State.UserKey != "")
		patches = append(patches, render.SortButtons(len(s.svc.State.Search.Results) > 0)...)
	})
	return patches
}

func (s *Session) previews() render.PreviewList {
	return render.PreviewList{Items: s.svc.CurrentPage(), ActiveID: s.activeID}
}

func (s *Session) bookmarks() render.PreviewList {
	return render.BookmarkList(s.svc.State.Bookmarks, s.activeID)
}

func (s *Session) pagination() render.Pagination {
	return render.Pagination{Page: s.svc.State.Search.Page, NumPages: s.svc.State.NumPages()}
}

// navigate shows the recipe named by the URL fragment.
func (s *Session) navigate(ctx context.Context, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	s.activeID = id
	st := s.svc.State

	f := s.newFrame()
	f.put(s.views.Recipe.RenderSpinner())
	if len(st.Search.Results) > 0 {
		f.add(s.views.Results.Update(s.previews()))
	}
	if len(st.Bookmarks) > 0 {
		f.add(s.views.Bookmarks.Update(s.bookmarks()))
	}
	f.flush()

	if err := s.svc.LoadRecipe(ctx, id); err != nil {
		s.log.Info("recipe not loaded", zap.String("recipe_id", id), zap.Error(err))
		f.put(s.views.Recipe.RenderError(err.Error()))
		f.flush()
		return
	}
	f.add(s.views.Recipe.Render(st.Recipe))
	f.flush()
}

func (s *Session) search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	f := s.newFrame()
	f.put(s.views.Results.RenderSpinner())
	f.flush()

	if err := s.svc.LoadSearchResults(ctx, query); err != nil {
		f.put(s.views.Results.RenderError(err.Error()))
		f.flush()
		return
	}
	f.add(s.views.Results.Render(s.previews()))
	f.put(render.SortButtons(len(s.svc.State.Search.Results) > 0)...)
	f.add(s.views.Pagination.Render(s.pagination()))
	f.flush()
}

func (s *Session) page(n int) {
	f := s.newFrame()
	s.svc.GetPage(n)
	f.add(s.views.Results.Render(s.previews()))
	f.add(s.views.Pagination.Render(s.pagination()))
	f.flush()
}

func (s *Session) sort(ctx context.Context, by string) error {
	var byTime bool
	switch by {
	case SortByTime:
		byTime = true
	case SortByIngredients:
	default:
		return fmt.Errorf("unknown sort order %q", by)
	}

	f := s.newFrame()
	f.put(s.views.Results.RenderSpinner())
	f.flush()

	if err := s.svc.SortResults(ctx, byTime); err != nil {
		f.put(s.views.Results.RenderError(err.Error()))
		f.flush()
		return nil
	}
	f.add(s.views.Results.Render(s.previews()))
	f.add(s.views.Pagination.Render(s.pagination()))
	f.flush()
	return nil
}

func (s *Session) servings(n int) {
	if !s.svc.State.HasRecipe() {
		return
	}
	s.svc.UpdateServings(n)
	f := s.newFrame()
	f.add(s.views.Recipe.Update(s.svc.State.Recipe))
	f.flush()
}

func (s *Session) bookmark() {
	f := s.newFrame()
	if err := s.svc.ToggleBookmark(); err != nil {
		var nf *service.NotFoundLocalError
		if errors.As(err, &nf) {
			return
		}
		f.notify(s.views.Dialogue.RenderError(err.Error()))
		f.flush()
		return
	}
	f.add(s.views.Recipe.Update(s.svc.State.Recipe))
	f.add(s.views.Bookmarks.Render(s.bookmarks()))
	f.flush()
}

func (s *Session) upload(ctx context.Context, fields map[string]string) {
	values := make(url.Values, len(fields))
	for k, v := range fields {
		values.Set(k, v)
	}
	form := models.ParseUploadValues(values)

	f := s.newFrame()
	f.put(s.views.Upload.RenderSpinner())
	f.flush()

	if err := s.svc.UploadRecipe(ctx, form); err != nil {
		s.log.Info("upload rejected", zap.Error(err))
		f.put(s.views.Upload.RenderError(err.Error()))
		f.flush()
		s.scheduleUploadReset(false)
		return
	}

	r := s.svc.State.Recipe
	s.activeID = r.ID
	f.put(s.views.Upload.RenderMessage(""))
	f.add(s.views.Recipe.Render(r))
	f.add(s.views.Bookmarks.Render(s.bookmarks()))
	f.flush()
	s.emit(MsgTypeSetHash, NavigatePayload{ID: r.ID})
	s.scheduleUploadReset(true)
}

// scheduleUploadReset brings the empty form back after the modal delay and, after a
// successful upload, closes the window.
func (s *Session) scheduleUploadReset(closeWindow bool) {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.resetTimer = time.AfterFunc(s.delay, func() {
		s.enqueue(func() { s.resetUpload(closeWindow) })
	})
}

func (s *Session) resetUpload(closeWindow bool) {
	s.uploadRows = config.DefaultIngredientRows
	f := s.newFrame()
	f.add(s.views.Upload.Render(s.uploadRows))
	if closeWindow {
		f.put(render.CloseModal(render.SelUpload, "add-recipe-window")...)
	}
	f.flush()
}

func (s *Session) resizeUpload(delta int) {
	rows := render.ClampRows(s.uploadRows + delta)
	if rows == s.uploadRows {
		return
	}
	s.uploadRows = rows
	f := s.newFrame()
	f.add(s.views.Upload.Render(rows))
	f.flush()
}

func (s *Session) shoppingList() {
	f := s.newFrame()
	lines, ok := s.svc.ShoppingList()
	if !ok {
		f.notify(s.views.Dialogue.RenderError(s.msgs.Dialogue.ShoppingNoRecipe))
		f.flush()
		return
	}
	f.add(s.views.Shopping.Render(lines))
	f.notify(s.views.Dialogue.RenderMessage(s.msgs.Dialogue.ShoppingListSuccess))
	f.flush()
}

func (s *Session) calories(ctx context.Context) {
	f := s.newFrame()
	if !s.svc.State.HasRecipe() {
		f.notify(s.views.Dialogue.RenderError(s.msgs.Dialogue.CaloriesNoRecipe))
		f.flush()
		return
	}
	f.put(s.views.Dialogue.RenderSpinner(), render.ShowDialogue(0))
	f.flush()

	n, err := s.svc.EstimateCaloriesPerServing(ctx)
	if err != nil {
		f.notify(s.views.Dialogue.RenderError(err.Error()))
		f.flush()
		return
	}
	f.notify(s.views.Dialogue.RenderMessage(s.msgs.Dialogue.CaloriesSuccess))
	f.add(s.views.Calories.Render(n))
	f.flush()
}

// calendarAdd puts the displayed recipe on the selected day.
func (s *Session) calendarAdd() {
	day, ok := s.machine.SelectedDay()
	if !ok {
		return
	}
	f := s.newFrame()
	f.put(s.machine.Deselect()...)
	if err := s.svc.AssignCurrentRecipe(day); err != nil {
		var nf *service.NotFoundLocalError
		if errors.As(err, &nf) {
			f.notify(s.views.Dialogue.RenderError(s.msgs.Views.CalendarNoRecipe))
		} else {
			f.notify(s.views.Dialogue.RenderError(err.Error()))
		}
		f.flush()
		return
	}
	s.renderCalendar(f)
	f.flush()
}

func (s *Session) calendarEmptyDay() {
	day, ok := s.machine.SelectedDay()
	if !ok {
		return
	}
	f := s.newFrame()
	f.put(s.machine.Deselect()...)
	if err := s.svc.EmptyDay(day); err != nil {
		f.notify(s.views.Dialogue.RenderError(err.Error()))
		f.flush()
		return
	}
	s.renderCalendar(f)
	f.flush()
}

func (s *Session) calendarClear() {
	f := s.newFrame()
	if err := s.svc.ClearWeeklyPlan(); err != nil {
		f.notify(s.views.Dialogue.RenderError(err.Error()))
		f.flush()
		return
	}
	f.put(s.machine.Deselect()...)
	f.notify(s.views.Dialogue.RenderMessage(s.msgs.Dialogue.PlanEmptied))
	s.renderCalendar(f)
	f.flush()
}

func (s *Session) renderCalendar(f *frame) {
	f.add(s.views.Calendar.Render(s.svc.State.WeeklyPlan))
	s.machine.Reset()
}

// dropOnDay is the planner machine's DropFunc.
func (s *Session) dropOnDay(day int, payload models.DragPayload) ([]render.Patch, error) {
	if err := s.svc.UpdateWeeklyPlan(day, payload); err != nil {
		return nil, err
	}
	patches, err := s.views.Calendar.Render(s.svc.State.WeeklyPlan)
	if err != nil {
		return nil, err
	}
	s.machine.Reset()
	return patches, nil
}

func (s *Session) dragStart(p DragStartPayload) error {
	var (
		data    []byte
		patches []render.Patch
		err     error
	)
	switch p.Source {
	case DragFromRecipe:
		if !s.svc.State.HasRecipe() {
			return nil
		}
		data, err = models.RecipeDrag(s.svc.State.Recipe).Encode()
	case DragFromDay:
		data, patches, err = s.machine.DragStart(p.Day)
	default:
		return fmt.Errorf("unknown drag source %q", p.Source)
	}
	if err != nil {
		return err
	}
	s.emitPatches(patches)
	s.emit(MsgTypeDragData, DragDataPayload{Data: string(data)})
	return nil
}

// dropOnRecipe opens the recipe of a weekly-plan day dropped on the recipe view.
func (s *Session) dropOnRecipe(data string) {
	payload, err := models.ParseDragPayload([]byte(data))
	if err != nil || payload.Kind != models.DragDaySwap || payload.Recipe.IsZero() {
		return
	}
	s.emit(MsgTypeSetHash, NavigatePayload{ID: payload.Recipe.ID, Load: true})
}

func (s *Session) saveKey(key string) {
	f := s.newFrame()
	if err := s.svc.SaveKey(key); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			f.notify(s.views.Dialogue.RenderError(s.msgs.Key.Rejected))
		} else {
			f.notify(s.views.Dialogue.RenderError(err.Error()))
		}
		f.flush()
		return
	}
	s.keyChanged(f)
	f.notify(s.views.Dialogue.RenderMessage(s.msgs.Key.Saved))
	f.put(render.CloseModal(render.SelKeyWindow, "key__window")...)
	f.flush()
}

func (s *Session) deleteKey() {
	f := s.newFrame()
	if err := s.svc.DeleteKey(); err != nil {
		f.notify(s.views.Dialogue.RenderError(err.Error()))
		f.flush()
		return
	}
	s.keyChanged(f)
	f.notify(s.views.Dialogue.RenderMessage(s.msgs.Key.Deleted))
	f.put(render.CloseModal(render.SelConfirmKey, "confirm__window")...)
	f.flush()
}

func (s *Session) keyChanged(f *frame) {
	st := s.svc.State
	f.add(s.views.Key.Render(st.UserKey))
	f.put(render.KeyControls(st.UserKey != "")...)
	f.add(s.views.Bookmarks.Render(s.bookmarks()))
	if st.HasRecipe() {
		f.add(s.views.Recipe.Update(st.Recipe))
	}
}
