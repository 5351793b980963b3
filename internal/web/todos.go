package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/KasumiMercury/todo-web/internal/task/app/tasklist"
	domainuser "github.com/KasumiMercury/todo-web/internal/task/domain/user"
	"github.com/gorilla/mux"
)

// todoAction runs one task list operation for the resolved session. A missing
// session, at any point, ends on the auth page.
type todoAction func(r *http.Request, view *tasklist.View, principal domainuser.Principal) error

func (h *Handler) withView(w http.ResponseWriter, r *http.Request, action todoAction) (*tasklist.View, bool) {
	resolved, principal, err := h.session(r.Context(), r)
	if err != nil {
		h.logger.DebugContext(r.Context(), "no session for task list", slog.String("error", err.Error()))
		redirect(w, r, "/auth")

		return nil, false
	}

	view := h.tasks.Views.View(resolved.SessionID.String())

	if err := action(r, view, principal); errors.Is(err, tasklist.ErrNoSession) {
		redirect(w, r, "/auth")

		return nil, false
	}

	return view, true
}

// mutate runs action and returns to the list. Failures are already logged by
// the view and otherwise invisible.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, action todoAction) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	if _, ok := h.withView(w, r, action); ok {
		redirect(w, r, "/todos")
	}
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	view, ok := h.withView(w, r, func(r *http.Request, view *tasklist.View, principal domainuser.Principal) error {
		return view.FetchTodos(r.Context(), principal)
	})
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, todosPage, todosPageData{State: view.Snapshot()})
}

func (h *Handler) addTodo(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(r *http.Request, view *tasklist.View, principal domainuser.Principal) error {
		view.SetNewTodo(r.PostForm.Get("title"))

		return view.AddTodo(r.Context(), principal)
	})
}

func (h *Handler) toggleTodo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	current, err := strconv.ParseBool(r.PostForm.Get("is_completed"))
	if err != nil {
		http.Error(w, "is_completed must be true or false", http.StatusBadRequest)

		return
	}

	h.mutate(w, r, func(r *http.Request, view *tasklist.View, principal domainuser.Principal) error {
		return view.ToggleTodoCompletion(r.Context(), principal, mux.Vars(r)["id"], current)
	})
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(r *http.Request, view *tasklist.View, principal domainuser.Principal) error {
		return view.DeleteTodo(r.Context(), principal, mux.Vars(r)["id"])
	})
}

func (h *Handler) startEdit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(r *http.Request, view *tasklist.View, _ domainuser.Principal) error {
		view.StartEditing(mux.Vars(r)["id"], r.PostForm.Get("title"))

		return nil
	})
}

func (h *Handler) saveEdit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(r *http.Request, view *tasklist.View, principal domainuser.Principal) error {
		view.SetEditTitle(r.PostForm.Get("title"))

		return view.SaveEdit(r.Context(), principal, mux.Vars(r)["id"])
	})
}

func (h *Handler) cancelEdit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(_ *http.Request, view *tasklist.View, _ domainuser.Principal) error {
		view.CancelEdit()

		return nil
	})
}
