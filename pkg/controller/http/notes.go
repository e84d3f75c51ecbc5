package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
	"github.com/secmon-lab/notepad/pkg/usecase"
	"github.com/secmon-lab/notepad/pkg/utils/errutil"
)

type NoteUseCase = usecase.NoteUseCaseInterface

type listNotesResponse struct {
	Notes []model.Note `json:"notes"`
}

type createNoteRequest struct {
	Content string `json:"content"`
}

type createNoteResponse struct {
	Note model.Note `json:"note"`
}

func sessionUser(w http.ResponseWriter, r *http.Request) (model.UserID, bool) {
	token, ok := auth.TokenFromContext(r.Context())
	if !ok {
		errutil.HandleHTTP(r.Context(), w, goerr.New("no session in authenticated route"), http.StatusInternalServerError)
		return "", false
	}
	return token.UserID, true
}

func listNotesHandler(noteUC NoteUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		notes, err := noteUC.List(r.Context(), userID)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, listNotesResponse{Notes: notes})
	}
}

func createNoteHandler(noteUC NoteUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		var req createNoteRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		note, err := noteUC.Create(r.Context(), userID, req.Content)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, createNoteResponse{Note: *note})
	}
}

func deleteNoteHandler(noteUC NoteUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		id := model.NoteID(chi.URLParam(r, "id"))
		if err := noteUC.Delete(r.Context(), userID, id); err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
