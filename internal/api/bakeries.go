package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/bakery-core/internal/bakery"
)

// handleListBakeries returns every bakery with its baked goods.
func (s *Server) handleListBakeries(w http.ResponseWriter, r *http.Request) {
	bakeries, err := s.repo.ListBakeries(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bakeries)
}

// handleGetBakery returns one bakery with its baked goods.
func (s *Server) handleGetBakery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, bakery.ErrBakeryNotFound.Error())
		return
	}

	b, err := s.repo.GetBakery(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleUpdateBakery applies a form-encoded partial update.
//
// An unknown bakery is reported as 404 before the form is validated, so the
// response for a missing ID does not depend on the submitted fields.
func (s *Server) handleUpdateBakery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, bakery.ErrBakeryNotFound.Error())
		return
	}

	ctx := r.Context()
	if _, err := s.repo.GetBakery(ctx, id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "invalid form body")
		return
	}
	update, err := bakery.ParseBakeryUpdate(r.PostForm)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	updated, err := s.repo.UpdateBakery(ctx, id, update)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if !update.IsEmpty() {
		if s.metrics != nil {
			s.metrics.RecordBakeryUpdate()
		}
		s.emit(EventBakeryUpdated, updated)
	}

	writeJSON(w, http.StatusOK, updated)
}

// pathID parses the {id} URL parameter. Anything that is not a positive
// integer cannot name a record.
func pathID(r *http.Request) (int64, bool) {
	id, err := bakery.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
