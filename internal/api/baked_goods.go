package api

import (
	"net/http"

	"github.com/nerrad567/bakery-core/internal/bakery"
)

// deletedMessage is returned by a successful DELETE /baked_goods/{id}.
const deletedMessage = "Baked good deleted successfully"

// handleListBakedGoodsByPrice returns all baked goods, most expensive first.
func (s *Server) handleListBakedGoodsByPrice(w http.ResponseWriter, r *http.Request) {
	goods, err := s.repo.ListBakedGoodsByPriceDesc(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goods)
}

// handleMostExpensiveBakedGood returns the highest-priced baked good, or 404 when there are none.
func (s *Server) handleMostExpensiveBakedGood(w http.ResponseWriter, r *http.Request) {
	good, err := s.repo.MostExpensiveBakedGood(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, good)
}

// handleCreateBakedGood creates a baked good from form fields name, price and bakery_id.
func (s *Server) handleCreateBakedGood(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "invalid form body")
		return
	}

	good, err := bakery.ParseNewBakedGood(r.PostForm)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if err := s.repo.CreateBakedGood(r.Context(), good); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordBakedGoodCreated()
	}
	if s.prices != nil {
		s.prices.WriteBakedGoodPrice(good.BakeryID, good.ID, good.Name, good.Price, good.CreatedAt)
	}
	s.emit(EventBakedGoodCreated, good)

	writeJSON(w, http.StatusCreated, good)
}

// handleDeleteBakedGood removes a baked good.
func (s *Server) handleDeleteBakedGood(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, bakery.ErrBakedGoodNotFound.Error())
		return
	}

	if err := s.repo.DeleteBakedGood(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordBakedGoodDeleted()
	}
	s.emit(EventBakedGoodDeleted, DeletedEvent{ID: id})

	writeJSON(w, http.StatusOK, MessageResponse{Message: deletedMessage})
}
