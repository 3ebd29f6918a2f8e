package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// handleCreateSession handles session creation requests
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Product.ID == "" || req.Product.URL == "" {
		s.writeErrorResponse(w, "Missing required fields: product.id, product.url", http.StatusBadRequest)
		return
	}

	session, err := s.sessions.Create(req.Product, []byte(req.InitialMarkup), req.CardEmbed)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Session creation error: %v", err), http.StatusBadRequest)
		return
	}

	s.writeResponse(w, &CreateSessionResponse{
		Success:   true,
		SessionID: session.ID,
	})
}

// handleDeleteSession handles session teardown requests
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.sessions.Delete(id) {
		s.writeErrorResponse(w, "Unknown session", http.StatusNotFound)
		return
	}
	s.writeResponse(w, map[string]interface{}{"success": true})
}

// handleState handles session state requests
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(mux.Vars(r)["id"])
	if !ok {
		s.writeErrorResponse(w, "Unknown session", http.StatusNotFound)
		return
	}

	s.writeResponse(w, &StateResponse{
		Success: true,
		State:   session.State(),
		Cached:  session.CacheLen(),
	})
}

// handleSelect handles selection resolution requests
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(mux.Vars(r)["id"])
	if !ok {
		s.writeErrorResponse(w, "Unknown session", http.StatusNotFound)
		return
	}

	var req SelectRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ValueID == "" {
		s.writeErrorResponse(w, "Missing required field: value_id", http.StatusBadRequest)
		return
	}

	if err := session.Select(r.Context(), req.ValueID); err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Resolution error: %v", err), http.StatusBadRequest)
		return
	}

	state := session.State()
	s.writeResponse(w, &SelectResponse{
		Success:      true,
		VariantParam: state.VariantParam,
		Path:         state.Path,
	})
}

// handleHover handles hover intent requests
func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(mux.Vars(r)["id"])
	if !ok {
		s.writeErrorResponse(w, "Unknown session", http.StatusNotFound)
		return
	}

	var req HoverRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ValueID == "" {
		s.writeErrorResponse(w, "Missing required field: value_id", http.StatusBadRequest)
		return
	}

	session.Hover(req.ValueID)
	s.writeResponse(w, map[string]interface{}{"success": true})
}

// handleHoverCancel handles hover cancellation requests
func (s *Server) handleHoverCancel(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(mux.Vars(r)["id"])
	if !ok {
		s.writeErrorResponse(w, "Unknown session", http.StatusNotFound)
		return
	}

	var req HoverRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	session.HoverCancel(req.ValueID)
	s.writeResponse(w, map[string]interface{}{"success": true})
}
