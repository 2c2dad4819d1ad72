package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/mesh-intelligence/ldmark/pkg/schema"
	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListTypes handles GET /v1/types. The response maps each type code to
// itself, in registration order.
func (s *Server) handleListTypes(w http.ResponseWriter, _ *http.Request) {
	out := types.NewDocument()
	for _, name := range s.registry.TypeNames() {
		out.Set(name, name)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetProperties handles GET /v1/types/{type}/properties.
func (s *Server) handleGetProperties(w http.ResponseWriter, r *http.Request) {
	g, err := s.registry.Create(r.PathValue("type"))
	if err != nil {
		writeError(w, http.StatusNotFound, types.ErrTypeNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, g.Properties())
}

// handleGetDocument handles GET /v1/entities/{id}/document?type=&pretty=.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.generate(w, r)
	if !ok {
		return
	}
	body, err := schema.ToJSON(doc, isTrue(r.URL.Query().Get("pretty")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode document")
		return
	}
	writeBody(w, http.StatusOK, "application/ld+json", body)
}

// handleGetScript handles GET /v1/entities/{id}/script?type=&pretty=.
func (s *Server) handleGetScript(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.generate(w, r)
	if !ok {
		return
	}
	body, err := schema.ToScriptTag(doc, isTrue(r.URL.Query().Get("pretty")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode document")
		return
	}
	writeBody(w, http.StatusOK, "text/html; charset=utf-8", body)
}

// generate loads the entity named by the path and builds its document. The
// type comes from the type query parameter, else the entity's own schema
// type. On failure it writes the error response and returns false.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*types.Document, bool) {
	e, err := s.store.GetEntity(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, types.ErrEntityNotFound), errors.Is(err, types.ErrInvalidID):
		writeError(w, http.StatusNotFound, types.ErrEntityNotFound.Error())
		return nil, false
	case err != nil:
		s.log.Error().Err(err).Msg("loading entity")
		writeError(w, http.StatusInternalServerError, "failed to load entity")
		return nil, false
	}

	typeName := r.URL.Query().Get("type")
	if typeName == "" {
		typeName = e.SchemaType
	}
	if typeName == "" {
		writeError(w, http.StatusNotFound, types.ErrNoSchema.Error())
		return nil, false
	}

	g, err := s.registry.Create(typeName)
	if err != nil {
		writeError(w, http.StatusNotFound, types.ErrTypeNotFound.Error())
		return nil, false
	}
	doc := g.Generate(e)
	s.metrics.RecordDocument(typeName)
	return doc, true
}

// validateResponse is the body of POST /v1/types/{type}/validate.
type validateResponse struct {
	Valid bool                   `json:"valid"`
	Error *types.ValidationError `json:"error,omitempty"`
}

// handleValidate handles POST /v1/types/{type}/validate.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	typeName := r.PathValue("type")
	g, err := s.registry.Create(typeName)
	if err != nil {
		writeError(w, http.StatusNotFound, types.ErrTypeNotFound.Error())
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "reading request body failed")
		return
	}
	doc, err := schema.ParseDocument(data)
	if errors.Is(err, types.ErrNotObject) {
		writeError(w, http.StatusBadRequest, types.ErrNotObject.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := g.Validate(doc); err != nil {
		ve, ok := types.AsValidationError(err)
		if !ok {
			writeError(w, http.StatusInternalServerError, "validation failed")
			return
		}
		s.metrics.RecordValidationFailure(typeName, ve.Code)
		writeJSON(w, http.StatusUnprocessableEntity, validateResponse{Error: ve})
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true})
}

// isTrue interprets a boolean query parameter. Unparseable values are false.
func isTrue(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
