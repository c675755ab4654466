// Package server exposes move-document sessions over HTTP. Every mutating
// handler holds the session's lock for the whole call, so one mutation is in
// flight per document at a time.
package server

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	gcgen "github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg"
	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/gcd"
)

type document struct {
	mu      sync.Mutex
	session *gcgen.Session
}

// Server holds the document sessions by id.
type Server struct {
	mu        sync.RWMutex
	documents map[string]*document
}

func New() *Server {
	return &Server{documents: make(map[string]*document)}
}

// SetupRouter sets up the API routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api/v1")
	{
		api.POST("/documents", s.CreateDocument)
		api.GET("/documents/:id", s.GetDocument)
		api.POST("/documents/:id/moves", s.SubmitMove)
		api.POST("/documents/:id/undo", s.Undo)
		api.POST("/documents/:id/remove", s.Remove)
		api.POST("/documents/:id/clear", s.Clear)
		api.POST("/documents/:id/loop", s.Loop)
		api.POST("/documents/:id/import", s.Import)
		api.GET("/documents/:id/export", s.Export)
	}

	return router
}

func (s *Server) lookup(c *gin.Context) (*document, bool) {
	s.mu.RLock()
	doc, ok := s.documents[c.Param("id")]
	s.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such document"})
	}

	return doc, ok
}

// CreateDocument creates a new empty document session.
func (s *Server) CreateDocument(c *gin.Context) {
	id := uuid.New().String()

	s.mu.Lock()
	s.documents[id] = &document{session: gcgen.NewSession()}
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetDocument returns the records and parsed moves of a document.
func (s *Server) GetDocument(c *gin.Context) {
	doc, ok := s.lookup(c)
	if !ok {
		return
	}

	doc.mu.Lock()
	records := doc.session.Records()
	moves := doc.session.Moves()
	doc.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"records": records, "moves": moves})
}

// SubmitMove appends one move. Coordinates are sent as text and go through
// the same canonicalization as interactive input.
func (s *Server) SubmitMove(c *gin.Context) {
	var req struct {
		X string `json:"x"`
		Y string `json:"y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, ok := s.lookup(c)
	if !ok {
		return
	}

	doc.mu.Lock()
	record, err := doc.session.Submit(req.X, req.Y)
	doc.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// Undo restores the state before the last mutating operation.
func (s *Server) Undo(c *gin.Context) {
	doc, ok := s.lookup(c)
	if !ok {
		return
	}

	doc.mu.Lock()
	restored := doc.session.Undo()
	doc.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"restored": restored})
}

// Remove deletes the records at the given positions.
func (s *Server) Remove(c *gin.Context) {
	var req struct {
		Indices []int `json:"indices"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, ok := s.lookup(c)
	if !ok {
		return
	}

	doc.mu.Lock()
	doc.session.RemoveAt(req.Indices...)
	remaining := len(doc.session.Records())
	doc.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"records": remaining})
}

// Clear empties the document. The confirmation dialog lives on the client.
func (s *Server) Clear(c *gin.Context) {
	doc, ok := s.lookup(c)
	if !ok {
		return
	}

	doc.mu.Lock()
	doc.session.Clear()
	doc.mu.Unlock()

	c.Status(http.StatusNoContent)
}

// Loop appends offset copies of the current records until a limit is hit.
func (s *Server) Loop(c *gin.Context) {
	var req struct {
		DX   float64  `json:"dx"`
		DY   float64  `json:"dy"`
		MaxX *float64 `json:"max_x"`
		MaxY *float64 `json:"max_y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, ok := s.lookup(c)
	if !ok {
		return
	}

	var maxX, maxY gcd.Limit
	if req.MaxX != nil {
		maxX = gcd.Bound(*req.MaxX)
	}
	if req.MaxY != nil {
		maxY = gcd.Bound(*req.MaxY)
	}

	doc.mu.Lock()
	groups, err := doc.session.Loop(req.DX, req.DY, maxX, maxY)
	doc.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups_appended": groups})
}

// Import parses moves out of the posted text.
func (s *Server) Import(c *gin.Context) {
	var req struct {
		Text    string `json:"text"`
		Replace bool   `json:"replace"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, ok := s.lookup(c)
	if !ok {
		return
	}

	doc.mu.Lock()
	imported, skipped, err := doc.session.ImportFrom(strings.NewReader(req.Text), req.Replace)
	doc.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}

// Export returns the wrapped command stream.
func (s *Server) Export(c *gin.Context) {
	doc, ok := s.lookup(c)
	if !ok {
		return
	}

	doc.mu.Lock()
	lines, err := doc.session.ExportLines()
	doc.mu.Unlock()

	if err != nil {
		if errors.Is(err, gcd.ErrEmptyDocument) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": lines})
}
