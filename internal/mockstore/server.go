package mockstore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Collections served by the mock store. Unknown collections 404, like
// json-server with a fixed db.
var collections = []string{"users", "products", "cart", "wishlist", "orders"}

// Server is an in-memory stand-in for the generic resource store the
// storefront expects: list, create, partial update and delete per
// collection, JSON bodies, ids assigned on create, equality filtering via
// query parameters. It trusts every payload; there is no authentication.
type Server struct {
	mu   sync.RWMutex
	data map[string][]map[string]any
}

func New() *Server {
	s := &Server{data: make(map[string][]map[string]any)}
	for _, c := range collections {
		s.data[c] = []map[string]any{}
	}
	return s
}

// LoadSeed reads a JSON file mapping collection names to record arrays,
// the same shape as a json-server db.json, and replaces the collections it
// names.
func (s *Server) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed map[string][]map[string]any
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name, records := range seed {
		if _, ok := s.data[name]; !ok {
			return fmt.Errorf("seed file names unknown collection %q", name)
		}
		for _, r := range records {
			if _, ok := r["id"]; !ok {
				r["id"] = uuid.NewString()
			}
		}
		s.data[name] = records
	}
	return nil
}

// Handler returns the HTTP surface of the store.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/:collection", s.list)
	r.GET("/:collection/:id", s.get)
	r.POST("/:collection", s.create)
	r.PATCH("/:collection/:id", s.patch)
	r.DELETE("/:collection/:id", s.remove)

	return r
}

func (s *Server) list(c *gin.Context) {
	records, ok := s.collection(c)
	if !ok {
		return
	}

	filter := c.Request.URL.Query()
	if len(filter) == 0 {
		c.JSON(http.StatusOK, records)
		return
	}

	matched := make([]map[string]any, 0, len(records))
	for _, r := range records {
		keep := true
		for key, want := range filter {
			if len(want) == 0 {
				continue
			}
			if fmt.Sprint(r[key]) != want[0] {
				keep = false
				break
			}
		}
		if keep {
			matched = append(matched, r)
		}
	}
	c.JSON(http.StatusOK, matched)
}

func (s *Server) get(c *gin.Context) {
	records, ok := s.collection(c)
	if !ok {
		return
	}
	for _, r := range records {
		if fmt.Sprint(r["id"]) == c.Param("id") {
			c.JSON(http.StatusOK, r)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

func (s *Server) create(c *gin.Context) {
	name := c.Param("collection")

	var record map[string]any
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	if id, ok := record["id"].(string); !ok || id == "" {
		record["id"] = uuid.NewString()
	}
	s.data[name] = append(s.data[name], record)

	c.JSON(http.StatusCreated, record)
}

func (s *Server) patch(c *gin.Context) {
	name := c.Param("collection")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.data[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	for _, r := range records {
		if fmt.Sprint(r["id"]) == c.Param("id") {
			for k, v := range fields {
				if k == "id" {
					continue
				}
				r[k] = v
			}
			c.JSON(http.StatusOK, r)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

func (s *Server) remove(c *gin.Context) {
	name := c.Param("collection")

	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.data[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	for i, r := range records {
		if fmt.Sprint(r["id"]) == c.Param("id") {
			s.data[name] = append(records[:i:i], records[i+1:]...)
			c.JSON(http.StatusOK, gin.H{})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

func (s *Server) collection(c *gin.Context) ([]map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.data[c.Param("collection")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return nil, false
	}
	out := make([]map[string]any, len(records))
	copy(out, records)
	return out, true
}
