package memory

import (
	"errors"
	"sort"
	"sync"

	"newsdigest/internal/domain"
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	digests   []domain.Digest
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.digests = nil
	return nil
}

func (s *Storage) Upsert(digests []domain.Digest, vectors [][]float64) error {
	if len(digests) != len(vectors) {
		return errors.New("digests and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for i, d := range digests {
		if j := s.indexOf(d.ID); j >= 0 {
			s.digests[j] = d
			s.vectors[j] = vectors[i]
			continue
		}
		s.digests = append(s.digests, d)
		s.vectors = append(s.vectors, vectors[i])
	}
	return nil
}

// Search returns the topK digests by cosine similarity; equal scores keep
// insertion order.
func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	// vectors are assumed L2-normalized
	results := make([]domain.SearchResult, len(s.vectors))
	for i := range s.vectors {
		results[i] = domain.SearchResult{Digest: s.digests[i], Score: dot(s.vectors[i], vector)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.digests = nil
	return nil
}

func (s *Storage) indexOf(id string) int {
	for i, d := range s.digests {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
