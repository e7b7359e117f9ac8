// Package vector provides exact nearest-neighbor search over pre-computed
// movie overview embeddings, with the flat index and its ordinal→movie-id
// mapping persisted as a pair of binary artifacts.
package vector

import (
	"encoding/binary"
	"fmt"
	"io"

	apperrors "github.com/jayeshbankoti007/movie-graph-rag/pkg/errors"
)

// Hit is one search result; Distance is squared L2, so lower is nearer.
type Hit struct {
	ID       int
	Distance float32
}

// Index is a flat index of fixed-dimension embeddings. Position i of the
// vector slab corresponds to position i of the id mapping.
type Index struct {
	dimension int
	vectors   [][]float32
	ids       []int
}

func NewIndex() *Index {
	return &Index{}
}

// Count returns the number of indexed vectors.
func (ix *Index) Count() int { return len(ix.ids) }

// Dimension returns the embedding width, 0 before any vector is added.
func (ix *Index) Dimension() int { return ix.dimension }

// Add appends a vector for a movie id. The first vector fixes the index
// dimension.
func (ix *Index) Add(id int, vec []float32) error {
	if ix.dimension == 0 {
		ix.dimension = len(vec)
	}
	if len(vec) != ix.dimension {
		return apperrors.NewDimensionMismatch(ix.dimension, len(vec))
	}
	ix.vectors = append(ix.vectors, vec)
	ix.ids = append(ix.ids, id)
	return nil
}

// Search returns up to k movie ids ranked by ascending distance. An empty
// index returns an empty slice, never an error.
func (ix *Index) Search(query []float32, k int) []Hit {
	if len(ix.ids) == 0 || len(query) != ix.dimension || k <= 0 {
		return []Hit{}
	}

	hits := make([]Hit, 0, len(ix.ids))
	for i, vec := range ix.vectors {
		hits = append(hits, Hit{ID: ix.ids[i], Distance: squaredL2(query, vec)})
	}
	// Partial selection sort: k is small relative to the corpus.
	if k > len(hits) {
		k = len(hits)
	}
	for i := 0; i < k; i++ {
		best := i
		for j := i + 1; j < len(hits); j++ {
			if hits[j].Distance < hits[best].Distance {
				best = j
			}
		}
		hits[i], hits[best] = hits[best], hits[i]
	}
	return hits[:k]
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// ============================================================================
// Persistence: two artifacts, vectors and id mapping, little-endian
// ============================================================================

type indexHeader struct {
	Dimension int32
	Count     int32
}

// SaveVectors writes the flat vector slab.
func (ix *Index) SaveVectors(w io.Writer) error {
	header := indexHeader{Dimension: int32(ix.dimension), Count: int32(len(ix.vectors))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	for _, vec := range ix.vectors {
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			return err
		}
	}
	return nil
}

// SaveMapping writes the ordinal-position→movie-id mapping.
func (ix *Index) SaveMapping(w io.Writer) error {
	count := int32(len(ix.ids))
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return err
	}
	for _, id := range ix.ids {
		if err := binary.Write(w, binary.LittleEndian, int64(id)); err != nil {
			return err
		}
	}
	return nil
}

// LoadVectors reads the vector slab, replacing any current contents.
func (ix *Index) LoadVectors(r io.Reader) error {
	var header indexHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to read index header: %w", err)
	}
	if header.Dimension <= 0 || header.Count < 0 {
		return fmt.Errorf("invalid index header: dimension %d, count %d", header.Dimension, header.Count)
	}

	ix.dimension = int(header.Dimension)
	ix.vectors = make([][]float32, 0, header.Count)
	for i := 0; i < int(header.Count); i++ {
		vec := make([]float32, ix.dimension)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return fmt.Errorf("failed to read vector %d: %w", i, err)
		}
		ix.vectors = append(ix.vectors, vec)
	}
	return nil
}

// LoadMapping reads the id mapping. The count must agree with the loaded
// vector slab when both artifacts are present.
func (ix *Index) LoadMapping(r io.Reader) error {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("failed to read mapping header: %w", err)
	}
	if count < 0 {
		return fmt.Errorf("invalid mapping count: %d", count)
	}
	if len(ix.vectors) > 0 && int(count) != len(ix.vectors) {
		return fmt.Errorf("mapping count %d does not match %d vectors", count, len(ix.vectors))
	}

	ix.ids = make([]int, 0, count)
	for i := 0; i < int(count); i++ {
		var id int64
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return fmt.Errorf("failed to read mapping entry %d: %w", i, err)
		}
		ix.ids = append(ix.ids, int(id))
	}
	return nil
}
