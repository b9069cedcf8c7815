package service

import (
	"hash/fnv"
	"math"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/smartpantry/backend/internal/matching"
	"github.com/pageza/smartpantry/backend/internal/models"
)

// GenerateEmbedding returns a deterministic bag-of-words embedding for text.
// Each normalized word is hashed into one of models.EmbeddingDimensions
// buckets and the result is scaled to unit length, so texts sharing
// ingredients land close together under L2 distance.
func GenerateEmbedding(text string) pgvector.Vector {
	vec := make([]float32, models.EmbeddingDimensions)
	for _, word := range strings.Fields(matching.Normalize(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%uint32(models.EmbeddingDimensions)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return pgvector.NewVector(vec)
}
