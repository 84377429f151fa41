// internal/solver/partition.go
//
// Partitioning a pool by the feedback a guess would receive, and the Shannon
// entropy of that partition under a uniform prior over the pool.

package solver

import (
	"math"
	"slices"

	"github.com/robalobadob/kanadle/internal/feedback"
)

// Bucket is one non-empty cell of a partition.
type Bucket struct {
	Feedback feedback.Vector `json:"feedback"`
	Count    int             `json:"count"`
}

// Partition groups a pool by feedback vector. Buckets are ordered by vector index.
type Partition struct {
	Buckets []Bucket `json:"buckets"`
	Total   int      `json:"total"`
}

// PartitionOf splits pool by scorer.Feedback(guess, answer).
func PartitionOf(scorer feedback.Scorer, guess feedback.Word, pool []feedback.Word) Partition {
	var counts [feedback.NumVectors]int32
	nonEmpty := 0
	for _, answer := range pool {
		idx := scorer.Feedback(guess, answer).Index()
		if counts[idx] == 0 {
			nonEmpty++
		}
		counts[idx]++
	}

	p := Partition{Buckets: make([]Bucket, 0, nonEmpty), Total: len(pool)}
	for idx, n := range counts {
		if n > 0 {
			p.Buckets = append(p.Buckets, Bucket{Feedback: feedback.VectorFromIndex(idx), Count: int(n)})
		}
	}
	return p
}

// Entropy is Σ (n/N)·log2(N/n) over the buckets, in bits.
// Terms are summed in ascending bucket-size order so that partitions with the
// same multiset of sizes produce bit-identical gains.
func (p Partition) Entropy() float64 {
	if p.Total == 0 {
		return 0
	}
	sizes := make([]int, len(p.Buckets))
	for i, b := range p.Buckets {
		sizes[i] = b.Count
	}
	slices.Sort(sizes)

	total := float64(p.Total)
	bits := 0.0
	for _, c := range sizes {
		n := float64(c)
		bits += n / total * math.Log2(total/n)
	}
	return bits
}

// Largest is the size of the biggest bucket, i.e. the worst-case pool after the guess.
func (p Partition) Largest() int {
	m := 0
	for _, b := range p.Buckets {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}
