// Package ingest implements the offline batch pipeline that turns document
// chunks into vector-index records. It is a straight-line run with no
// concurrency and no partial-failure recovery; reruns are full reingestions
// that overwrite the same sequential ids.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
)

// Chunk is a contiguous span of source-document text produced by splitting.
// Pages are zero-indexed as stored; display code converts to one-indexed.
type Chunk struct {
	Text   string
	Page   int
	Source string
}

// Record is one vector-index entry: the sequential chunk id, its embedding
// and the chunk metadata.
type Record struct {
	ID     int
	Text   string
	Page   int
	Source string
	Vector []float32
}

type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Writer interface {
	Upsert(ctx context.Context, records []Record) error
}

type Pipeline struct {
	embedder    Embedder
	writer      Writer
	dims        int
	embedBatch  int
	upsertBatch int
}

func NewPipeline(e Embedder, w Writer, dims, embedBatch, upsertBatch int) *Pipeline {
	return &Pipeline{embedder: e, writer: w, dims: dims, embedBatch: embedBatch, upsertBatch: upsertBatch}
}

// Run embeds all chunk texts in fixed-size batches, assigns sequential ids
// starting at zero and upserts id/vector/metadata records in fixed-size
// batches. It returns the number of records written.
func (p *Pipeline) Run(ctx context.Context, chunks []Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	records := make([]Record, len(chunks))
	for i, c := range chunks {
		records[i] = Record{ID: i, Text: c.Text, Page: c.Page, Source: c.Source}
	}

	for start := 0; start < len(records); start += p.embedBatch {
		end := min(start+p.embedBatch, len(records))

		texts := make([]string, 0, end-start)
		for _, r := range records[start:end] {
			texts = append(texts, r.Text)
		}

		slog.Info("embedding batch", "from", start, "to", end, "total", len(records))
		vecs, err := p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("embed batch starting at %d: %w", start, err)
		}
		if len(vecs) != len(texts) {
			return 0, fmt.Errorf("embed batch starting at %d: got %d vectors for %d texts", start, len(vecs), len(texts))
		}

		for i, vec := range vecs {
			if len(vec) != p.dims {
				return 0, fmt.Errorf("chunk %d: embedding has %d dimensions, index expects %d", start+i, len(vec), p.dims)
			}
			records[start+i].Vector = vec
		}
	}

	written := 0
	for start := 0; start < len(records); start += p.upsertBatch {
		end := min(start+p.upsertBatch, len(records))

		slog.Info("upserting batch", "from", start, "to", end, "total", len(records))
		if err := p.writer.Upsert(ctx, records[start:end]); err != nil {
			return written, fmt.Errorf("upsert batch starting at %d: %w", start, err)
		}
		written += end - start
	}

	return written, nil
}
