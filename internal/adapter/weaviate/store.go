package weaviate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"floorassist/internal/ingest"
	"floorassist/internal/retrieval"
)

// Store adapts a Weaviate class to the vector-index boundary: batched
// id-keyed upserts on the write side, nearVector queries with metadata on the
// read side.
type Store struct {
	client *weaviate.Client
	class  string
}

func NewStore(client *weaviate.Client, class string) *Store {
	return &Store{client: client, class: class}
}

// ObjectID derives a deterministic object id from the sequential chunk id so
// that reingesting the same document overwrites records in place.
func ObjectID(class string, chunkID int) strfmt.UUID {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(class+"/chunk_"+strconv.Itoa(chunkID)))
	return strfmt.UUID(id.String())
}

func (s *Store) Upsert(ctx context.Context, records []ingest.Record) error {
	objs := make([]*models.Object, 0, len(records))
	for _, rec := range records {
		objs = append(objs, &models.Object{
			Class: s.class,
			ID:    ObjectID(s.class, rec.ID),
			Properties: map[string]interface{}{
				"chunkId": rec.ID,
				"text":    rec.Text,
				"page":    rec.Page,
				"source":  rec.Source,
			},
			Vector: models.C11yVector(rec.Vector),
		})
	}

	resp, err := s.client.Batch().ObjectsBatcher().WithObjects(objs...).Do(ctx)
	if err != nil {
		return err
	}

	for _, r := range resp {
		if r.Result != nil && r.Result.Errors != nil && len(r.Result.Errors.Error) > 0 {
			return fmt.Errorf("upsert object %s: %s", r.ID, r.Result.Errors.Error[0].Message)
		}
	}
	return nil
}

// Query returns the topK nearest stored chunks with their metadata, ordered
// by the index. Missing metadata defaults to the zero value and a missing
// certainty is treated as score 0.
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]retrieval.Match, error) {
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	fields := []graphql.Field{
		{Name: "text"},
		{Name: "page"},
		{Name: "source"},
		{Name: "chunkId"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "id"}, {Name: "certainty"}}},
	}

	res, err := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithNearVector(nearVector).
		WithLimit(topK).
		WithFields(fields...).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %v", res.Errors)
	}

	var matches []retrieval.Match
	if data, ok := res.Data["Get"].(map[string]interface{}); ok {
		if chunks, ok := data[s.class].([]interface{}); ok {
			for _, c := range chunks {
				props, ok := c.(map[string]interface{})
				if !ok {
					continue
				}

				var m retrieval.Match
				if text, ok := props["text"].(string); ok {
					m.Text = text
				}
				if page, ok := props["page"].(float64); ok {
					m.Page = int(page)
				}
				if source, ok := props["source"].(string); ok {
					m.Source = source
				}

				if additional, ok := props["_additional"].(map[string]interface{}); ok {
					if id, ok := additional["id"].(string); ok {
						m.ID = id
					}
					switch v := additional["certainty"].(type) {
					case float64:
						m.Score = v
					case string:
						// Some server versions report _additional numbers as strings.
						fmt.Sscanf(v, "%f", &m.Score)
					}
				}

				matches = append(matches, m)
			}
		}
	}

	return matches, nil
}
