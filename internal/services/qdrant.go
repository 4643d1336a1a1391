package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

const embeddingSize = 768

type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertComparison(ctx context.Context, comparisonID uint, embedding []float32, payload map[string]interface{}) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error)
	GetVector(ctx context.Context, comparisonID uint) ([]float32, error)
	DeleteComparison(ctx context.Context, comparisonID uint) error
}

type SearchResult struct {
	ComparisonID uint
	Score        float32
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     embeddingSize,
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists\n", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertComparison implements QdrantService.
func (q *qdrantService) UpsertComparison(ctx context.Context, comparisonID uint, embedding []float32, payload map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["comparison_id"] = int64(comparisonID)

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(comparisonID)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(payload),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements QdrantService.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, SearchResult{
			ComparisonID: uint(point.GetId().GetNum()),
			Score:        point.GetScore(),
		})
	}

	return results, nil
}

// GetVector implements QdrantService. It returns nil when the comparison
// has no point yet.
func (q *qdrantService) GetVector(ctx context.Context, comparisonID uint) ([]float32, error) {
	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewIDNum(uint64(comparisonID))},
		WithPayload:    qdrant.NewWithPayload(false),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get point: %w", err)
	}
	if len(points) == 0 {
		return nil, nil
	}

	vector := points[0].GetVectors().GetVector()
	if dense := vector.GetDense().GetData(); len(dense) > 0 {
		return dense, nil
	}
	return vector.GetData(), nil
}

// DeleteComparison implements QdrantService.
func (q *qdrantService) DeleteComparison(ctx context.Context, comparisonID uint) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewIDNum(uint64(comparisonID))},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}

	return nil
}
