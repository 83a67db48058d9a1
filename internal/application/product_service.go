package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/farmstack/farm-api/internal/domain/entity"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/pkg/helpers"
)

// ProductService manages the product catalog. Writes go to Postgres first;
// the Elasticsearch index is updated best effort after the commit, so search
// may lag the catalog briefly.
type ProductService struct {
	Products repo.ProductRepository
	GCS      *storage.Client
	ES       *elasticsearch.Client
	Logger   *logrus.Logger
	Bucket   string
	ESIndex  string
}

func NewProductService(products repo.ProductRepository, gcs *storage.Client,
	es *elasticsearch.Client, logger *logrus.Logger, bucket, esIndex string) *ProductService {
	return &ProductService{
		Products: products,
		GCS:      gcs,
		ES:       es,
		Logger:   logger,
		Bucket:   bucket,
		ESIndex:  esIndex,
	}
}

type ProductInput struct {
	Name        string
	Category    string
	Description string
	Unit        string
	PriceCents  int64
	Stock       int
}

func (s *ProductService) Create(ctx context.Context, farmerID string, in ProductInput) (*entity.Product, error) {
	p := &entity.Product{
		FarmerID:    farmerID,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Unit:        in.Unit,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, fromRepo(err)
	}
	s.index(ctx, p)
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err)
	}
	return p, nil
}

// Update applies the input to a product owned by farmerID. Ownership is
// checked here, not in the handler, so every call path gets the same gate.
func (s *ProductService) Update(ctx context.Context, farmerID, id string, in ProductInput) (*entity.Product, error) {
	p, err := s.owned(ctx, farmerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	if in.PriceCents > 0 {
		p.PriceCents = in.PriceCents
	}
	if in.Stock >= 0 {
		p.Stock = in.Stock
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, fromRepo(err)
	}
	s.index(ctx, p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, farmerID, id string) error {
	if _, err := s.owned(ctx, farmerID, id); err != nil {
		return err
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		return fromRepo(err)
	}
	s.deindex(ctx, id)
	return nil
}

func (s *ProductService) List(ctx context.Context, f repo.ProductFilter) ([]entity.Product, int64, error) {
	items, total, err := s.Products.List(ctx, f)
	return items, total, fromRepo(err)
}

// UploadImage stores the image in GCS under products/<id>/<uuid><ext> and
// saves the public URL on the product.
func (s *ProductService) UploadImage(ctx context.Context, farmerID, id, filename, contentType string, r io.Reader) (*entity.Product, error) {
	p, err := s.owned(ctx, farmerID, id)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil {
		return nil, fmt.Errorf("image storage not configured")
	}

	object := fmt.Sprintf("products/%s/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, object, contentType, r)
	if err != nil {
		return nil, err
	}

	p.ImageURL = url
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, fromRepo(err)
	}
	s.index(ctx, p)
	return p, nil
}

// Search queries the Elasticsearch index over name, description and category.
// Returns ids in relevance order; the handler hydrates from Postgres.
func (s *ProductService) Search(ctx context.Context, query string, size int) ([]entity.Product, error) {
	if s.ES == nil {
		return nil, fmt.Errorf("search not configured")
	}
	if size <= 0 || size > 50 {
		size = 20
	}

	body := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"name^2", "description", "category"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p, err := s.Products.GetByID(ctx, h.ID)
		if err != nil {
			// Stale index entry; skip it.
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *ProductService) owned(ctx context.Context, farmerID, id string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err)
	}
	if p.FarmerID != farmerID {
		return nil, ErrForbidden
	}
	return p, nil
}

// ProductIndexMapping is the explicit mapping for the product search index,
// matching productDoc. Text fields get a keyword sub-field so category can
// also be filtered exactly.
const ProductIndexMapping = `{
  "mappings": {
    "properties": {
      "farmer_id":   {"type": "keyword"},
      "name":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "category":    {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description": {"type": "text"},
      "unit":        {"type": "keyword"},
      "price_cents": {"type": "long"},
      "stock":       {"type": "integer"}
    }
  }
}`

type productDoc struct {
	FarmerID    string `json:"farmer_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
}

func (s *ProductService) index(ctx context.Context, p *entity.Product) {
	if s.ES == nil {
		return
	}
	b, err := json.Marshal(productDoc{
		FarmerID:    p.FarmerID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Unit:        p.Unit,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
	})
	if err != nil {
		return
	}
	res, err := s.ES.Index(s.ESIndex, bytes.NewReader(b),
		s.ES.Index.WithDocumentID(p.ID),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		s.logWarn("index product failed", err, p.ID)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.logWarn("index product failed", fmt.Errorf("status %s", res.Status()), p.ID)
	}
}

func (s *ProductService) deindex(ctx context.Context, id string) {
	if s.ES == nil {
		return
	}
	res, err := s.ES.Delete(s.ESIndex, id, s.ES.Delete.WithContext(ctx))
	if err != nil {
		s.logWarn("deindex product failed", err, id)
		return
	}
	defer res.Body.Close()
}

func (s *ProductService) logWarn(msg string, err error, subject string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("subject", subject).Warn(msg)
	}
}
