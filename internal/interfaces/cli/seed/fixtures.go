package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	ownerUsecases "candlepin/internal/application/owner/usecases"
	poolUsecases "candlepin/internal/application/pool/usecases"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

// Fixtures is the seed file layout.
type Fixtures struct {
	Owners []OwnerFixture `yaml:"owners" validate:"dive"`
}

type OwnerFixture struct {
	Key                   string           `yaml:"key" validate:"required,max=255"`
	DisplayName           string           `yaml:"display_name"`
	ContentAccessMode     string           `yaml:"content_access_mode"`
	ContentAccessModeList string           `yaml:"content_access_mode_list"`
	Anonymous             bool             `yaml:"anonymous"`
	Products              []ProductFixture `yaml:"products" validate:"dive"`
	Pools                 []PoolFixture    `yaml:"pools" validate:"dive"`
}

type ProductFixture struct {
	ID         string            `yaml:"id" validate:"required"`
	Name       string            `yaml:"name" validate:"required"`
	Attributes map[string]string `yaml:"attributes"`
}

type PoolFixture struct {
	ProductID          string    `yaml:"product_id" validate:"required"`
	ProvidedProductIDs []string  `yaml:"provided_product_ids"`
	Quantity           int64     `yaml:"quantity"`
	StartDate          time.Time `yaml:"start_date"`
	EndDate            time.Time `yaml:"end_date"`
}

// ParseFixtures decodes a seed file. Unknown keys are rejected so typos do
// not silently drop data.
func ParseFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	if err := utils.ValidateStruct(f); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return &f, nil
}

// Result counts what a seed run created.
type Result struct {
	Owners   int
	Products int
	Pools    int
	Skipped  int
}

// Seeder loads fixtures through the regular use cases so every invariant
// of an API created record also holds for seeded ones.
type Seeder struct {
	createOwner   *ownerUsecases.CreateOwnerUseCase
	createProduct *poolUsecases.CreateProductUseCase
	createPool    *poolUsecases.CreatePoolUseCase
	logger        logger.Interface
}

func NewSeeder(
	createOwner *ownerUsecases.CreateOwnerUseCase,
	createProduct *poolUsecases.CreateProductUseCase,
	createPool *poolUsecases.CreatePoolUseCase,
	logger logger.Interface,
) *Seeder {
	return &Seeder{
		createOwner:   createOwner,
		createProduct: createProduct,
		createPool:    createPool,
		logger:        logger,
	}
}

// Apply creates every owner, product and pool. Existing owners are kept
// and their products refreshed; pools are always added.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (*Result, error) {
	res := &Result{}

	for _, o := range f.Owners {
		_, err := s.createOwner.Execute(ctx, ownerUsecases.CreateOwnerCommand{
			Key:                   o.Key,
			DisplayName:           o.DisplayName,
			ContentAccessMode:     o.ContentAccessMode,
			ContentAccessModeList: o.ContentAccessModeList,
			Anonymous:             o.Anonymous,
		})
		switch {
		case err == nil:
			res.Owners++
		case errors.IsConflictError(err):
			s.logger.Infow("owner already exists, keeping it", "owner", o.Key)
			res.Skipped++
		default:
			return res, fmt.Errorf("owner %s: %w", o.Key, err)
		}

		for _, p := range o.Products {
			if _, err := s.createProduct.Execute(ctx, poolUsecases.CreateProductCommand{
				OwnerKey:   o.Key,
				ID:         p.ID,
				Name:       p.Name,
				Attributes: p.Attributes,
			}); err != nil {
				return res, fmt.Errorf("owner %s product %s: %w", o.Key, p.ID, err)
			}
			res.Products++
		}

		for i, p := range o.Pools {
			if _, err := s.createPool.Execute(ctx, poolUsecases.CreatePoolCommand{
				OwnerKey:           o.Key,
				ProductID:          p.ProductID,
				ProvidedProductIDs: p.ProvidedProductIDs,
				Quantity:           p.Quantity,
				StartDate:          p.StartDate,
				EndDate:            p.EndDate,
			}); err != nil {
				return res, fmt.Errorf("owner %s pool #%d: %w", o.Key, i+1, err)
			}
			res.Pools++
		}
	}

	return res, nil
}
