// The seeder loads a catalog JSON file, validates it and upserts it into the
// database. The file shape is products plus category_relations with
// source/target/weight entries.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopsmart/substitution/internal/adapter/storage"
	"github.com/shopsmart/substitution/internal/core/catalog"
	"github.com/shopsmart/substitution/internal/core/domain"
	"github.com/shopsmart/substitution/pkg/sigctx"
	"github.com/spf13/pflag"
)

const (
	storagePathFlag = "storage-path"
	dataPathFlag    = "data-path"
)

type (
	productJSON struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		Price      float64  `json:"price"`
		Stock      int      `json:"stock"`
		Category   string   `json:"category"`
		Brand      string   `json:"brand"`
		Attributes []string `json:"attributes"`
	}

	relationJSON struct {
		Source string  `json:"source"`
		Target string  `json:"target"`
		Weight float64 `json:"weight"`
	}

	catalogJSON struct {
		Products          []productJSON  `json:"products"`
		CategoryRelations []relationJSON `json:"category_relations"`
	}
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	storagePath, dataPath := getFlagsValues()
	validateFlags(storagePath, dataPath)

	data, err := readCatalogFile(dataPath)
	if err != nil {
		slog.Error("failed to read catalog file", "err", err)
		fallDown()
	}

	store, err := catalog.Build(data)
	if err != nil {
		slog.Error("invalid catalog data", "err", err)
		fallDown()
	}

	sqldb, err := storage.NewSQLDB(sigCtx, storagePath)
	if err != nil {
		slog.Error("failed to open database", "err", err)
		fallDown()
	}
	defer sqldb.Close()

	repo := storage.NewCatalogRepository(sqldb)

	if err := repo.StoreProducts(sigCtx, data.Products); err != nil {
		slog.Error("failed to store products", "err", err)
		fallDown()
	}

	if err := repo.StoreRelations(sigCtx, data.Relations); err != nil {
		slog.Error("failed to store relations", "err", err)
		fallDown()
	}

	fmt.Printf(
		"seeded %d products and %d category relations\n",
		store.Size(), len(data.Relations),
	)
}

func getFlagsValues() (storagePath, dataPath string) {
	s := pflag.StringP(storagePathFlag, "s", "", "")
	d := pflag.StringP(dataPathFlag, "d", "data/catalog.json", "")
	pflag.Parse()
	return *s, *d
}

func validateFlags(storagePath, dataPath string) {
	var errs []error

	if storagePath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", storagePathFlag))
	}

	if dataPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", dataPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		fallDown()
	}
}

func readCatalogFile(path string) (domain.CatalogData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.CatalogData{}, err
	}

	var file catalogJSON
	if err := json.Unmarshal(b, &file); err != nil {
		return domain.CatalogData{}, err
	}

	var data domain.CatalogData
	for _, p := range file.Products {
		data.Products = append(data.Products, domain.Product{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Stock:      p.Stock,
			Category:   p.Category,
			Brand:      p.Brand,
			Attributes: p.Attributes,
		})
	}
	for _, r := range file.CategoryRelations {
		data.Relations = append(data.Relations, domain.CategoryRelation{
			CategoryA: r.Source,
			CategoryB: r.Target,
			Weight:    r.Weight,
		})
	}
	return data, nil
}

func fallDown() {
	os.Exit(2)
}
