package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/yasminalves16/restaurante/internal/repository"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed default_menu.yaml
var defaultMenu []byte

type MenuFile struct {
	Items []MenuEntry `yaml:"items"`
}

// MenuEntry mirrors the admin create payload. Omitted availability flags mean available.
type MenuEntry struct {
	Name                 string `yaml:"name"`
	Description          string `yaml:"description"`
	Price                string `yaml:"price"`
	Category             string `yaml:"category"`
	ImageURL             string `yaml:"image_url"`
	AvailableForDelivery *bool  `yaml:"available_for_delivery"`
	AvailableForLocal    *bool  `yaml:"available_for_local"`
	AvailableForComanda  *bool  `yaml:"available_for_comanda"`
}

func Parse(data []byte) (*MenuFile, error) {
	var f MenuFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse menu file: %w", err)
	}
	return &f, nil
}

// Load reads the menu file at path, or the bundled sample menu when path is empty.
func Load(path string) (*MenuFile, error) {
	if path == "" {
		return Parse(defaultMenu)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	return Parse(data)
}

func (e MenuEntry) input() (service.CreateMenuItemInput, error) {
	in := service.CreateMenuItemInput{
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,
		ImageURL:    e.ImageURL,
	}
	if e.Price != "" {
		p, err := decimal.NewFromString(e.Price)
		if err != nil {
			return in, fmt.Errorf("item %q: bad price %q: %w", e.Name, e.Price, err)
		}
		in.Price = &p
	}
	if e.AvailableForDelivery != nil {
		in.AvailableForDelivery = *e.AvailableForDelivery
	}
	if e.AvailableForLocal != nil {
		in.AvailableForLocal = *e.AvailableForLocal
	}
	if e.AvailableForComanda != nil {
		in.AvailableForComanda = *e.AvailableForComanda
	}
	return in, nil
}

// Apply creates every entry through the catalog. A catalog that already has items is left untouched unless
// force is set.
func Apply(ctx context.Context, f *MenuFile, menu service.MenuService, repo *repository.Repository, force bool, log *zap.Logger) (int, error) {
	if !force {
		n, err := repo.MenuItems.Count(ctx)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			log.Info("menu already has items, skipping seed", zap.Int64("items", n))
			return 0, nil
		}
	}

	created := 0
	for _, e := range f.Items {
		in, err := e.input()
		if err != nil {
			return created, err
		}
		m, err := menu.CreateItem(ctx, in)
		if err != nil {
			return created, fmt.Errorf("item %q: %w", e.Name, err)
		}
		log.Debug("menu item seeded", zap.String("id", m.ID.String()), zap.String("name", m.Name))
		created++
	}
	log.Info("menu seeded", zap.Int("items", created))
	return created, nil
}
