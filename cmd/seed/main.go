// Command seed creates the database schema and loads the demo catalog:
// categories with their attribute schemas plus listing variations.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/config"
	"github.com/musavirchukkan/b2b-marketplace-search/internal/logger"
	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
	"github.com/musavirchukkan/b2b-marketplace-search/internal/repository"
)

// variationsPerListing is how many price/location variations are
// generated per base listing
const variationsPerListing = 8

var locations = []string{
	"Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata", "Hyderabad",
	"Pune", "Ahmedabad", "Jaipur", "Kochi", "Thrissur", "Coimbatore",
}

type baseListing struct {
	Title       string
	Description string
	BasePrice   float64
	Attributes  model.JSONMap
}

var categories = []model.Category{
	{
		Name: "Televisions",
		Slug: "televisions",
		AttributeSchema: model.AttributeSchema{
			"screenSize": {
				Type:       model.AttrTypeString,
				Label:      "Screen Size",
				Options:    []string{`32"`, `43"`, `50"`, `55"`, `65"`, `75"`, `85"`},
				Required:   true,
				Filterable: true,
			},
			"technology": {
				Type:       model.AttrTypeString,
				Label:      "Display Technology",
				Options:    []string{"LED", "OLED", "QLED", "Neo QLED", "Mini LED"},
				Required:   true,
				Filterable: true,
			},
			"resolution": {
				Type:       model.AttrTypeString,
				Label:      "Resolution",
				Options:    []string{"HD Ready", "Full HD", "4K Ultra HD", "8K"},
				Required:   true,
				Filterable: true,
			},
			"brand": {
				Type:       model.AttrTypeString,
				Label:      "Brand",
				Options:    []string{"Samsung", "LG", "Sony", "TCL", "Xiaomi", "OnePlus", "Realme"},
				Required:   true,
				Filterable: true,
			},
			"smartTV": {
				Type:       model.AttrTypeBoolean,
				Label:      "Smart TV",
				Filterable: true,
			},
			"refreshRate": {
				Type:       model.AttrTypeString,
				Label:      "Refresh Rate",
				Options:    []string{"60Hz", "120Hz", "144Hz"},
				Filterable: true,
			},
		},
	},
	{
		Name: "Running Shoes",
		Slug: "running-shoes",
		AttributeSchema: model.AttributeSchema{
			"size": {
				Type:       model.AttrTypeString,
				Label:      "Size",
				Options:    []string{"6", "7", "8", "9", "10", "11", "12", "13"},
				Required:   true,
				Filterable: true,
			},
			"color": {
				Type:       model.AttrTypeString,
				Label:      "Color",
				Options:    []string{"Black", "White", "Red", "Blue", "Green", "Gray", "Navy", "Orange"},
				Required:   true,
				Filterable: true,
			},
			"brand": {
				Type:       model.AttrTypeString,
				Label:      "Brand",
				Options:    []string{"Nike", "Adidas", "Puma", "Reebok", "New Balance", "ASICS", "Brooks"},
				Required:   true,
				Filterable: true,
			},
			"gender": {
				Type:       model.AttrTypeString,
				Label:      "Gender",
				Options:    []string{"Men", "Women", "Unisex"},
				Required:   true,
				Filterable: true,
			},
			"category": {
				Type:       model.AttrTypeString,
				Label:      "Running Category",
				Options:    []string{"Road Running", "Trail Running", "Track & Field", "Casual Running"},
				Filterable: true,
			},
			"cushioning": {
				Type:       model.AttrTypeString,
				Label:      "Cushioning Level",
				Options:    []string{"Minimal", "Moderate", "Maximum"},
				Filterable: true,
			},
		},
	},
	{
		Name: "Industrial Pumps",
		Slug: "industrial-pumps",
		AttributeSchema: model.AttributeSchema{
			"pumpType": {
				Type:       model.AttrTypeString,
				Label:      "Pump Type",
				Options:    []string{"Centrifugal", "Positive Displacement", "Submersible", "Self-Priming"},
				Required:   true,
				Filterable: true,
			},
			"material": {
				Type:       model.AttrTypeString,
				Label:      "Material",
				Options:    []string{"Cast Iron", "Stainless Steel", "Bronze", "Plastic", "Carbon Steel"},
				Required:   true,
				Filterable: true,
			},
			"flowRate": {
				Type:       model.AttrTypeString,
				Label:      "Flow Rate (LPM)",
				Options:    []string{"0-100", "100-500", "500-1000", "1000-5000", "5000+"},
				Required:   true,
				Filterable: true,
			},
			"horsepower": {
				Type:       model.AttrTypeString,
				Label:      "Horsepower",
				Options:    []string{"0.5 HP", "1 HP", "2 HP", "3 HP", "5 HP", "7.5 HP", "10 HP+"},
				Required:   true,
				Filterable: true,
			},
			"application": {
				Type:       model.AttrTypeString,
				Label:      "Application",
				Options:    []string{"Water Supply", "Chemical Processing", "Oil & Gas", "Agriculture", "Construction"},
				Filterable: true,
			},
		},
	},
}

var baseListings = map[string][]baseListing{
	"televisions": {
		{
			Title:       `Samsung 55" 4K QLED Smart TV`,
			Description: "Premium QLED technology with vibrant colors and smart features. Perfect for home entertainment.",
			BasePrice:   65000,
			Attributes: model.JSONMap{
				"screenSize": `55"`, "technology": "QLED", "resolution": "4K Ultra HD",
				"brand": "Samsung", "smartTV": true, "refreshRate": "120Hz",
			},
		},
		{
			Title:       `LG 43" OLED Full HD TV`,
			Description: "Stunning OLED display with perfect blacks and infinite contrast ratio.",
			BasePrice:   45000,
			Attributes: model.JSONMap{
				"screenSize": `43"`, "technology": "OLED", "resolution": "Full HD",
				"brand": "LG", "smartTV": true, "refreshRate": "60Hz",
			},
		},
		{
			Title:       `Sony 65" 4K LED Android TV`,
			Description: "Large screen Sony TV with Android TV platform and superior picture quality.",
			BasePrice:   85000,
			Attributes: model.JSONMap{
				"screenSize": `65"`, "technology": "LED", "resolution": "4K Ultra HD",
				"brand": "Sony", "smartTV": true, "refreshRate": "60Hz",
			},
		},
	},
	"running-shoes": {
		{
			Title:       "Nike Air Max Running Shoes",
			Description: "Comfortable running shoes with Air Max cushioning technology. Perfect for daily runs.",
			BasePrice:   4500,
			Attributes: model.JSONMap{
				"size": "9", "color": "Black", "brand": "Nike",
				"gender": "Men", "category": "Road Running", "cushioning": "Maximum",
			},
		},
		{
			Title:       "Adidas Ultraboost Women's Running Shoes",
			Description: "Premium running shoes with Boost midsole for energy return.",
			BasePrice:   6500,
			Attributes: model.JSONMap{
				"size": "8", "color": "White", "brand": "Adidas",
				"gender": "Women", "category": "Road Running", "cushioning": "Moderate",
			},
		},
		{
			Title:       "ASICS Trail Running Shoes",
			Description: "Durable trail running shoes with excellent grip and protection.",
			BasePrice:   5200,
			Attributes: model.JSONMap{
				"size": "10", "color": "Gray", "brand": "ASICS",
				"gender": "Men", "category": "Trail Running", "cushioning": "Moderate",
			},
		},
	},
	"industrial-pumps": {
		{
			Title:       "Centrifugal Water Pump 5HP",
			Description: "High-efficiency centrifugal pump suitable for water supply applications.",
			BasePrice:   25000,
			Attributes: model.JSONMap{
				"pumpType": "Centrifugal", "material": "Cast Iron", "flowRate": "500-1000",
				"horsepower": "5 HP", "application": "Water Supply",
			},
		},
		{
			Title:       "Submersible Pump Stainless Steel",
			Description: "Corrosion-resistant submersible pump for deep well applications.",
			BasePrice:   35000,
			Attributes: model.JSONMap{
				"pumpType": "Submersible", "material": "Stainless Steel", "flowRate": "100-500",
				"horsepower": "3 HP", "application": "Agriculture",
			},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to create schema", zap.Error(err))
	}
	log.Info("Schema ready")

	if err := repo.TruncateListings(ctx); err != nil {
		log.Fatal("Failed to clear listings", zap.Error(err))
	}

	total := 0
	for _, category := range categories {
		id, err := repo.UpsertCategory(ctx, &category)
		if err != nil {
			log.Fatal("Failed to seed category", zap.String("slug", category.Slug), zap.Error(err))
		}

		count, err := seedListings(ctx, repo, id, category, baseListings[category.Slug])
		if err != nil {
			log.Fatal("Failed to seed listings", zap.String("slug", category.Slug), zap.Error(err))
		}
		total += count
		log.Info("Seeded category",
			zap.String("slug", category.Slug),
			zap.Int("listings", count),
		)
	}

	log.Info("Seeding complete", zap.Int("total_listings", total))
}

// seedListings inserts price and attribute variations of each base
// listing, the way the demo catalog is meant to exercise facets
func seedListings(ctx context.Context, repo *repository.PostgresRepository, categoryID int64, category model.Category, bases []baseListing) (int, error) {
	count := 0
	for _, base := range bases {
		for i := 0; i < variationsPerListing; i++ {
			attributes := model.JSONMap{}
			for key, value := range base.Attributes {
				attributes[key] = value
			}
			// Occasionally swap an attribute for another allowed
			// option so facet counts spread across values
			for key, attrCfg := range category.AttributeSchema {
				if len(attrCfg.Options) > 0 && rand.Float64() > 0.7 {
					attributes[key] = attrCfg.Options[rand.Intn(len(attrCfg.Options))]
				}
			}

			tags := model.StringArray{category.Slug}
			if brand, ok := attributes["brand"].(string); ok {
				tags = append(model.StringArray{brand}, tags...)
			}

			listing := &model.Listing{
				Title:       fmt.Sprintf("%s - Model %d", base.Title, i+1),
				Description: base.Description,
				Price:       randomPrice(base.BasePrice*0.8, base.BasePrice*1.2),
				Location:    locations[rand.Intn(len(locations))],
				CategoryID:  categoryID,
				Attributes:  attributes,
				Tags:        tags,
				IsActive:    true,
			}
			if _, err := repo.InsertListing(ctx, listing); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func randomPrice(min, max float64) float64 {
	return float64(int(min + rand.Float64()*(max-min)))
}
