// Package catalog implements the read-only browse path: category listing,
// paginated recipe lists, and recipe detail pages.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oumaimabzd/recipe-project/internal/images"
	"github.com/oumaimabzd/recipe-project/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound indicates the requested recipe does not exist.
var ErrNotFound = errors.New("catalog: recipe not found")

// Store runs the browse queries.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CategoryListing is a category plus its most recent recipe, if any.
type CategoryListing struct {
	Category models.Category
	Latest   *models.Recipe
}

// RecipeCard is one entry of the paginated list.
type RecipeCard struct {
	ID       uint64
	Title    string
	Summary  string
	Category string
}

// Pagination describes the current position in the recipe list.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

// RecipePage is one page of the recipe list.
type RecipePage struct {
	Recipes    []RecipeCard
	Pagination Pagination
}

// ImageView is the detail page's resolved image.
type ImageView struct {
	ID      uint64
	WebPath string
}

// RecipeDetail is everything the detail view renders.
type RecipeDetail struct {
	Recipe           models.Recipe
	CategoryName     string
	Ingredients      []models.Ingredient
	Image            *ImageView
	InstructionLines []string
}

// Categories lists all categories ordered by name, each with its newest
// recipe when one exists.
func (s *Store) Categories(ctx context.Context) ([]CategoryListing, error) {
	var categories []models.Category
	if errFind := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; errFind != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", errFind)
	}

	listings := make([]CategoryListing, 0, len(categories))
	for _, cat := range categories {
		var latest models.Recipe
		errLatest := s.db.WithContext(ctx).
			Where("category_id = ?", cat.ID).
			Order("created_at DESC").
			First(&latest).Error
		listing := CategoryListing{Category: cat}
		switch {
		case errLatest == nil:
			listing.Latest = &latest
		case errors.Is(errLatest, gorm.ErrRecordNotFound):
			// Category without recipes renders without a sample.
		default:
			return nil, fmt.Errorf("catalog: latest recipe for category %d: %w", cat.ID, errLatest)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// RecipesPage returns one page of recipes, newest first, with the requested
// page clamped into [1, totalPages].
func (s *Store) RecipesPage(ctx context.Context, page, perPage int) (*RecipePage, error) {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}

	var total int64
	if errCount := s.db.WithContext(ctx).Model(&models.Recipe{}).Count(&total).Error; errCount != nil {
		return nil, fmt.Errorf("catalog: count recipes: %w", errCount)
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	offset := (page - 1) * perPage

	var cards []RecipeCard
	errList := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Select("recipes.id, recipes.title, recipes.summary, categories.name AS category").
		Joins("JOIN categories ON categories.id = recipes.category_id").
		Order("recipes.created_at DESC").
		Limit(perPage).
		Offset(offset).
		Scan(&cards).Error
	if errList != nil {
		return nil, fmt.Errorf("catalog: list recipes: %w", errList)
	}

	return &RecipePage{
		Recipes: cards,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			HasPrevious: page > 1,
			HasNext:     page < totalPages,
			PrevPage:    page - 1,
			NextPage:    page + 1,
		},
	}, nil
}

// RecipeByID returns the detail view data for one recipe.
func (s *Store) RecipeByID(ctx context.Context, id uint64) (*RecipeDetail, error) {
	var recipe models.Recipe
	errFind := s.db.WithContext(ctx).First(&recipe, id).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: load recipe %d: %w", id, errFind)
	}

	var category models.Category
	if errCat := s.db.WithContext(ctx).First(&category, recipe.CategoryID).Error; errCat != nil && !errors.Is(errCat, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("catalog: load category %d: %w", recipe.CategoryID, errCat)
	}

	var ingredients []models.Ingredient
	if errIng := s.db.WithContext(ctx).Where("recipe_id = ?", id).Order("id ASC").Find(&ingredients).Error; errIng != nil {
		return nil, fmt.Errorf("catalog: load ingredients: %w", errIng)
	}

	detail := RecipeDetail{
		Recipe:           recipe,
		CategoryName:     category.Name,
		Ingredients:      ingredients,
		InstructionLines: splitInstructions(recipe.Instructions),
	}

	var image models.Image
	errImg := s.db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("uploaded_at DESC, id DESC").
		First(&image).Error
	switch {
	case errImg == nil:
		detail.Image = &ImageView{ID: image.ID, WebPath: images.WebPath(image.Filename)}
	case errors.Is(errImg, gorm.ErrRecordNotFound):
		// Recipe without an image.
	default:
		return nil, fmt.Errorf("catalog: load image: %w", errImg)
	}

	return &detail, nil
}

// splitInstructions breaks the stored text into trimmed non-empty lines.
func splitInstructions(instructions string) []string {
	var lines []string
	for _, line := range strings.Split(instructions, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
