package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

var errInvalidCategory = errors.New("category must be one of snack, main, side, beverage")

/* =========================
   ITEMS
========================= */

type createItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category"`
	IsAvailable *bool    `json:"is_available"`
}

type updateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	IsAvailable *bool    `json:"is_available"`
}

func normalizeCategory(v string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(v))
	if category != "" && !models.ValidItemCategory(category) {
		return "", errInvalidCategory
	}
	return category, nil
}

func ListItems(st store.ItemStore) gin.HandlerFunc {
	return listHandler("GET /api/items", st.ListItems)
}

func GetItem(st store.ItemStore) gin.HandlerFunc {
	return getHandler("GET /api/items/:id", "item", st.GetItem)
}

func CreateItem(st store.ItemStore) gin.HandlerFunc {
	return createHandler("POST /api/items", "item", func(req createItemRequest) (models.Item, error) {
		category, err := normalizeCategory(req.Category)
		if err != nil {
			return models.Item{}, err
		}
		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}
		return models.Item{
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			Price:       *req.Price,
			Category:    category,
			IsAvailable: available,
		}, nil
	}, st.CreateItem)
}

func UpdateItem(st store.ItemStore) gin.HandlerFunc {
	return updateHandler("PUT /api/items/:id", "item", st.GetItem, func(it *models.Item, req updateItemRequest) error {
		if req.Category != nil {
			category, err := normalizeCategory(*req.Category)
			if err != nil {
				return err
			}
			it.Category = category
		}
		setString(&it.Name, req.Name)
		setString(&it.Description, req.Description)
		if req.Price != nil {
			it.Price = *req.Price
		}
		if req.IsAvailable != nil {
			it.IsAvailable = *req.IsAvailable
		}
		return nil
	}, st.UpdateItem)
}

func DeleteItem(st store.ItemStore) gin.HandlerFunc {
	return deleteHandler("DELETE /api/items/:id", "item", st.DeleteItem)
}

/* =========================
   MEAL SETS
========================= */

type createMealSetRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"gte=0"`
	Items       []string `json:"items"`
	IsAvailable *bool    `json:"is_available"`
}

type updateMealSetRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Items       *[]string `json:"items"`
	IsAvailable *bool     `json:"is_available"`
}

// cleanItemIDs trims ids and drops blanks, keeping order and duplicates.
func cleanItemIDs(ids []string) models.StringList {
	out := make(models.StringList, 0, len(ids))
	for _, id := range ids {
		if v := strings.TrimSpace(id); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func ListMealSets(st store.MealSetStore) gin.HandlerFunc {
	return listHandler("GET /api/meal-sets", st.ListMealSets)
}

func GetMealSet(st store.MealSetStore) gin.HandlerFunc {
	return getHandler("GET /api/meal-sets/:id", "meal set", st.GetMealSet)
}

func CreateMealSet(st store.MealSetStore) gin.HandlerFunc {
	return createHandler("POST /api/meal-sets", "meal set", func(req createMealSetRequest) (models.MealSet, error) {
		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}
		return models.MealSet{
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			Price:       req.Price,
			Items:       cleanItemIDs(req.Items),
			IsAvailable: available,
		}, nil
	}, st.CreateMealSet)
}

func UpdateMealSet(st store.MealSetStore) gin.HandlerFunc {
	return updateHandler("PUT /api/meal-sets/:id", "meal set", st.GetMealSet, func(ms *models.MealSet, req updateMealSetRequest) error {
		setString(&ms.Name, req.Name)
		setString(&ms.Description, req.Description)
		if req.Price != nil {
			ms.Price = *req.Price
		}
		if req.Items != nil {
			ms.Items = cleanItemIDs(*req.Items)
		}
		if req.IsAvailable != nil {
			ms.IsAvailable = *req.IsAvailable
		}
		return nil
	}, st.UpdateMealSet)
}

func DeleteMealSet(st store.MealSetStore) gin.HandlerFunc {
	return deleteHandler("DELETE /api/meal-sets/:id", "meal set", st.DeleteMealSet)
}
