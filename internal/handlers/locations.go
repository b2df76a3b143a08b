package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

var errInvalidLocationStatus = errors.New("status must be active or inactive")

type createLocationRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
	Region   string `json:"region"`
	Province string `json:"province"`
	City     string `json:"city"`
}

type updateLocationRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status"`
	Region   *string `json:"region"`
	Province *string `json:"province"`
	City     *string `json:"city"`
}

func normalizeLocationStatus(v string) (string, error) {
	switch status := strings.ToLower(strings.TrimSpace(v)); status {
	case "":
		return models.LocationActive, nil
	case models.LocationActive, models.LocationInactive:
		return status, nil
	}
	return "", errInvalidLocationStatus
}

func ListLocations(st store.LocationStore) gin.HandlerFunc {
	return listHandler("GET /api/locations", st.ListLocations)
}

func GetLocation(st store.LocationStore) gin.HandlerFunc {
	return getHandler("GET /api/locations/:id", "location", st.GetLocation)
}

func CreateLocation(st store.LocationStore) gin.HandlerFunc {
	return createHandler("POST /api/locations", "location", func(req createLocationRequest) (models.Location, error) {
		status, err := normalizeLocationStatus(req.Status)
		if err != nil {
			return models.Location{}, err
		}
		address := strings.TrimSpace(req.Address)
		if address == "" {
			return models.Location{}, errors.New("address is required")
		}
		return models.Location{
			Name:     strings.TrimSpace(req.Name),
			Address:  address,
			Phone:    strings.TrimSpace(req.Phone),
			Status:   status,
			Region:   strings.TrimSpace(req.Region),
			Province: strings.TrimSpace(req.Province),
			City:     strings.TrimSpace(req.City),
		}, nil
	}, st.CreateLocation)
}

func UpdateLocation(st store.LocationStore) gin.HandlerFunc {
	return updateHandler("PUT /api/locations/:id", "location", st.GetLocation, func(l *models.Location, req updateLocationRequest) error {
		if req.Status != nil {
			status, err := normalizeLocationStatus(*req.Status)
			if err != nil {
				return err
			}
			l.Status = status
		}
		setString(&l.Name, req.Name)
		setString(&l.Address, req.Address)
		setString(&l.Phone, req.Phone)
		setString(&l.Region, req.Region)
		setString(&l.Province, req.Province)
		setString(&l.City, req.City)
		return nil
	}, st.UpdateLocation)
}

func DeleteLocation(st store.LocationStore) gin.HandlerFunc {
	return deleteHandler("DELETE /api/locations/:id", "location", st.DeleteLocation)
}
