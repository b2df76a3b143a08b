package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/intake"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

const requestTimeout = 5 * time.Second

var log = logrus.NewEntry(logrus.StandardLogger()).WithField("component", "http")

// SetLogger replaces the logger used for handler errors.
func SetLogger(l *logrus.Entry) {
	log = l
}

// UseJSONFieldNames makes binding errors report json field names.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

func withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.WithField("route", route).Errorf("panic recovered: %v", r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureStore(ctx context.Context, st store.Store) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return st.Ping(checkCtx)
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.WithFields(logrus.Fields{"route": route, "status": status}).Info(message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondStoreError maps a store error to 404 or a generic 500. The
// underlying error is only logged.
func respondStoreError(c *gin.Context, route, entity string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(c, http.StatusNotFound, route, entity+" not found")
		return
	}
	log.WithError(err).WithField("route", route).Error("store call failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func respondIntakeError(c *gin.Context, route string, err error) {
	var vErr intake.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.WithField("route", route).Info(vErr.Error())
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": []string{vErr.Error()},
		})
	case errors.Is(err, intake.ErrMealSetNotFound):
		respondWithError(c, http.StatusNotFound, route, "meal set not found")
	default:
		log.WithError(err).WithField("route", route).Error("order intake failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
	}
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := fieldError.Field()
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "gte", "min":
				details = append(details, fmt.Sprintf("%s must be at least %s", field, fieldError.Param()))
			case "oneof":
				details = append(details, fmt.Sprintf("%s must be one of %s", field, fieldError.Param()))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

/* =========================
   GENERIC CRUD
========================= */

func listHandler[T any](route string, list func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := withTimeout(c)
		defer cancel()

		rows, err := list(ctx)
		if err != nil {
			respondStoreError(c, route, "record", err)
			return
		}
		if rows == nil {
			rows = []T{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

func getHandler[T any](route, entity string, get func(context.Context, string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := withTimeout(c)
		defer cancel()

		row, err := get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, entity, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func deleteHandler(route, entity string, del func(context.Context, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := withTimeout(c)
		defer cancel()

		if err := del(ctx, c.Param("id")); err != nil {
			respondStoreError(c, route, entity, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": entity + " deleted"})
	}
}

// createHandler binds R, converts it with build, and stores the result.
func createHandler[R any, T any](route, entity string, build func(R) (T, error), create func(context.Context, T) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		var req R
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		row, err := build(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := withTimeout(c)
		defer cancel()

		created, err := create(ctx, row)
		if err != nil {
			respondStoreError(c, route, entity, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// updateHandler loads the row, applies the bound patch, and writes it back.
// Fields absent from the body are left as they were.
func updateHandler[R any, T any](
	route, entity string,
	get func(context.Context, string) (T, error),
	apply func(*T, R) error,
	update func(context.Context, T) (T, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		var req R
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := withTimeout(c)
		defer cancel()

		row, err := get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, entity, err)
			return
		}
		if err := apply(&row, req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		updated, err := update(ctx, row)
		if err != nil {
			respondStoreError(c, route, entity, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setOptionalID(dst **string, v *string) {
	if v == nil {
		return
	}
	id := strings.TrimSpace(*v)
	if id == "" {
		*dst = nil
		return
	}
	*dst = &id
}

func optionalID(v string) *string {
	id := strings.TrimSpace(v)
	if id == "" {
		return nil
	}
	return &id
}
