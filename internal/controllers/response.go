package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"fintrack-be/internal/apperror"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/models"
)

const dateLayout = "2006-01-02"

// respond writes the envelope for a service result. A value that comes back together
// with an error is still included in the response.
func respond(c *gin.Context, successStatus int, value any, err error) {
	if err == nil {
		c.JSON(successStatus, models.RequestResponse{Response: value})
		return
	}

	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.TechnicalError(err)
	}
	if appErr.Status == apperror.StatusInternal || appErr.Status == apperror.StatusUnavailable {
		applog.For(c.Request.Context(), applog.ComponentHTTP).ErrorContext(c.Request.Context(), "Request failed",
			applog.FieldErrorCode, appErr.Code,
			applog.FieldError, err)
		_ = c.Error(err)
	}

	c.JSON(appErr.Status.HTTPStatus(), models.RequestResponse{
		Response: value,
		ErrorMessage: &models.ErrorMessage{
			Message:   appErr.Message,
			ErrorCode: string(appErr.Code),
			Status:    string(appErr.Status),
		},
	})
}

func badRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, nil, apperror.InvalidRequest(message))
}

// bindJSON decodes the body and reports the first binding failure as an envelope error
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, bindingMessage(err))
		return false
	}
	return true
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("The %s field failed the %s check!", lowerFirst(fe.Field()), fe.Tag())
	}
	return "Invalid request body!"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "The id must be a valid UUID!")
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads page, pageSize and search. Missing values take the defaults;
// malformed numbers are rejected.
func pagination(c *gin.Context) (models.PaginationSearchQuery, bool) {
	q := models.PaginationSearchQuery{
		Page:     models.DefaultPage,
		PageSize: models.DefaultPageSize,
		Search:   c.Query("search"),
	}
	var err error
	if v := c.Query("page"); v != "" {
		if q.Page, err = strconv.Atoi(v); err != nil {
			badRequest(c, "The page parameter must be an integer!")
			return q, false
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if q.PageSize, err = strconv.Atoi(v); err != nil {
			badRequest(c, "The pageSize parameter must be an integer!")
			return q, false
		}
	}
	return q, true
}

// transactionQuery adds the date range and category filters of expense and income listings
func transactionQuery(c *gin.Context) (models.TransactionQuery, bool) {
	p, ok := pagination(c)
	if !ok {
		return models.TransactionQuery{}, false
	}
	q := models.TransactionQuery{PaginationSearchQuery: p}

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			badRequest(c, "The from parameter must be a YYYY-MM-DD date!")
			return q, false
		}
		q.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			badRequest(c, "The to parameter must be a YYYY-MM-DD date!")
			return q, false
		}
		// inclusive of the whole day
		end := to.Add(24*time.Hour - time.Nanosecond)
		q.To = &end
	}
	if v := c.Query("categoryId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			badRequest(c, "The categoryId parameter must be a valid UUID!")
			return q, false
		}
		q.CategoryID = &id
	}
	return q, true
}
