package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"birthday-tracker-api/internal/logging"
	"birthday-tracker-api/internal/models"
	"birthday-tracker-api/internal/services"
	"birthday-tracker-api/pkg/lambda"

	"github.com/sirupsen/logrus"
)

// BirthdayHandler dispatches requests on the HTTP method to the record service
type BirthdayHandler struct {
	service services.BirthdayService
	logger  *logrus.Logger
}

// NewBirthdayHandler creates a new birthday handler
func NewBirthdayHandler(service services.BirthdayService, logger *logrus.Logger) *BirthdayHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &BirthdayHandler{
		service: service,
		logger:  logger,
	}
}

// Handle serves one request. It never returns nil; any failure, including a
// panic further down, becomes a JSON error response.
func (h *BirthdayHandler) Handle(ctx context.Context, req *lambda.Request) (resp *lambda.Response) {
	ctx = logging.WithCorrelationID(ctx, req.RequestID)
	log := logging.FromContext(ctx, h.logger)

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprint(r)).Error("Unhandled error while serving request")
			resp = jsonResponse(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
		}
	}()

	log.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.Path,
	}).Debug("Handling request")

	switch req.Method {
	case http.MethodGet:
		return h.handleList(ctx)
	case http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed})
	}

	input, err := decodeInput(req.Body)
	if err != nil {
		return h.errorResponse(ctx, err)
	}

	switch req.Method {
	case http.MethodPost:
		return h.handleCreate(ctx, input)
	case http.MethodPut:
		return h.handleUpdate(ctx, input)
	default:
		return h.handleDelete(ctx, input)
	}
}

// @Summary List birthdays
// @Description Return every stored birthday record
// @Tags birthdays
// @Produce json
// @Success 200 {array} models.Birthday
// @Failure 500 {object} ErrorResponse
// @Router /birthdays [get]
func (h *BirthdayHandler) handleList(ctx context.Context) *lambda.Response {
	birthdays, err := h.service.List(ctx)
	if err != nil {
		return h.errorResponse(ctx, err)
	}
	if birthdays == nil {
		birthdays = []*models.Birthday{}
	}
	return jsonResponse(http.StatusOK, birthdays)
}

// @Summary Create a birthday
// @Description Store a new birthday record
// @Tags birthdays
// @Accept json
// @Produce json
// @Param birthday body models.BirthdayInput true "Record without id"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /birthdays [post]
func (h *BirthdayHandler) handleCreate(ctx context.Context, input *models.BirthdayInput) *lambda.Response {
	id, err := h.service.Create(ctx, input)
	if err != nil {
		return h.errorResponse(ctx, err)
	}
	return jsonResponse(http.StatusCreated, MessageResponse{Message: "Record created", ID: &id})
}

// @Summary Update a birthday
// @Description Replace name, birthday, idea and link of an existing record
// @Tags birthdays
// @Accept json
// @Produce json
// @Param birthday body models.BirthdayInput true "Record with id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /birthdays [put]
func (h *BirthdayHandler) handleUpdate(ctx context.Context, input *models.BirthdayInput) *lambda.Response {
	if err := h.service.Update(ctx, input); err != nil {
		return h.errorResponse(ctx, err)
	}
	return jsonResponse(http.StatusOK, MessageResponse{Message: "Record updated"})
}

// @Summary Delete a birthday
// @Description Remove the record with the given id
// @Tags birthdays
// @Accept json
// @Produce json
// @Param birthday body models.BirthdayInput true "Object carrying the id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /birthdays [delete]
func (h *BirthdayHandler) handleDelete(ctx context.Context, input *models.BirthdayInput) *lambda.Response {
	if err := h.service.Delete(ctx, input); err != nil {
		return h.errorResponse(ctx, err)
	}
	return jsonResponse(http.StatusOK, MessageResponse{Message: "Record deleted"})
}

func (h *BirthdayHandler) errorResponse(ctx context.Context, err error) *lambda.Response {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(ctx, h.logger).WithError(err).Error("Request failed")
	}
	return jsonResponse(status, body)
}

// decodeInput parses the body as a JSON object. An empty body or a JSON
// null reads as an empty object.
func decodeInput(body []byte) (*models.BirthdayInput, error) {
	input := &models.BirthdayInput{}
	if len(bytes.TrimSpace(body)) == 0 {
		return input, nil
	}
	if err := json.Unmarshal(body, input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return input, nil
}

func jsonResponse(status int, body interface{}) *lambda.Response {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload = []byte(`{"error":"Internal server error"}`)
	}
	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       payload,
	}
}
