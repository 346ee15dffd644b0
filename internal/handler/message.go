package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	domain "github.com/oggyb/sms-gateway-connector/internal/domain/message"
	"github.com/oggyb/sms-gateway-connector/internal/request"
	"github.com/oggyb/sms-gateway-connector/internal/response"
	"github.com/oggyb/sms-gateway-connector/internal/service"
)

// MessageHandler wires HTTP endpoints to the message service.
type MessageHandler struct {
	msgSvc      service.MessageService
	sendTimeout time.Duration
}

// NewMessageHandler constructs a MessageHandler. sendTimeout is how long
// POST /messages waits for the gateway before answering 202.
func NewMessageHandler(msgSvc service.MessageService, sendTimeout time.Duration) *MessageHandler {
	return &MessageHandler{
		msgSvc:      msgSvc,
		sendTimeout: sendTimeout,
	}
}

// SendMessage godoc
// @Summary     Send an SMS
// @Description Forwards the message to the SMS gateway and waits briefly for its reply.
// @Description 200 means the gateway accepted it, 202 that no reply arrived in time,
// @Description 502 that the gateway rejected it.
// @Tags        messages
// @Accept      json
// @Produce     json
// @Param       request body request.SendMessageRequest true "Recipient and text"
// @Success     200 {object} response.MessageResponse
// @Success     202 {object} response.MessageResponse
// @Failure     400 {object} map[string]string
// @Failure     502 {object} map[string]string
// @Router      /messages [post]
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req request.SendMessageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.sendTimeout)
	defer cancel()

	msg, err := h.msgSvc.Send(ctx, req.To, req.Text)
	if errors.Is(err, domain.ErrEmptyRecipient) {
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dto := response.FromDomainMessage(msg)
	switch {
	case !msg.IsCompleted():
		response.RespondJSON(w, http.StatusAccepted, dto)
	case msg.Status == domain.StatusSuccess:
		response.RespondJSON(w, http.StatusOK, dto)
	default:
		detail := "sms gateway rejected the message"
		if msg.FailureDetail != nil {
			detail = *msg.FailureDetail
		}
		response.RespondErrorWithData(w, http.StatusBadGateway, detail, dto)
	}
}

// GetMessage godoc
// @Summary     Get a message
// @Description Returns one journaled request and its outcome.
// @Tags        messages
// @Produce     json
// @Param       id path string true "Message ID"
// @Success     200 {object} response.MessageResponse
// @Failure     400 {object} map[string]string
// @Failure     404 {object} map[string]string
// @Router      /messages/{id} [get]
func (h *MessageHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	msg, err := h.msgSvc.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		response.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.FromDomainMessage(msg))
}

// ListMessages godoc
// @Summary     List messages
// @Description Returns a paginated list of journaled requests, newest first.
// @Tags        messages
// @Produce     json
// @Param       page  query int false "Page number"         default(1)
// @Param       limit query int false "Page size (max 100)" default(20)
// @Success     200 {object} response.MessagesResponse
// @Failure     500 {object} map[string]string
// @Router      /messages [get]
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	page := 1
	limit := 20

	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}

	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	items, total, err := h.msgSvc.List(r.Context(), page, limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := response.MessagesPayload{
		Items: response.FromDomainMessages(items),
		Total: total,
		Page:  page,
		Limit: limit,
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// Stats godoc
// @Summary     Outcome counters
// @Description Returns how many requests were sent and how many succeeded or failed.
// @Tags        messages
// @Produce     json
// @Success     200 {object} response.StatsResponse
// @Failure     500 {object} map[string]string
// @Router      /stats [get]
func (h *MessageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.msgSvc.Stats(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.StatsPayload{
		Sent:      st.Sent,
		Succeeded: st.Succeeded,
		Failed:    st.Failed,
	})
}
