package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"forum-api/internal/application"
	"forum-api/internal/domain/entity"
	"forum-api/internal/domain/repository"
	"forum-api/internal/interface/middleware"
	"forum-api/pkg/response"
	"forum-api/pkg/validation"
)

type TopicHandler struct {
	Svc    *application.TopicService
	Logger *logrus.Logger
}

func NewTopicHandler(svc *application.TopicService, logger *logrus.Logger) *TopicHandler {
	return &TopicHandler{Svc: svc, Logger: logger}
}

type topicRequest struct {
	Title      string `json:"title" binding:"required,ttitle"`
	Message    string `json:"message" binding:"required,tmessage"`
	CourseName string `json:"courseName" binding:"required,cname"`
}

// topicUpdateRequest fields are all optional; blank values keep the stored
// ones, so no binding bounds here. The service validates after trimming.
type topicUpdateRequest struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	CourseName string `json:"courseName"`
}

type topicResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	AuthorUsername string    `json:"authorUsername"`
	CourseName     string    `json:"courseName"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toTopicResponse(t *entity.Topic) topicResponse {
	return topicResponse{
		ID:             t.ID,
		Title:          t.Title,
		Message:        t.Message,
		AuthorUsername: t.Author.Username,
		CourseName:     t.Course.Name,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toTopicResponses(topics []*entity.Topic) []topicResponse {
	out := make([]topicResponse, 0, len(topics))
	for _, t := range topics {
		out = append(out, toTopicResponse(t))
	}
	return out
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid topic id",
			map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// List GET /api/topics?page&size&sortBy&sortDir&courseName&search
func (h *TopicHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	q := repository.ListQuery{
		Page:       page,
		Size:       size,
		SortBy:     c.DefaultQuery("sortBy", repository.SortCreatedAt),
		SortDir:    c.DefaultQuery("sortDir", "desc"),
		CourseName: c.Query("courseName"),
		Search:     c.Query("search"),
	}

	result, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	meta := response.Pagination{
		Page:       result.Number,
		Size:       result.Size,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
		IsFirst:    result.First,
		IsLast:     result.Last,
	}
	response.Success(c, http.StatusOK, toTopicResponses(result.Items), "topics listed", meta)
}

// MyTopics GET /api/topics/my-topics (auth)
func (h *TopicHandler) MyTopics(c *gin.Context) {
	username := c.GetString(middleware.CtxUsernameKey)
	topics, err := h.Svc.ListByAuthor(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTopicResponses(topics), "your topics listed", nil)
}

// ByCourse GET /api/topics/course/:courseName
func (h *TopicHandler) ByCourse(c *gin.Context) {
	courseName := c.Param("courseName")
	topics, err := h.Svc.ListByCourse(c.Request.Context(), courseName)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTopicResponses(topics), "course topics listed", nil)
}

// Get GET /api/topics/:id
func (h *TopicHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	topic, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTopicResponse(topic), "topic found", nil)
}

// Create POST /api/topics (auth)
func (h *TopicHandler) Create(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	username := c.GetString(middleware.CtxUsernameKey)
	topic, err := h.Svc.Create(c.Request.Context(), req.Title, req.Message, req.CourseName, username)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toTopicResponse(topic), "topic created", nil)
}

// Update PUT /api/topics/:id (auth + ownership)
func (h *TopicHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req topicUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	username := c.GetString(middleware.CtxUsernameKey)
	topic, err := h.Svc.Update(c.Request.Context(), id, req.Title, req.Message, req.CourseName, username)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTopicResponse(topic), "topic updated", nil)
}

// Delete DELETE /api/topics/:id (auth + ownership)
func (h *TopicHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	username := c.GetString(middleware.CtxUsernameKey)
	if err := h.Svc.Delete(c.Request.Context(), id, username); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "topic deleted", nil)
}
