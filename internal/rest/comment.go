package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"sitecomments/domain"
	"sitecomments/internal/rest/middleware"
	"sitecomments/internal/rest/request"
	"sitecomments/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPageSize = 10
	PageSizeMin     = 1
	PageSizeMax     = 50
)

// CommentHandler represent the httphandler for comments
type CommentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *CommentHandler {
	return &CommentHandler{
		Service: svc,
	}
}

// RegisterValidations installs the reactiontype rule on gin's binding
// engine. Call once before serving.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("reactiontype", func(fl validator.FieldLevel) bool {
			return domain.ReactionType(fl.Field().String()).Valid()
		})
	}
}

// ListComments returns one page of a slug's comment section. Anonymous
// viewers get empty viewer_applied sets.
func (h *CommentHandler) ListComments(c *gin.Context) {
	slug := c.Param("slug")

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil || pageSize < PageSizeMin || pageSize > PageSizeMax {
		pageSize = DefaultPageSize
	}

	viewer := middleware.IdentityFromContext(c)
	ctx := c.Request.Context()

	res := h.Service.List(ctx, viewer, slug, page, pageSize)
	c.JSON(http.StatusOK, response.NewCommentPageFromDomain(res))
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	identity := middleware.IdentityFromContext(c)
	slug := c.Param("slug")
	ctx := c.Request.Context()

	created, err := h.Service.Create(ctx, identity, slug, req.Content, req.ParentID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewCommentFromDomain(created))
}

func (h *CommentHandler) ToggleReaction(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.Reaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	identity := middleware.IdentityFromContext(c)
	ctx := c.Request.Context()

	state, err := h.Service.ToggleReaction(ctx, identity, int64(idP), domain.ReactionType(req.Type))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewReactionStateFromDomain(state))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	identity := middleware.IdentityFromContext(c)
	ctx := c.Request.Context()

	if err := h.Service.Delete(ctx, identity, int64(idP)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CommentHandler) EditComment(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.CommentEdit
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	identity := middleware.IdentityFromContext(c)
	ctx := c.Request.Context()

	updated, err := h.Service.Edit(ctx, identity, int64(idP), req.Content)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentFromDomain(updated))
}

// getStatusCode will get the code of the error from domain.CommentUsecase
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch err {
	case domain.ErrInternalServerError:
		return http.StatusInternalServerError
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrBadParamInput, domain.ErrReplyToReply:
		return http.StatusBadRequest
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
