package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LabelHandler struct {
	labelRepo  repository.LabelRepositoryInterface
	boardRepo  repository.BoardRepositoryInterface
	memberRepo repository.BoardMemberRepositoryInterface
}

func NewLabelHandler(
	labelRepo repository.LabelRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	memberRepo repository.BoardMemberRepositoryInterface,
) *LabelHandler {
	return &LabelHandler{
		labelRepo:  labelRepo,
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
	}
}

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// Create adds a label to the board's catalog.
func (h *LabelHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if _, ok := boardWithAccess(c, h.boardRepo, h.memberRepo, boardID, userID); !ok {
		return
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Label name is required"})
		return
	}

	color := req.Color
	if color == "" {
		color = "#3498db"
	}

	label := &model.Label{
		BoardID: boardID,
		Name:    req.Name,
		Color:   color,
	}

	if err := h.labelRepo.Create(c.Request.Context(), label); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create label"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"label": labelResponse(label)})
}

// Delete removes a label and every task attachment referencing it.
func (h *LabelHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	labelID, err := uuid.Parse(c.Param("labelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	if _, ok := boardWithAccess(c, h.boardRepo, h.memberRepo, boardID, userID); !ok {
		return
	}

	if err := h.labelRepo.DeleteCascade(c.Request.Context(), labelID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete label"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label deleted"})
}
