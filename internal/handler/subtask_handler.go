package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubtaskHandler struct {
	subtaskRepo repository.SubtaskRepositoryInterface
	taskRepo    repository.TaskRepositoryInterface
}

func NewSubtaskHandler(
	subtaskRepo repository.SubtaskRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
) *SubtaskHandler {
	return &SubtaskHandler{
		subtaskRepo: subtaskRepo,
		taskRepo:    taskRepo,
	}
}

type CreateSubtaskRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateSubtaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// Create appends a subtask to the task's checklist.
func (h *SubtaskHandler) Create(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if _, err := h.taskRepo.GetByID(c.Request.Context(), taskID); err != nil {
		if err == repository.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	var req CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subtask title is required"})
		return
	}

	subtask := &model.Subtask{
		TaskID: taskID,
		Title:  req.Title,
	}

	if err := h.subtaskRepo.CreateAtEnd(c.Request.Context(), subtask); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subtask"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtask": subtaskResponse(subtask)})
}

// Update applies the provided subset of title/completed.
func (h *SubtaskHandler) Update(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	subtaskID, err := uuid.Parse(c.Param("subtaskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subtask ID format"})
		return
	}

	subtask, err := h.subtaskRepo.GetByID(c.Request.Context(), subtaskID)
	if err != nil {
		if err == repository.ErrSubtaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subtask"})
		}
		return
	}

	var req UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		subtask.Title = *req.Title
	}
	if req.Completed != nil {
		subtask.Completed = *req.Completed
	}

	if err := h.subtaskRepo.Update(c.Request.Context(), subtask); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subtask"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtask": subtaskResponse(subtask)})
}

// Delete removes a single subtask.
func (h *SubtaskHandler) Delete(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	subtaskID, err := uuid.Parse(c.Param("subtaskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subtask ID format"})
		return
	}

	if _, err := h.subtaskRepo.GetByID(c.Request.Context(), subtaskID); err != nil {
		if err == repository.ErrSubtaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subtask"})
		}
		return
	}

	if err := h.subtaskRepo.Delete(c.Request.Context(), subtaskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subtask"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subtask deleted"})
}
