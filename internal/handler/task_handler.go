package handler

import (
	"net/http"
	"sort"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskRepo    repository.TaskRepositoryInterface
	columnRepo  repository.ColumnRepositoryInterface
	boardRepo   repository.BoardRepositoryInterface
	labelRepo   repository.LabelRepositoryInterface
	subtaskRepo repository.SubtaskRepositoryInterface
	commentRepo repository.CommentRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	logger      *zap.Logger
}

func NewTaskHandler(
	taskRepo repository.TaskRepositoryInterface,
	columnRepo repository.ColumnRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	labelRepo repository.LabelRepositoryInterface,
	subtaskRepo repository.SubtaskRepositoryInterface,
	commentRepo repository.CommentRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	logger *zap.Logger,
) *TaskHandler {
	return &TaskHandler{
		taskRepo:    taskRepo,
		columnRepo:  columnRepo,
		boardRepo:   boardRepo,
		labelRepo:   labelRepo,
		subtaskRepo: subtaskRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

type CreateTaskRequest struct {
	BoardID     string `json:"board_id" binding:"required,uuid"`
	ColumnID    string `json:"column_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Completed   *bool   `json:"completed"`
	ColumnID    *string `json:"column_id"`
	Position    *int    `json:"position"`
}

type MoveTaskRequest struct {
	ColumnID string `json:"column_id" binding:"required,uuid"`
	Position *int   `json:"position" binding:"required"`
}

type ReorderTasksRequest struct {
	TaskIDs []string `json:"taskIds" binding:"required"`
}

type AddAssigneeRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type AddTaskLabelRequest struct {
	LabelID string `json:"label_id" binding:"required,uuid"`
}

type SubtaskResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
	Avatar    string    `json:"avatar"`
}

// TaskDetailResponse is the full task view: complete assignee, label, subtask
// and comment content, unlike the board view's counts.
type TaskDetailResponse struct {
	ID          uuid.UUID         `json:"id"`
	BoardID     uuid.UUID         `json:"board_id"`
	ColumnID    uuid.UUID         `json:"column_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    string            `json:"priority"`
	DueDate     string            `json:"due_date"`
	Position    int               `json:"position"`
	Completed   bool              `json:"completed"`
	CreatedBy   uuid.UUID         `json:"created_by"`
	CreatedAt   time.Time         `json:"created_at"`
	CreatorName string            `json:"creator_name"`
	Assignees   []UserSummary     `json:"assignees"`
	Labels      []LabelResponse   `json:"labels"`
	Subtasks    []SubtaskResponse `json:"subtasks"`
	Comments    []CommentResponse `json:"comments"`
}

// AssignedTaskResponse annotates a task with its board and column names for
// the my-assigned view.
type AssignedTaskResponse struct {
	ID         uuid.UUID `json:"id"`
	BoardID    uuid.UUID `json:"board_id"`
	ColumnID   uuid.UUID `json:"column_id"`
	Title      string    `json:"title"`
	Priority   string    `json:"priority"`
	DueDate    string    `json:"due_date"`
	Completed  bool      `json:"completed"`
	BoardName  string    `json:"board_name"`
	ColumnName string    `json:"column_name"`
}

func subtaskResponse(s *model.Subtask) SubtaskResponse {
	return SubtaskResponse{
		ID:        s.ID,
		TaskID:    s.TaskID,
		Title:     s.Title,
		Completed: s.Completed,
		Position:  s.Position,
	}
}

// GetByID assembles the full task detail.
func (h *TaskHandler) GetByID(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if err == repository.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	detail := TaskDetailResponse{
		ID:          task.ID,
		BoardID:     task.BoardID,
		ColumnID:    task.ColumnID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Position:    task.Position,
		Completed:   task.Completed,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		Assignees:   []UserSummary{},
		Labels:      []LabelResponse{},
		Subtasks:    []SubtaskResponse{},
		Comments:    []CommentResponse{},
	}

	// Creator may have been deleted since; the view degrades to an empty name.
	creator, err := h.userRepo.GetByID(c.Request.Context(), task.CreatedBy)
	if err == nil && creator != nil {
		detail.CreatorName = creator.Name
	}

	assignees, err := h.taskRepo.GetAssignees(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignees"})
		return
	}
	for i := range assignees {
		detail.Assignees = append(detail.Assignees, userSummary(&assignees[i]))
	}

	labels, err := h.labelRepo.GetByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}
	for i := range labels {
		detail.Labels = append(detail.Labels, labelResponse(&labels[i]))
	}

	subtasks, err := h.subtaskRepo.GetByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subtasks"})
		return
	}
	for i := range subtasks {
		detail.Subtasks = append(detail.Subtasks, subtaskResponse(&subtasks[i]))
	}

	comments, err := h.commentRepo.GetByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}
	for i := range comments {
		detail.Comments = append(detail.Comments, h.commentResponse(c, &comments[i]))
	}

	c.JSON(http.StatusOK, gin.H{"task": detail})
}

// commentResponse annotates a comment with its author's name and avatar,
// degrading to empty values when the user record is gone.
func (h *TaskHandler) commentResponse(c *gin.Context, comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	user, err := h.userRepo.GetByID(c.Request.Context(), comment.UserID)
	if err == nil && user != nil {
		resp.UserName = user.Name
		resp.Avatar = user.Avatar
	}
	return resp
}

// Create appends a task to the given column.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board, column and title are required"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}
	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "low"
	}

	task := &model.Task{
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Completed:   false,
		CreatedBy:   userID,
	}

	if err := h.taskRepo.CreateAtEnd(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": TaskSummary{
		ID:          task.ID,
		BoardID:     task.BoardID,
		ColumnID:    task.ColumnID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Position:    task.Position,
		Completed:   task.Completed,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		Assignees:   []UserSummary{},
		Labels:      []LabelResponse{},
	}})
}

// Update applies the provided subset of task fields; omitted fields are left
// untouched.
func (h *TaskHandler) Update(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if err == repository.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.ColumnID != nil {
		columnID, err := uuid.Parse(*req.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		task.ColumnID = columnID
	}
	if req.Position != nil {
		task.Position = *req.Position
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": TaskSummary{
		ID:          task.ID,
		BoardID:     task.BoardID,
		ColumnID:    task.ColumnID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Position:    task.Position,
		Completed:   task.Completed,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		Assignees:   []UserSummary{},
		Labels:      []LabelResponse{},
	}})
}

// Move overwrites the task's column and position. Siblings are not
// renumbered; the client follows up with a reorder when it wants dense
// positions.
func (h *TaskHandler) Move(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column and position are required"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if err := h.taskRepo.Move(c.Request.Context(), taskID, columnID, *req.Position); err != nil {
		if err == repository.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task moved successfully"})
}

// Reorder rewrites task positions to match the submitted order.
func (h *TaskHandler) Reorder(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ids := make([]uuid.UUID, len(req.TaskIDs))
	for i, idStr := range req.TaskIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
			return
		}
		ids[i] = id
	}

	if err := h.taskRepo.Reorder(c.Request.Context(), ids); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tasks reordered"})
}

// Delete removes the task and everything attached to it.
func (h *TaskHandler) Delete(c *gin.Context) {
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

	if err := h.taskRepo.DeleteCascade(c.Request.Context(), taskID); err != nil {
		h.logger.Error("task cascade delete failed", zap.String("task_id", taskID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// MyAssigned lists the caller's incomplete assigned tasks, earliest due date
// first with undated tasks last.
func (h *TaskHandler) MyAssigned(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskRepo.GetAssignedIncomplete(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assigned tasks"})
		return
	}

	result := make([]AssignedTaskResponse, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		resp := AssignedTaskResponse{
			ID:        task.ID,
			BoardID:   task.BoardID,
			ColumnID:  task.ColumnID,
			Title:     task.Title,
			Priority:  task.Priority,
			DueDate:   task.DueDate,
			Completed: task.Completed,
		}

		board, err := h.boardRepo.GetByID(c.Request.Context(), task.BoardID)
		if err == nil && board != nil {
			resp.BoardName = board.Name
		}
		column, err := h.columnRepo.GetByID(c.Request.Context(), task.ColumnID)
		if err == nil && column != nil {
			resp.ColumnName = column.Name
		}

		result = append(result, resp)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DueDate == "" {
			return false
		}
		if result[j].DueDate == "" {
			return true
		}
		return result[i].DueDate < result[j].DueDate
	})

	c.JSON(http.StatusOK, gin.H{"tasks": result})
}

// AddAssignee assigns a user to the task; re-adding is a no-op. The refreshed
// assignee list is returned either way.
func (h *TaskHandler) AddAssignee(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req AddAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	assigneeID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.taskRepo.AddAssignee(c.Request.Context(), taskID, assigneeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add assignee"})
		return
	}

	assignees, err := h.taskRepo.GetAssignees(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignees"})
		return
	}

	result := make([]UserSummary, len(assignees))
	for i := range assignees {
		result[i] = userSummary(&assignees[i])
	}
	c.JSON(http.StatusOK, gin.H{"assignees": result})
}

// RemoveAssignee removes a user assignment from the task.
func (h *TaskHandler) RemoveAssignee(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	assigneeID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.taskRepo.RemoveAssignee(c.Request.Context(), taskID, assigneeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove assignee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignee removed"})
}

// AddLabel attaches a board label to the task; re-adding is a no-op. The
// refreshed label list is returned either way.
func (h *TaskHandler) AddLabel(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req AddTaskLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Label ID is required"})
		return
	}

	labelID, err := uuid.Parse(req.LabelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	if err := h.taskRepo.AddLabel(c.Request.Context(), taskID, labelID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add label"})
		return
	}

	labels, err := h.labelRepo.GetByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}

	result := make([]LabelResponse, len(labels))
	for i := range labels {
		result[i] = labelResponse(&labels[i])
	}
	c.JSON(http.StatusOK, gin.H{"labels": result})
}

// RemoveLabel detaches a label from the task.
func (h *TaskHandler) RemoveLabel(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	labelID, err := uuid.Parse(c.Param("labelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	if err := h.taskRepo.RemoveLabel(c.Request.Context(), taskID, labelID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove label"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label removed"})
}
