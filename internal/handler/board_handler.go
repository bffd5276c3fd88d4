package handler

import (
	"net/http"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BoardHandler struct {
	boardRepo   repository.BoardRepositoryInterface
	memberRepo  repository.BoardMemberRepositoryInterface
	columnRepo  repository.ColumnRepositoryInterface
	taskRepo    repository.TaskRepositoryInterface
	labelRepo   repository.LabelRepositoryInterface
	subtaskRepo repository.SubtaskRepositoryInterface
	commentRepo repository.CommentRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	logger      *zap.Logger
}

func NewBoardHandler(
	boardRepo repository.BoardRepositoryInterface,
	memberRepo repository.BoardMemberRepositoryInterface,
	columnRepo repository.ColumnRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
	labelRepo repository.LabelRepositoryInterface,
	subtaskRepo repository.SubtaskRepositoryInterface,
	commentRepo repository.CommentRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	logger *zap.Logger,
) *BoardHandler {
	return &BoardHandler{
		boardRepo:   boardRepo,
		memberRepo:  memberRepo,
		columnRepo:  columnRepo,
		taskRepo:    taskRepo,
		labelRepo:   labelRepo,
		subtaskRepo: subtaskRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateBoardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type BoardResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	CreatorName string    `json:"creator_name"`
}

// BoardSummary annotates a board for the list view.
type BoardSummary struct {
	BoardResponse
	TaskCount      int64            `json:"task_count"`
	CompletedCount int64            `json:"completed_count"`
	Members        []MemberResponse `json:"members"`
}

type SubtaskCount struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

// TaskSummary is the board view's task shape: joined summaries and counts
// only, no subtask or comment content.
type TaskSummary struct {
	ID           uuid.UUID     `json:"id"`
	BoardID      uuid.UUID     `json:"board_id"`
	ColumnID     uuid.UUID     `json:"column_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Priority     string        `json:"priority"`
	DueDate      string        `json:"due_date"`
	Position     int           `json:"position"`
	Completed    bool          `json:"completed"`
	CreatedBy    uuid.UUID     `json:"created_by"`
	CreatedAt    time.Time     `json:"created_at"`
	Assignees    []UserSummary `json:"assignees"`
	Labels       []LabelResponse `json:"labels"`
	SubtaskCount SubtaskCount  `json:"subtask_count"`
	CommentCount int64         `json:"comment_count"`
}

type ColumnResponse struct {
	ID       uuid.UUID     `json:"id"`
	BoardID  uuid.UUID     `json:"board_id"`
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	Position int           `json:"position"`
	Tasks    []TaskSummary `json:"tasks"`
}

type BoardDetailResponse struct {
	Board   BoardResponse    `json:"board"`
	Columns []ColumnResponse `json:"columns"`
	Members []MemberResponse `json:"members"`
	Labels  []LabelResponse  `json:"labels"`
}

// defaultColumns are created alongside every new board.
var defaultColumns = []model.Column{
	{Name: "To Do", Color: "#e74c3c", Position: 0},
	{Name: "In Progress", Color: "#f39c12", Position: 1},
	{Name: "Review", Color: "#9b59b6", Position: 2},
	{Name: "Done", Color: "#27ae60", Position: 3},
}

// creatorName resolves a user's name, degrading to "" when the record is gone.
func (h *BoardHandler) creatorName(c *gin.Context, userID uuid.UUID) string {
	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Name
}

func (h *BoardHandler) boardResponse(c *gin.Context, board *model.Board) BoardResponse {
	return BoardResponse{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		Color:       board.Color,
		CreatedBy:   board.CreatedBy,
		CreatedAt:   board.CreatedAt,
		CreatorName: h.creatorName(c, board.CreatedBy),
	}
}

// taskSummary assembles the board view's per-task annotations: assignee and
// label summaries plus subtask/comment counts. Stale join rows are skipped.
func (h *BoardHandler) taskSummary(c *gin.Context, task *model.Task) (TaskSummary, error) {
	summary := TaskSummary{
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
	}

	assignees, err := h.taskRepo.GetAssignees(c.Request.Context(), task.ID)
	if err != nil {
		return summary, err
	}
	for i := range assignees {
		summary.Assignees = append(summary.Assignees, userSummary(&assignees[i]))
	}

	labels, err := h.labelRepo.GetByTask(c.Request.Context(), task.ID)
	if err != nil {
		return summary, err
	}
	for i := range labels {
		summary.Labels = append(summary.Labels, labelResponse(&labels[i]))
	}

	total, completed, err := h.subtaskRepo.CountByTask(c.Request.Context(), task.ID)
	if err != nil {
		return summary, err
	}
	summary.SubtaskCount = SubtaskCount{Total: total, Completed: completed}

	commentCount, err := h.commentRepo.CountByTask(c.Request.Context(), task.ID)
	if err != nil {
		return summary, err
	}
	summary.CommentCount = commentCount

	return summary, nil
}

// List returns every board the caller created or belongs to, annotated with
// creator name, task counts and the member list.
func (h *BoardHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardRepo.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	summaries := make([]BoardSummary, 0, len(boards))
	for i := range boards {
		board := &boards[i]

		total, completed, err := h.taskRepo.CountByBoard(c.Request.Context(), board.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tasks"})
			return
		}

		members, err := resolveMembers(c, h.memberRepo, h.userRepo, board.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board members"})
			return
		}

		summaries = append(summaries, BoardSummary{
			BoardResponse:  h.boardResponse(c, board),
			TaskCount:      total,
			CompletedCount: completed,
			Members:        members,
		})
	}

	c.JSON(http.StatusOK, gin.H{"boards": summaries})
}

// GetByID assembles the full nested board view: columns with tasks, each task
// with assignee/label summaries and subtask/comment counts.
func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, ok := boardWithAccess(c, h.boardRepo, h.memberRepo, boardID, userID)
	if !ok {
		return
	}

	columns, err := h.columnRepo.GetByBoard(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	columnResponses := make([]ColumnResponse, 0, len(columns))
	for i := range columns {
		column := &columns[i]

		tasks, err := h.taskRepo.GetByColumn(c.Request.Context(), column.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
			return
		}

		taskSummaries := make([]TaskSummary, 0, len(tasks))
		for j := range tasks {
			summary, err := h.taskSummary(c, &tasks[j])
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble task"})
				return
			}
			taskSummaries = append(taskSummaries, summary)
		}

		columnResponses = append(columnResponses, ColumnResponse{
			ID:       column.ID,
			BoardID:  column.BoardID,
			Name:     column.Name,
			Color:    column.Color,
			Position: column.Position,
			Tasks:    taskSummaries,
		})
	}

	members, err := resolveMembers(c, h.memberRepo, h.userRepo, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board members"})
		return
	}

	labels, err := h.labelRepo.GetByBoard(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}
	labelResponses := make([]LabelResponse, len(labels))
	for i := range labels {
		labelResponses[i] = labelResponse(&labels[i])
	}

	c.JSON(http.StatusOK, BoardDetailResponse{
		Board:   h.boardResponse(c, board),
		Columns: columnResponses,
		Members: members,
		Labels:  labelResponses,
	})
}

// Create makes a new board with the four starter columns and the creator as
// its first admin member, all in one transaction.
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board name is required"})
		return
	}

	color := req.Color
	if color == "" {
		color = "#5c6ac4"
	}

	board := &model.Board{
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		CreatedBy:   userID,
	}

	columns := make([]model.Column, len(defaultColumns))
	copy(columns, defaultColumns)

	if err := h.boardRepo.CreateWithSetup(c.Request.Context(), board, columns); err != nil {
		h.logger.Error("board creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"board": h.boardResponse(c, board)})
}

// Update applies the provided subset of name/description/color.
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, ok := boardWithAccess(c, h.boardRepo, h.memberRepo, boardID, userID)
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if req.Color != nil {
		board.Color = *req.Color
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"board": h.boardResponse(c, board)})
}

// Delete removes the board and cascades to every dependent record.
func (h *BoardHandler) Delete(c *gin.Context) {
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

	if err := h.boardRepo.DeleteCascade(c.Request.Context(), boardID); err != nil {
		h.logger.Error("board cascade delete failed", zap.String("board_id", boardID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
