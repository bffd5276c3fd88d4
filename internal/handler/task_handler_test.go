package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type taskTestEnv struct {
	router     *gin.Engine
	taskRepo   *MockTaskRepository
	columnRepo *MockColumnRepository
	boardRepo  *MockBoardRepository
	labelRepo  *MockLabelRepository
	userRepo   *MockUserRepository
	userID     uuid.UUID
}

func setupTaskTest() *taskTestEnv {
	gin.SetMode(gin.TestMode)
	env := &taskTestEnv{
		taskRepo:   new(MockTaskRepository),
		columnRepo: new(MockColumnRepository),
		boardRepo:  new(MockBoardRepository),
		labelRepo:  new(MockLabelRepository),
		userRepo:   new(MockUserRepository),
		userID:     uuid.New(),
	}

	taskHandler := handler.NewTaskHandler(
		env.taskRepo, env.columnRepo, env.boardRepo, env.labelRepo,
		new(MockSubtaskRepository), new(MockCommentRepository), env.userRepo, zap.NewNop(),
	)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, env.userID)
	})
	r.GET("/api/tasks/my/assigned", taskHandler.MyAssigned)
	r.PUT("/api/tasks/reorder", taskHandler.Reorder)
	r.POST("/api/tasks", taskHandler.Create)
	r.PUT("/api/tasks/:id/move", taskHandler.Move)
	r.POST("/api/tasks/:id/assignees", taskHandler.AddAssignee)

	env.router = r
	return env
}

func putJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("PUT", path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestTaskCreate_AppendsToColumn(t *testing.T) {
	// Arrange
	env := setupTaskTest()

	boardID := uuid.New()
	columnID := uuid.New()

	env.taskRepo.On("CreateAtEnd", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.BoardID == boardID &&
			task.ColumnID == columnID &&
			task.Title == "Ship it" &&
			task.Priority == "low" &&
			task.CreatedBy == env.userID
	})).Run(func(args mock.Arguments) {
		task := args.Get(1).(*model.Task)
		task.ID = uuid.New()
		task.Position = 3
	}).Return(nil)

	reqBody := handler.CreateTaskRequest{
		BoardID:  boardID.String(),
		ColumnID: columnID.String(),
		Title:    "Ship it",
	}

	// Act
	resp := postJSON(env.router, "/api/tasks", reqBody)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Task handler.TaskSummary `json:"task"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Ship it", response.Task.Title)
	assert.Equal(t, "low", response.Task.Priority)
	assert.Equal(t, 3, response.Task.Position)
	assert.Empty(t, response.Task.Assignees)
	assert.Empty(t, response.Task.Labels)

	env.taskRepo.AssertExpectations(t)
}

func TestTaskCreate_MissingTitle(t *testing.T) {
	// Arrange
	env := setupTaskTest()

	reqBody := handler.CreateTaskRequest{
		BoardID:  uuid.New().String(),
		ColumnID: uuid.New().String(),
	}

	// Act
	resp := postJSON(env.router, "/api/tasks", reqBody)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	env.taskRepo.AssertNotCalled(t, "CreateAtEnd")
}

func TestTaskMove_Success(t *testing.T) {
	// Arrange
	env := setupTaskTest()

	taskID := uuid.New()
	columnID := uuid.New()
	position := 2

	env.taskRepo.On("Move", mock.Anything, taskID, columnID, position).Return(nil)

	reqBody := handler.MoveTaskRequest{ColumnID: columnID.String(), Position: &position}

	// Act
	resp := putJSON(env.router, "/api/tasks/"+taskID.String()+"/move", reqBody)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task moved successfully")
	env.taskRepo.AssertExpectations(t)
}

func TestTaskMove_PositionZeroAccepted(t *testing.T) {
	// Arrange
	env := setupTaskTest()

	taskID := uuid.New()
	columnID := uuid.New()
	position := 0

	env.taskRepo.On("Move", mock.Anything, taskID, columnID, 0).Return(nil)

	reqBody := handler.MoveTaskRequest{ColumnID: columnID.String(), Position: &position}

	// Act
	resp := putJSON(env.router, "/api/tasks/"+taskID.String()+"/move", reqBody)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	env.taskRepo.AssertExpectations(t)
}

func TestTaskMove_NotFound(t *testing.T) {
	// Arrange
	env := setupTaskTest()

	taskID := uuid.New()
	columnID := uuid.New()
	position := 1

	env.taskRepo.On("Move", mock.Anything, taskID, columnID, position).
		Return(repository.ErrTaskNotFound)

	reqBody := handler.MoveTaskRequest{ColumnID: columnID.String(), Position: &position}

	// Act
	resp := putJSON(env.router, "/api/tasks/"+taskID.String()+"/move", reqBody)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task not found")
}

func TestTaskReorder_PassesIDsInOrder(t *testing.T) {
	// Arrange
	env := setupTaskTest()

	first := uuid.New()
	second := uuid.New()

	env.taskRepo.On("Reorder", mock.Anything, []uuid.UUID{first, second}).Return(nil)

	reqBody := handler.ReorderTasksRequest{TaskIDs: []string{first.String(), second.String()}}

	// Act
	resp := putJSON(env.router, "/api/tasks/reorder", reqBody)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Tasks reordered")
	env.taskRepo.AssertExpectations(t)
}

func TestTaskAddAssignee_ReturnsRefreshedList(t *testing.T) {
	// Arrange
	env := setupTaskTest()

	taskID := uuid.New()
	assigneeID := uuid.New()

	env.taskRepo.On("AddAssignee", mock.Anything, taskID, assigneeID).Return(nil)
	env.taskRepo.On("GetAssignees", mock.Anything, taskID).Return([]model.User{
		{ID: assigneeID, Name: "Assignee", Email: "assignee@example.com"},
	}, nil)

	reqBody := handler.AddAssigneeRequest{UserID: assigneeID.String()}

	// Act
	resp := postJSON(env.router, "/api/tasks/"+taskID.String()+"/assignees", reqBody)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Assignees []handler.UserSummary `json:"assignees"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Assignees, 1)
	assert.Equal(t, assigneeID, response.Assignees[0].ID)

	env.taskRepo.AssertExpectations(t)
}

func TestMyAssigned_SortsByDueDateWithUndatedLast(t *testing.T) {
	// Arrange
	env := setupTaskTest()

	boardID := uuid.New()
	columnID := uuid.New()
	tasks := []model.Task{
		{ID: uuid.New(), BoardID: boardID, ColumnID: columnID, Title: "Later", DueDate: "2026-02-01"},
		{ID: uuid.New(), BoardID: boardID, ColumnID: columnID, Title: "Undated"},
		{ID: uuid.New(), BoardID: boardID, ColumnID: columnID, Title: "Soon", DueDate: "2026-01-15"},
	}

	env.taskRepo.On("GetAssignedIncomplete", mock.Anything, env.userID).Return(tasks, nil)
	env.boardRepo.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, Name: "Roadmap"}, nil)
	env.columnRepo.On("GetByID", mock.Anything, columnID).
		Return(&model.Column{ID: columnID, BoardID: boardID, Name: "In Progress"}, nil)

	req, _ := http.NewRequest("GET", "/api/tasks/my/assigned", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Tasks []handler.AssignedTaskResponse `json:"tasks"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Tasks, 3)
	assert.Equal(t, "Soon", response.Tasks[0].Title)
	assert.Equal(t, "Later", response.Tasks[1].Title)
	assert.Equal(t, "Undated", response.Tasks[2].Title)
	assert.Equal(t, "Roadmap", response.Tasks[0].BoardName)
	assert.Equal(t, "In Progress", response.Tasks[0].ColumnName)
}
