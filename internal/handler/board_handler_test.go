package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type boardTestEnv struct {
	router     *gin.Engine
	boardRepo  *MockBoardRepository
	memberRepo *MockBoardMemberRepository
	columnRepo *MockColumnRepository
	taskRepo   *MockTaskRepository
	labelRepo  *MockLabelRepository
	userRepo   *MockUserRepository
	userID     uuid.UUID
}

func setupBoardTest() *boardTestEnv {
	gin.SetMode(gin.TestMode)
	env := &boardTestEnv{
		boardRepo:  new(MockBoardRepository),
		memberRepo: new(MockBoardMemberRepository),
		columnRepo: new(MockColumnRepository),
		taskRepo:   new(MockTaskRepository),
		labelRepo:  new(MockLabelRepository),
		userRepo:   new(MockUserRepository),
		userID:     uuid.New(),
	}

	subtaskRepo := new(MockSubtaskRepository)
	commentRepo := new(MockCommentRepository)
	boardHandler := handler.NewBoardHandler(
		env.boardRepo, env.memberRepo, env.columnRepo, env.taskRepo,
		env.labelRepo, subtaskRepo, commentRepo, env.userRepo, zap.NewNop(),
	)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, env.userID)
	})
	r.GET("/api/boards", boardHandler.List)
	r.POST("/api/boards", boardHandler.Create)
	r.GET("/api/boards/:id", boardHandler.GetByID)
	r.DELETE("/api/boards/:id", boardHandler.Delete)

	env.router = r
	return env
}

func TestBoardCreate_SetsUpDefaultColumns(t *testing.T) {
	// Arrange
	env := setupBoardTest()

	env.userRepo.On("GetByID", mock.Anything, env.userID).
		Return(&model.User{ID: env.userID, Name: "Creator"}, nil)

	env.boardRepo.On("CreateWithSetup", mock.Anything,
		mock.MatchedBy(func(b *model.Board) bool {
			return b.Name == "Sprint" && b.Color == "#5c6ac4" && b.CreatedBy == env.userID
		}),
		mock.MatchedBy(func(columns []model.Column) bool {
			if len(columns) != 4 {
				return false
			}
			names := []string{"To Do", "In Progress", "Review", "Done"}
			for i, col := range columns {
				if col.Name != names[i] || col.Position != i {
					return false
				}
			}
			return true
		}),
	).Return(nil)

	// Act
	resp := postJSON(env.router, "/api/boards", handler.CreateBoardRequest{Name: "Sprint"})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Board handler.BoardResponse `json:"board"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Sprint", response.Board.Name)
	assert.Equal(t, "#5c6ac4", response.Board.Color)
	assert.Equal(t, "Creator", response.Board.CreatorName)

	env.boardRepo.AssertExpectations(t)
}

func TestBoardGetByID_NotFound(t *testing.T) {
	// Arrange
	env := setupBoardTest()

	boardID := uuid.New()
	env.boardRepo.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/api/boards/"+boardID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Board not found")
}

func TestBoardGetByID_ForbiddenForNonMember(t *testing.T) {
	// Arrange
	env := setupBoardTest()

	boardID := uuid.New()
	board := &model.Board{ID: boardID, Name: "Private", CreatedBy: uuid.New()}
	env.boardRepo.On("GetByID", mock.Anything, boardID).Return(board, nil)
	env.memberRepo.On("IsMember", mock.Anything, boardID, env.userID).Return(false, nil)

	req, _ := http.NewRequest("GET", "/api/boards/"+boardID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "You don't have permission to access this board")
}

func TestBoardList_AnnotatesCountsAndMembers(t *testing.T) {
	// Arrange
	env := setupBoardTest()

	boardID := uuid.New()
	memberID := uuid.New()
	boards := []model.Board{{ID: boardID, Name: "Roadmap", CreatedBy: env.userID}}

	env.boardRepo.On("ListForUser", mock.Anything, env.userID).Return(boards, nil)
	env.taskRepo.On("CountByBoard", mock.Anything, boardID).Return(int64(5), int64(2), nil)
	env.memberRepo.On("GetByBoard", mock.Anything, boardID).Return([]model.BoardMember{
		{BoardID: boardID, UserID: env.userID, Role: model.RoleAdmin},
		{BoardID: boardID, UserID: memberID, Role: model.RoleMember},
	}, nil)
	env.userRepo.On("GetByID", mock.Anything, env.userID).
		Return(&model.User{ID: env.userID, Name: "Creator"}, nil)
	// The second membership row points at a deleted user and is skipped.
	env.userRepo.On("GetByID", mock.Anything, memberID).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/api/boards", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Boards []handler.BoardSummary `json:"boards"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Boards, 1)
	assert.Equal(t, int64(5), response.Boards[0].TaskCount)
	assert.Equal(t, int64(2), response.Boards[0].CompletedCount)
	assert.Len(t, response.Boards[0].Members, 1)
	assert.Equal(t, "Creator", response.Boards[0].Members[0].Name)
	assert.Equal(t, model.RoleAdmin, response.Boards[0].Members[0].Role)
}

func TestBoardDelete_Cascades(t *testing.T) {
	// Arrange
	env := setupBoardTest()

	boardID := uuid.New()
	board := &model.Board{ID: boardID, Name: "Old", CreatedBy: env.userID}
	env.boardRepo.On("GetByID", mock.Anything, boardID).Return(board, nil)
	env.boardRepo.On("DeleteCascade", mock.Anything, boardID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/boards/"+boardID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Board deleted successfully")
	env.boardRepo.AssertExpectations(t)
}
