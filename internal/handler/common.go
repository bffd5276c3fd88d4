package handler

import (
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserSummary is the compact user shape embedded in board and task views.
type UserSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
}

// MemberResponse is a user summary plus the membership role.
type MemberResponse struct {
	UserSummary
	Role string `json:"role"`
}

// LabelResponse carries the full label record; the board view only renders
// id/name/color but the shape is the same.
type LabelResponse struct {
	ID      uuid.UUID `json:"id"`
	BoardID uuid.UUID `json:"board_id"`
	Name    string    `json:"name"`
	Color   string    `json:"color"`
}

func userSummary(u *model.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

func labelResponse(l *model.Label) LabelResponse {
	return LabelResponse{ID: l.ID, BoardID: l.BoardID, Name: l.Name, Color: l.Color}
}

// currentUserID extracts the authenticated user's ID set by the auth
// middleware, writing the error response itself when it is absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// boardWithAccess loads a board and verifies the caller is its creator or a
// member. On failure the response has already been written.
func boardWithAccess(
	c *gin.Context,
	boards repository.BoardRepositoryInterface,
	members repository.BoardMemberRepositoryInterface,
	boardID, userID uuid.UUID,
) (*model.Board, bool) {
	board, err := boards.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return nil, false
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return nil, false
	}

	if board.CreatedBy == userID {
		return board, true
	}

	isMember, err := members.IsMember(c.Request.Context(), boardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board access"})
		return nil, false
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this board"})
		return nil, false
	}
	return board, true
}

// resolveMembers assembles the member list for a board, skipping membership
// rows whose user no longer exists.
func resolveMembers(
	c *gin.Context,
	memberRepo repository.BoardMemberRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	boardID uuid.UUID,
) ([]MemberResponse, error) {
	rows, err := memberRepo.GetByBoard(c.Request.Context(), boardID)
	if err != nil {
		return nil, err
	}

	members := make([]MemberResponse, 0, len(rows))
	for _, m := range rows {
		user, err := userRepo.GetByID(c.Request.Context(), m.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		members = append(members, MemberResponse{UserSummary: userSummary(user), Role: m.Role})
	}
	return members, nil
}
