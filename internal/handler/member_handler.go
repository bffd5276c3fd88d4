package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemberHandler struct {
	boardRepo  repository.BoardRepositoryInterface
	memberRepo repository.BoardMemberRepositoryInterface
	userRepo   repository.UserRepositoryInterface
}

func NewMemberHandler(
	boardRepo repository.BoardRepositoryInterface,
	memberRepo repository.BoardMemberRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *MemberHandler {
	return &MemberHandler{
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
	Role   string `json:"role"`
}

// Add grants a user membership on the board. Adding an existing member is a
// no-op; the refreshed member list is returned either way.
func (h *MemberHandler) Add(c *gin.Context) {
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

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleMember
	}

	if err := h.memberRepo.Add(c.Request.Context(), boardID, memberID, role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add board member"})
		return
	}

	members, err := resolveMembers(c, h.memberRepo, h.userRepo, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// Remove revokes a user's membership on the board.
func (h *MemberHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if _, ok := boardWithAccess(c, h.boardRepo, h.memberRepo, boardID, userID); !ok {
		return
	}

	if err := h.memberRepo.Remove(c.Request.Context(), boardID, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove board member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
