package handler

import (
	"net/http"

	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

const searchLimit = 10

type UserHandler struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserHandler(userRepo repository.UserRepositoryInterface) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// Search returns up to 10 users whose name or email contains the query.
// Queries shorter than two characters yield an empty result.
func (h *UserHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusOK, gin.H{"users": []UserSummary{}})
		return
	}

	users, err := h.userRepo.Search(c.Request.Context(), query, searchLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	result := make([]UserSummary, len(users))
	for i := range users {
		result[i] = userSummary(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": result})
}

// GetAll returns summaries for every registered user.
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	result := make([]UserSummary, len(users))
	for i := range users {
		result[i] = userSummary(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": result})
}
