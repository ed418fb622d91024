package users

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the user endpoints on the router.
func RegisterRoutes(router *gin.Engine, svc UserService, logger *zap.Logger) {
	group := router.Group("/users")
	{
		group.POST("/register", registerUser(svc, logger))
		group.GET("", listUsers(svc, logger))
		group.GET("/:id", getUser(svc, logger))
		group.DELETE("/:id", deleteUser(svc, logger))
	}
}

func registerUser(svc UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()

		var req RegisterUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body!"})
			return
		}

		user, err := svc.Register(c.Request.Context(), &req)
		if err != nil {
			if IsConflict(err) {
				c.JSON(http.StatusConflict, gin.H{"message": "Username or email already exists!"})
				return
			}
			logger.Error("Failed to register user",
				zap.String("request_id", requestID),
				zap.String("username", req.Username),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully!",
			"user":    user,
		})
	}
}

func getUser(svc UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id!"})
			return
		}

		user, err := svc.GetUser(c.Request.Context(), userID)
		if err != nil {
			if IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found!"})
				return
			}
			logger.Error("Failed to get user", zap.Int64("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func listUsers(svc UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func deleteUser(svc UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id!"})
			return
		}

		if err := svc.DeleteUser(c.Request.Context(), userID); err != nil {
			if IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found!"})
				return
			}
			logger.Error("Failed to delete user", zap.Int64("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully!"})
	}
}
