package rides

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the ride endpoints on the router.
func RegisterRoutes(router *gin.Engine, svc RideService, logger *zap.Logger) {
	group := router.Group("/rides")
	{
		group.POST("", createRide(svc, logger))
		group.GET("", listRides(svc, logger))
		group.GET("/:id", getRide(svc, logger))
		group.GET("/:id/members", listMembers(svc, logger))
		group.POST("/:id/join", joinRide(svc, logger))
		group.POST("/:id/leave", leaveRide(svc, logger))
	}
}

func createRide(svc RideService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()

		var req CreateRideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body!"})
			return
		}

		ride, err := svc.CreateRide(c.Request.Context(), &req)
		if err != nil {
			logger.Error("Failed to create ride",
				zap.String("request_id", requestID),
				zap.String("origin", req.Origin),
				zap.String("destination", req.Destination),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Ride created successfully!",
			"ride":    ride,
		})
	}
}

func getRide(svc RideService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ride id!"})
			return
		}

		ride, err := svc.GetRide(c.Request.Context(), rideID)
		if err != nil {
			if IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Ride not found!"})
				return
			}
			logger.Error("Failed to get ride", zap.Int64("ride_id", rideID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, ride)
	}
}

func listRides(svc RideService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.ListRides(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list rides", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func listMembers(svc RideService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ride id!"})
			return
		}

		members, err := svc.ListMembers(c.Request.Context(), rideID)
		if err != nil {
			if IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Ride not found!"})
				return
			}
			logger.Error("Failed to list members", zap.Int64("ride_id", rideID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, members)
	}
}

func joinRide(svc RideService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideID, userID, ok := bindMembership(c)
		if !ok {
			return
		}

		if err := svc.JoinRide(c.Request.Context(), rideID, userID); err != nil {
			if IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Ride or user not found!"})
				return
			}
			if IsConflict(err) {
				c.JSON(http.StatusConflict, gin.H{"message": "User already joined the ride!"})
				return
			}
			logger.Error("Failed to join ride",
				zap.Int64("ride_id", rideID),
				zap.Int64("user_id", userID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User joined the ride!"})
	}
}

func leaveRide(svc RideService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideID, userID, ok := bindMembership(c)
		if !ok {
			return
		}

		if err := svc.LeaveRide(c.Request.Context(), rideID, userID); err != nil {
			if IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Ride or user not found!"})
				return
			}
			logger.Error("Failed to leave ride",
				zap.Int64("ride_id", rideID),
				zap.Int64("user_id", userID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User left the ride!"})
	}
}

func bindMembership(c *gin.Context) (rideID, userID int64, ok bool) {
	rideID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ride id!"})
		return 0, 0, false
	}

	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body!"})
		return 0, 0, false
	}

	return rideID, req.UserID, true
}
