package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/utils"
)

// currentUserID pulls the authenticated user out of the context set by the
// auth middleware. Writes the 401 response itself on failure.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	return userID, true
}

// optionalUserID is currentUserID for endpoints that work anonymously.
func optionalUserID(c *gin.Context) *primitive.ObjectID {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		return nil
	}

	return &userID
}

func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}

	return id, true
}
