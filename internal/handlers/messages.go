package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mufies/OHMS-GROUP3-sub002/internal/middleware"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/models"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/utils"
)

// MessageHandler handles chat messaging between patients and doctors.
type MessageHandler struct {
	DB *gorm.DB
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{DB: db}
}

// SendMessageRequest represents the request body for sending a message.
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required,uuid"`
	Content     string `json:"content" binding:"required"`
}

// SendMessage handles sending a new message. Patients and doctors may message
// each other; admins may message anyone.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	senderID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Sender ID not found in token")
		return
	}
	if senderID == req.RecipientID {
		utils.BadRequest(c, "Cannot send a message to yourself.")
		return
	}

	var recipient models.User
	if err := h.DB.First(&recipient, "id = ?", req.RecipientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Recipient user not found")
		} else {
			utils.InternalServerError(c, "Database error verifying recipient: "+err.Error())
		}
		return
	}

	senderRole, _ := middleware.GetUserRoleFromContext(c)
	allowed := senderRole == models.RoleAdmin || recipient.Role == models.RoleAdmin ||
		(senderRole == models.RolePatient && recipient.Role == models.RoleDoctor) ||
		(senderRole == models.RoleDoctor && recipient.Role == models.RolePatient)
	if !allowed {
		utils.Forbidden(c, "You are not allowed to message this user")
		return
	}

	message := models.Message{
		SenderID:   senderID,
		ReceiverID: req.RecipientID,
		Content:    req.Content,
		Status:     models.MessageStatusSent,
	}

	if err := h.DB.Create(&message).Error; err != nil {
		utils.InternalServerError(c, "Failed to send message: "+err.Error())
		return
	}

	utils.Created(c, "Message sent successfully", message)
}

// GetMessagesWithUser handles fetching the conversation between the
// authenticated user and the user given by the userId query parameter.
func (h *MessageHandler) GetMessagesWithUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	otherID := c.Query("userId")
	if _, err := uuid.Parse(otherID); err != nil {
		utils.BadRequest(c, "Invalid userId query parameter")
		return
	}

	var messages []models.Message
	if err := h.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID).
		Order("created_at asc").Find(&messages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch messages: "+err.Error())
		return
	}

	utils.Success(c, "Messages fetched successfully", messages)
}

// GetNewMessages handles fetching messages addressed to the authenticated
// user since the given RFC 3339 timestamp. Clients poll this endpoint.
func (h *MessageHandler) GetNewMessages(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	since, err := time.Parse(time.RFC3339, c.Query("since"))
	if err != nil {
		utils.BadRequest(c, "Invalid or missing since query parameter, expected RFC 3339")
		return
	}

	var messages []models.Message
	if err := h.DB.Where("receiver_id = ? AND created_at > ?", userID, since).
		Order("created_at asc").Find(&messages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch messages: "+err.Error())
		return
	}

	utils.Success(c, "New messages fetched successfully", messages)
}

// MarkMessageAsRead handles marking one received message as read.
func (h *MessageHandler) MarkMessageAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	messageID := c.Param("messageId")

	var message models.Message
	if err := h.DB.First(&message, "id = ?", messageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Message not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if message.ReceiverID != userID {
		utils.Forbidden(c, "Only the recipient can mark a message as read")
		return
	}

	now := time.Now()
	message.Status = models.MessageStatusRead
	message.ReadAt = &now

	if err := h.DB.Save(&message).Error; err != nil {
		utils.InternalServerError(c, "Failed to mark message as read: "+err.Error())
		return
	}

	utils.Success(c, "Message marked as read", message)
}
