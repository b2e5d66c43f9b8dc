package services

import (
	goContext "context"
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/model"
	"github.com/apex-leadership/apex_api/shared"
)

// ChatService is the member-to-owner messaging channel. Messages persist in
// Postgres; delivery to a live recipient rides Redis pub/sub, one channel per
// user, consumed by the SSE stream endpoint.
type ChatService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	redisSvc *RedisService
}

const CHAT_SVC = "chat_svc"

func (svc ChatService) Id() string {
	return CHAT_SVC
}

func (svc *ChatService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChatService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// SendMessage persists a message from the sender to the recipient and
// publishes it on the recipient's channel. A publish failure does not fail
// the send; the message is already stored and shows up on the next fetch.
func (svc *ChatService) SendMessage(senderID, recipientID string, req dto.SendMessageRequest) (*dto.MessageResponse, error) {
	message, err := svc.sqlSvc.Messages().CreateMessage(&model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     req.Content,
	})
	if err != nil {
		return nil, err
	}

	response := mapMessageToResponse(message)
	channel := shared.ChatChannelPrefix + recipientID
	if err := svc.redisSvc.PublishJSON(goContext.Background(), channel, response); err != nil {
		log.Printf("Failed to publish message %s to %s: %v", message.ID, channel, err)
	}

	return &response, nil
}

// SendToOwner routes a member's message to the platform owner.
func (svc *ChatService) SendToOwner(senderID string, req dto.SendMessageRequest) (*dto.MessageResponse, error) {
	owner, err := svc.ownerID()
	if err != nil {
		return nil, err
	}
	if owner == senderID {
		return nil, shared.NewBadRequestError(errors.New("self message"), "Cannot message yourself")
	}
	return svc.SendMessage(senderID, owner, req)
}

// GetConversation returns the full history between the caller and the owner
// (or, for the owner, between the owner and the given member) and marks the
// caller's unread messages read.
func (svc *ChatService) GetConversation(userID, withUserID string) (*dto.ConversationResponse, error) {
	owner, err := svc.ownerID()
	if err != nil {
		return nil, err
	}

	other := owner
	if userID == owner && withUserID != "" {
		other = withUserID
	}

	messages, err := svc.sqlSvc.Messages().GetConversation(userID, other)
	if err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.Messages().MarkConversationRead(userID, other); err != nil {
		log.Printf("Failed to mark conversation read for %s: %v", userID, err)
	}

	response := &dto.ConversationResponse{
		Messages: make([]dto.MessageResponse, len(messages)),
		OwnerID:  owner,
	}
	for i, message := range messages {
		response.Messages[i] = mapMessageToResponse(&message)
	}
	return response, nil
}

// Subscribe opens the caller's delivery channel for the SSE stream.
func (svc *ChatService) Subscribe(ctx goContext.Context, userID string) (*redis.PubSub, error) {
	return svc.redisSvc.Subscribe(ctx, shared.ChatChannelPrefix+userID)
}

func (svc *ChatService) ownerID() (string, error) {
	owner, err := svc.sqlSvc.Users().GetOwner()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.NewNotFoundError(err, "No owner account configured")
		}
		return "", err
	}
	return owner.ID, nil
}

func mapMessageToResponse(message *model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Content:     message.Content,
		ReadAt:      message.ReadAt,
		CreatedAt:   message.CreatedAt,
	}
}
