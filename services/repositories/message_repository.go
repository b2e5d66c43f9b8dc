package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apex-leadership/apex_api/model"
)

type MessageRepository struct {
	BaseRepository
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *MessageRepository) CreateMessage(message *model.Message) (*model.Message, error) {
	if message.ID == "" {
		id, _ := uuid.NewV7()
		message.ID = id.String()
	}
	message.CreatedAt = time.Now()

	if err := ds.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// GetConversation returns all messages exchanged between two users, oldest
// first.
func (ds *MessageRepository) GetConversation(userA, userB string) ([]model.Message, error) {
	var messages []model.Message
	if err := ds.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (ds *MessageRepository) MarkConversationRead(recipientID, senderID string) error {
	now := time.Now()
	return ds.db.Model(&model.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", recipientID, senderID).
		Update("read_at", &now).Error
}
