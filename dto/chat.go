package dto

import "time"

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

func (s SendMessageRequest) Validate() error {
	return GetValidator().Struct(s)
}

type MessageResponse struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Content     string     `json:"content"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ConversationResponse struct {
	Messages []MessageResponse `json:"messages"`
	OwnerID  string            `json:"owner_id"`
}
