package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageService struct {
	messagingRepo models.MessagingRepo
	villasRepo    models.VillasRepo
	notifications *NotificationService
}

func NewMessageService(messagingRepo models.MessagingRepo, villasRepo models.VillasRepo, notifications *NotificationService) *MessageService {
	return &MessageService{
		messagingRepo: messagingRepo,
		villasRepo:    villasRepo,
		notifications: notifications,
	}
}

// StartConversation opens (or reuses) the guest<->host thread for a villa
// and appends the first message.
func (ms *MessageService) StartConversation(ctx context.Context, villaId, guestId uuid.UUID, body string) (*models.Conversation, *models.ChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil, fmt.Errorf("message body cannot be empty")
	}

	villa, err := ms.villasRepo.GetVillaByID(ctx, villaId)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load villa: %v", err)
	}
	if villa == nil {
		return nil, nil, ErrVillaNotFound
	}
	if villa.HostId == guestId {
		return nil, nil, fmt.Errorf("hosts cannot message themselves")
	}

	conversation, err := ms.messagingRepo.GetOrCreateConversation(ctx, villaId, guestId, villa.HostId)
	if err != nil {
		return nil, nil, err
	}

	message, err := ms.messagingRepo.AppendMessage(ctx, conversation.ID, guestId, body)
	if err != nil {
		return nil, nil, err
	}

	if ms.notifications != nil {
		ms.notifications.Notify(ctx, villa.HostId, models.NotificationNewMessage,
			"New message", fmt.Sprintf("New message about %s", villa.Name), conversation.ID.Hex())
	}

	return conversation, message, nil
}

// SendMessage appends to an existing thread; only its two participants may
// post.
func (ms *MessageService) SendMessage(ctx context.Context, conversationId primitive.ObjectID, senderId uuid.UUID, body string) (*models.ChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("message body cannot be empty")
	}

	conversation, err := ms.messagingRepo.GetConversationByID(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	var recipient uuid.UUID
	switch senderId {
	case conversation.GuestID:
		recipient = conversation.HostID
	case conversation.HostID:
		recipient = conversation.GuestID
	default:
		return nil, fmt.Errorf("sender is not part of this conversation")
	}

	message, err := ms.messagingRepo.AppendMessage(ctx, conversationId, senderId, body)
	if err != nil {
		return nil, err
	}

	if ms.notifications != nil {
		ms.notifications.Notify(ctx, recipient, models.NotificationNewMessage,
			"New message", "You have a new message", conversationId.Hex())
	}

	return message, nil
}

func (ms *MessageService) ListConversations(ctx context.Context, userId uuid.UUID) ([]*models.Conversation, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	return ms.messagingRepo.ListConversations(ctx, userId)
}

// ListMessages returns the thread and marks the reader's unread messages
// as read.
func (ms *MessageService) ListMessages(ctx context.Context, conversationId primitive.ObjectID, readerId uuid.UUID, limit int) ([]*models.ChatMessage, error) {
	conversation, err := ms.messagingRepo.GetConversationByID(ctx, conversationId)
	if err != nil {
		return nil, err
	}
	if readerId != conversation.GuestID && readerId != conversation.HostID {
		return nil, fmt.Errorf("reader is not part of this conversation")
	}

	messages, err := ms.messagingRepo.ListMessages(ctx, conversationId, limit)
	if err != nil {
		return nil, err
	}

	_, _ = ms.messagingRepo.MarkMessagesRead(ctx, conversationId, readerId)

	return messages, nil
}

func (ms *MessageService) CountUnread(ctx context.Context, conversationId primitive.ObjectID, readerId uuid.UUID) (int64, error) {
	return ms.messagingRepo.CountUnread(ctx, conversationId, readerId)
}
