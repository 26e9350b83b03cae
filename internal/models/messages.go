package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	MessagingDbName     = "villabay"
	ConversationColName = "conversations"
	MessageColName      = "messages"
)

// Conversation is a guest<->host thread scoped to a single villa.
type Conversation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VillaID       uuid.UUID          `bson:"villa_id" json:"villa_id"`
	GuestID       uuid.UUID          `bson:"guest_id" json:"guest_id"`
	HostID        uuid.UUID          `bson:"host_id" json:"host_id"`
	LastMessage   string             `bson:"last_message" json:"last_message"`
	LastMessageAt time.Time          `bson:"last_message_at" json:"last_message_at"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type ChatMessage struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversation_id" json:"conversation_id"`
	SenderID       uuid.UUID          `bson:"sender_id" json:"sender_id"`
	Body           string             `bson:"body" json:"body"`
	ReadAt         *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

type MessagingRepo interface {
	GetOrCreateConversation(ctx context.Context, villaId, guestId, hostId uuid.UUID) (*Conversation, error)
	AppendMessage(ctx context.Context, conversationId primitive.ObjectID, senderId uuid.UUID, body string) (*ChatMessage, error)
	GetConversationByID(ctx context.Context, conversationId primitive.ObjectID) (*Conversation, error)
	ListConversations(ctx context.Context, userId uuid.UUID) ([]*Conversation, error)
	ListMessages(ctx context.Context, conversationId primitive.ObjectID, limit int) ([]*ChatMessage, error)
	MarkMessagesRead(ctx context.Context, conversationId primitive.ObjectID, readerId uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, conversationId primitive.ObjectID, readerId uuid.UUID) (int64, error)
}

func (mdb *MongodbRepo) GetOrCreateConversation(ctx context.Context, villaId, guestId, hostId uuid.UUID) (*Conversation, error) {
	col, err := mdb.GetCollection(ctx, MessagingDbName, ConversationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	filter := bson.M{"villa_id": villaId, "guest_id": guestId, "host_id": hostId}
	update := bson.M{
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"villa_id":   villaId,
			"guest_id":   guestId,
			"host_id":    hostId,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var conversation Conversation
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conversation); err != nil {
		return nil, fmt.Errorf("error upserting conversation: %v", err)
	}

	return &conversation, nil
}

func (mdb *MongodbRepo) AppendMessage(ctx context.Context, conversationId primitive.ObjectID, senderId uuid.UUID, body string) (*ChatMessage, error) {
	col, err := mdb.GetCollection(ctx, MessagingDbName, MessageColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	message := &ChatMessage{
		ID:             primitive.NewObjectID(),
		ConversationID: conversationId,
		SenderID:       senderId,
		Body:           body,
		CreatedAt:      time.Now(),
	}

	if _, err := col.InsertOne(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to insert message: %v", err)
	}

	// Keep the thread preview in sync; best effort
	convCol, err := mdb.GetCollection(ctx, MessagingDbName, ConversationColName)
	if err == nil {
		_, _ = convCol.UpdateOne(ctx, bson.M{"_id": conversationId}, bson.M{
			"$set": bson.M{
				"last_message":    body,
				"last_message_at": message.CreatedAt,
				"updated_at":      message.CreatedAt,
			},
		})
	}

	return message, nil
}

func (mdb *MongodbRepo) GetConversationByID(ctx context.Context, conversationId primitive.ObjectID) (*Conversation, error) {
	col, err := mdb.GetCollection(ctx, MessagingDbName, ConversationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var conversation Conversation
	if err := col.FindOne(ctx, bson.M{"_id": conversationId}).Decode(&conversation); err != nil {
		return nil, fmt.Errorf("conversation not found: %v", err)
	}

	return &conversation, nil
}

func (mdb *MongodbRepo) ListConversations(ctx context.Context, userId uuid.UUID) ([]*Conversation, error) {
	col, err := mdb.GetCollection(ctx, MessagingDbName, ConversationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"$or": []bson.M{
		{"guest_id": userId},
		{"host_id": userId},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %v", err)
	}
	defer cursor.Close(ctx)

	var conversations []*Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %v", err)
	}

	return conversations, nil
}

func (mdb *MongodbRepo) ListMessages(ctx context.Context, conversationId primitive.ObjectID, limit int) ([]*ChatMessage, error) {
	col, err := mdb.GetCollection(ctx, MessagingDbName, MessageColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := col.Find(ctx, bson.M{"conversation_id": conversationId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []*ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %v", err)
	}

	return messages, nil
}

func (mdb *MongodbRepo) MarkMessagesRead(ctx context.Context, conversationId primitive.ObjectID, readerId uuid.UUID) (int64, error) {
	col, err := mdb.GetCollection(ctx, MessagingDbName, MessageColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	filter := bson.M{
		"conversation_id": conversationId,
		"sender_id":       bson.M{"$ne": readerId},
		"read_at":         bson.M{"$exists": false},
	}

	res, err := col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read_at": now}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %v", err)
	}

	return res.ModifiedCount, nil
}

func (mdb *MongodbRepo) CountUnread(ctx context.Context, conversationId primitive.ObjectID, readerId uuid.UUID) (int64, error) {
	col, err := mdb.GetCollection(ctx, MessagingDbName, MessageColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"conversation_id": conversationId,
		"sender_id":       bson.M{"$ne": readerId},
		"read_at":         bson.M{"$exists": false},
	}

	count, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %v", err)
	}

	return count, nil
}
