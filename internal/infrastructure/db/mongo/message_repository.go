package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/protolab/portal-api/internal/core/domain"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
)

type MongoConversationRepository struct {
	coll *mongo.Collection
}

func NewConversationRepository(db *mongo.Database) *MongoConversationRepository {
	return &MongoConversationRepository{coll: db.Collection(conversationsCollection)}
}

type mongoConversation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID string             `bson:"customer_id"`
	CreatedAt  int64              `bson:"created_at"`
}

// FindOrCreate returns the customer's conversation, creating it atomically
// on first use (upsert on customer_id).
func (r *MongoConversationRepository) FindOrCreate(ctx context.Context, customerID string) (*domain.Conversation, error) {
	filter := bson.M{"customer_id": customerID}
	update := bson.M{"$setOnInsert": bson.M{
		"customer_id": customerID,
		"created_at":  time.Now().UTC().Unix(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mc mongoConversation
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mc); err != nil {
		return nil, fmt.Errorf("find or create conversation: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrConversationNotFound
	}

	var mc mongoConversation
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoConversationRepository) ListAll(ctx context.Context) ([]domain.Conversation, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var conversations []domain.Conversation
	for cursor.Next(ctx) {
		var mc mongoConversation
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode conversation: %w", err)
		}
		conversations = append(conversations, *mc.toDomain())
	}
	return conversations, cursor.Err()
}

func (mc mongoConversation) toDomain() *domain.Conversation {
	return &domain.Conversation{
		ID:         mc.ID.Hex(),
		CustomerID: mc.CustomerID,
		CreatedAt:  unixToTime(mc.CreatedAt),
	}
}

type MongoMessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{coll: db.Collection(messagesCollection)}
}

type mongoMessage struct {
	ID             string `bson:"_id"`
	ConversationID string `bson:"conversation_id"`
	SenderID       string `bson:"sender_id"`
	SenderRole     string `bson:"sender_role"`
	Body           string `bson:"body"`
	AttachmentURL  string `bson:"attachment_url,omitempty"`
	CreatedAt      int64  `bson:"created_at"`
}

func (r *MongoMessageRepository) Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	doc := mongoMessage{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		SenderRole:     string(msg.SenderRole),
		Body:           msg.Body,
		AttachmentURL:  msg.AttachmentURL,
		CreatedAt:      msg.CreatedAt.UnixNano(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

func (r *MongoMessageRepository) ListSince(ctx context.Context, conversationID string, since time.Time) ([]domain.Message, error) {
	filter := bson.M{"conversation_id": conversationID}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gt": since.UnixNano()}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []domain.Message
	for cursor.Next(ctx) {
		var mm mongoMessage
		if err := cursor.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, *mm.toDomain())
	}
	return messages, cursor.Err()
}

func (r *MongoMessageRepository) CountSince(ctx context.Context, conversationID string, since time.Time) (int64, error) {
	filter := bson.M{"conversation_id": conversationID}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gt": since.UnixNano()}
	}

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

func (mm mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:             mm.ID,
		ConversationID: mm.ConversationID,
		SenderID:       mm.SenderID,
		SenderRole:     domain.Role(mm.SenderRole),
		Body:           mm.Body,
		AttachmentURL:  mm.AttachmentURL,
		CreatedAt:      time.Unix(0, mm.CreatedAt).UTC(),
	}
}
