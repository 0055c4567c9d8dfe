package api

import (
	"context"
	"fmt"
	"time"
)

// Conversation represents a message thread with a beneficiary or colleague
type Conversation struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	UnreadCount   int       `json:"unreadCount"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// Message represents a single message within a conversation
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sentAt"`
}

// SendMessageRequest represents a request to send a message
type SendMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"required"`
	Body           string `json:"body" validate:"required"`
}

// ListConversationsResponse represents the institution's conversations
type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
	TotalCount    int            `json:"totalCount"`
}

// ListMessagesResponse represents a page of a conversation's messages
type ListMessagesResponse struct {
	Messages   []Message `json:"messages"`
	TotalCount int       `json:"totalCount"`
}

// ListConversations retrieves the institution's conversations
func (c *Client) ListConversations(ctx context.Context, institutionID string) (*ListConversationsResponse, error) {
	path := fmt.Sprintf("/institutions/%s/messages", institutionID)

	var list ListConversationsResponse
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// ListMessages retrieves the messages of one conversation
func (c *Client) ListMessages(ctx context.Context, institutionID, conversationID string) (*ListMessagesResponse, error) {
	path := fmt.Sprintf("/institutions/%s/messages/%s", institutionID, conversationID)

	var list ListMessagesResponse
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// SendMessage appends a message to a conversation
func (c *Client) SendMessage(ctx context.Context, institutionID string, req SendMessageRequest) (*Message, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/messages/%s", institutionID, req.ConversationID)

	var m Message
	if err := c.post(ctx, path, req, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
