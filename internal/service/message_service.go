package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// MessageService provides message posting, deletion, and like business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
	likeRepo    repository.LikeRepository
	followRepo  repository.FollowRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, likeRepo repository.LikeRepository, followRepo repository.FollowRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
	}
}

// CreateMessage posts a new message owned by authorID. The author always
// comes from the authenticated session, never from the request payload.
func (s *MessageService) CreateMessage(ctx context.Context, authorID uint, text string) (*models.Message, error) {
	if err := validation.ValidateMessageText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.Message{
		Text:   text,
		UserID: authorID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return s.messageRepo.GetByID(ctx, message.ID)
}

func (s *MessageService) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// DeleteMessage removes the message if userID is its author. Anyone else is
// rejected and the message is left untouched.
func (s *MessageService) DeleteMessage(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if message.UserID != userID {
		return models.NewAccessUnauthorizedError()
	}

	return s.messageRepo.Delete(ctx, messageID)
}

// LikeMessage records that userID likes the message. Liking a message that
// does not exist fails; liking twice is a no-op.
func (s *MessageService) LikeMessage(ctx context.Context, userID, messageID uint) error {
	if _, err := s.messageRepo.GetByID(ctx, messageID); err != nil {
		return err
	}
	return s.likeRepo.Create(ctx, userID, messageID)
}

// UnlikeMessage removes the like edge if present.
func (s *MessageService) UnlikeMessage(ctx context.Context, userID, messageID uint) error {
	return s.likeRepo.Delete(ctx, userID, messageID)
}

// LikedMessages lists the messages userID has liked.
func (s *MessageService) LikedMessages(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.likeRepo.LikedMessages(ctx, userID, limit, offset)
}

// ListByUser lists the user's own messages, newest first.
func (s *MessageService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.ListByUser(ctx, userID, limit, offset)
}

// HomeTimeline lists recent messages from the user and everyone they follow.
func (s *MessageService) HomeTimeline(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	following, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(following)+1)
	ids = append(ids, userID)
	for _, u := range following {
		ids = append(ids, u.ID)
	}

	return s.messageRepo.ListByUsers(ctx, ids, limit, offset)
}
