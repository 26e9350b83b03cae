package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
)

type WishlistService struct {
	wishlistRepo models.WishlistRepo
}

func NewWishlistService(wishlistRepo models.WishlistRepo) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
	}
}

func (ws *WishlistService) AddToWishlist(ctx context.Context, userId uuid.UUID, villaId string) (*models.Wishlist, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	if strings.TrimSpace(villaId) == "" {
		return nil, fmt.Errorf("villa ID cannot be empty")
	}
	if _, err := uuid.Parse(villaId); err != nil {
		return nil, fmt.Errorf("invalid villa ID format")
	}

	return ws.wishlistRepo.AddToWishlist(ctx, userId, villaId)
}

func (ws *WishlistService) RemoveFromWishlist(ctx context.Context, userId uuid.UUID, villaId string) error {
	if userId == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}
	if strings.TrimSpace(villaId) == "" {
		return fmt.Errorf("villa ID cannot be empty")
	}

	return ws.wishlistRepo.RemoveFromWishlist(ctx, userId, villaId)
}

func (ws *WishlistService) GetWishlistByUserID(ctx context.Context, userId uuid.UUID) (*models.Wishlist, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	return ws.wishlistRepo.GetWishlistByUserID(ctx, userId)
}
