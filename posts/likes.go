package posts

import (
	"fmt"
	"slices"
	"socialfeed/storage/models"
)

func likeIndex(likes []models.Like, userId string) int {
	return slices.IndexFunc(likes, func(l models.Like) bool { return l.UserId == userId })
}

// addLike prepends a like by userId. It is a guard, not a toggle: a second
// like by the same user is rejected.
func addLike(post *models.Post, userId, likeId string) error {
	if likeIndex(post.Likes, userId) >= 0 {
		return fmt.Errorf("user %s already voted for post %s: %w", userId, post.Id, ErrAlreadyLiked)
	}
	post.Likes = append([]models.Like{{Id: likeId, UserId: userId}}, post.Likes...)
	return nil
}

func removeLike(post *models.Post, userId string) error {
	i := likeIndex(post.Likes, userId)
	if i < 0 {
		return fmt.Errorf("user %s has not voted for post %s: %w", userId, post.Id, ErrNotLiked)
	}
	post.Likes = slices.Delete(post.Likes, i, i+1)
	return nil
}
