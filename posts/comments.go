package posts

import (
	"fmt"
	"slices"
	"socialfeed/storage/models"
	"time"
)

func addComment(post *models.Post, author models.Identity, commentId, text string, now time.Time) {
	comment := models.Comment{
		Id:        commentId,
		AuthorId:  author.UserId,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Text:      text,
		CreatedAt: now,
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)
}

// removeComment deletes the comment with the given id, at its own position.
// Only the comment author may remove it.
func removeComment(post *models.Post, requesterId, commentId string) error {
	i := slices.IndexFunc(post.Comments, func(c models.Comment) bool { return c.Id == commentId })
	if i < 0 {
		return fmt.Errorf("no comment %s on post %s: %w", commentId, post.Id, ErrCommentNotFound)
	}
	if post.Comments[i].AuthorId != requesterId {
		return fmt.Errorf("comment %s is owned by another user: %s %w", commentId, post.Comments[i].AuthorId, ErrForbidden)
	}
	post.Comments = slices.Delete(post.Comments, i, i+1)
	return nil
}
