package model

import "time"

// PostBackup is a snapshot of a post's content taken right before an edit.
// Date is when that content went live; CreatedAt is when the snapshot was written.
type PostBackup struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
