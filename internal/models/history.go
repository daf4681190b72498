package models

import (
	"fmt"
	"time"
)

// Play is one persisted selection of a track.
type Play struct {
	ID       string    `json:"id"`
	Track    Track     `json:"track"`
	Source   string    `json:"source"` // catalog name the track came from
	PlayedAt time.Time `json:"played_at"`
}

func (p Play) String() string {
	return fmt.Sprintf("%s  %s", p.PlayedAt.Local().Format(time.DateTime), p.Track)
}

// Like is a track the listener marked with the like control.
type Like struct {
	Track   Track     `json:"track"`
	LikedAt time.Time `json:"liked_at"`
}
