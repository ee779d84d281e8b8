package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Track visibility states. Only public tracks are eligible for search
// and recommendation results.
const (
	StatusPublic  = "public"
	StatusPrivate = "private"
	StatusPending = "pending"
)

// Track represents a catalog track with its relational references
type Track struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	PerformerIDs []primitive.ObjectID `bson:"performers" json:"performer_ids"`
	AlbumID      primitive.ObjectID   `bson:"album,omitempty" json:"album_id,omitempty"`
	UploadedBy   primitive.ObjectID   `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`

	URL       string `bson:"url" json:"url"`
	Thumbnail string `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Duration  int    `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`

	Genres      []string `bson:"genres,omitempty" json:"genres,omitempty"`
	Tags        []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Language    string   `bson:"language,omitempty" json:"language,omitempty"`
	Lyrics      string   `bson:"lyrics,omitempty" json:"lyrics,omitempty"`
	ReleaseYear int      `bson:"release_year,omitempty" json:"release_year,omitempty"`

	Status    string               `bson:"status" json:"status"`
	PlayCount int64                `bson:"play_count" json:"play_count"`
	Likes     []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPublic reports whether the track is visible to discovery queries
func (t *Track) IsPublic() bool {
	return t.Status == StatusPublic
}

// Album represents a catalog album referencing a single performer
type Album struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	PerformerID primitive.ObjectID `bson:"performer" json:"performer_id"`
	Cover       string             `bson:"cover,omitempty" json:"cover,omitempty"`
	ReleaseDate time.Time          `bson:"release_date,omitempty" json:"release_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Performer represents a catalog performer
type Performer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// TrackResult is the joined read model a track search returns: the track
// plus the display names resolved from its references. Unresolved
// references leave the joined fields empty rather than failing the row.
type TrackResult struct {
	Track          `bson:",inline"`
	PerformerNames []string `bson:"performer_names,omitempty" json:"performer_names,omitempty"`
	AlbumTitle     string   `bson:"album_title,omitempty" json:"album_title,omitempty"`
	UploaderName   string   `bson:"uploader_name,omitempty" json:"uploader_name,omitempty"`
}

// AlbumResult is the joined read model an album search returns
type AlbumResult struct {
	Album         `bson:",inline"`
	PerformerName string `bson:"performer_name,omitempty" json:"performer_name,omitempty"`
}
