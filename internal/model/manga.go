package model

import (
	"regexp"
	"time"
)

// Publication status values for a catalog entry.
const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusHiatus    = "hiatus"
	StatusCancelled = "cancelled"
)

// Content rating values.
const (
	RatingSafe         = "safe"
	RatingSuggestive   = "suggestive"
	RatingErotica      = "erotica"
	RatingPornographic = "pornographic"
)

// Editorial state values. New entries default to draft.
const (
	StateDraft     = "draft"
	StatePublished = "published"
	StateSubmitted = "submitted"
	StateRejected  = "rejected"
)

// Publication demographic values. The field is optional.
const (
	DemographicShonen = "shonen"
	DemographicShojo  = "shojo"
	DemographicSeinen = "seinen"
	DemographicJosei  = "josei"
)

// Manga represents a catalog document in the `mangas` collection. Title is
// unique across the catalog. Optional fields are pointers so an absent value
// and an empty value stay distinguishable through updates.
type Manga struct {
	ID                     string    `bson:"_id" json:"id"`
	Title                  string    `bson:"title" json:"title"`
	AlternativesTitles     []string  `bson:"alternatives_titles" json:"alternativesTitles"`
	Description            *string   `bson:"description" json:"description"`
	OriginalLanguage       string    `bson:"original_language" json:"originalLanguage"`
	PublicationDemographic *string   `bson:"publication_demographic" json:"publicationDemographic"`
	Status                 string    `bson:"status" json:"status"`
	Year                   *int      `bson:"year" json:"year"`
	ContentRating          string    `bson:"content_rating" json:"contentRating"`
	State                  string    `bson:"state" json:"state"`
	CreatedAt              time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt              time.Time `bson:"updated_at" json:"updatedAt"`
}

var languageRe = regexp.MustCompile(`^[a-z]{2}$`)

// ValidLanguage reports whether s is a two-letter lowercase language code.
func ValidLanguage(s string) bool { return languageRe.MatchString(s) }

// ValidStatus reports whether s is a known publication status.
func ValidStatus(s string) bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus, StatusCancelled:
		return true
	}
	return false
}

// ValidContentRating reports whether s is a known content rating.
func ValidContentRating(s string) bool {
	switch s {
	case RatingSafe, RatingSuggestive, RatingErotica, RatingPornographic:
		return true
	}
	return false
}

// ValidState reports whether s is a known editorial state.
func ValidState(s string) bool {
	switch s {
	case StateDraft, StatePublished, StateSubmitted, StateRejected:
		return true
	}
	return false
}

// ValidDemographic reports whether s is a known publication demographic.
func ValidDemographic(s string) bool {
	switch s {
	case DemographicShonen, DemographicShojo, DemographicSeinen, DemographicJosei:
		return true
	}
	return false
}

// ValidYear reports whether y is an acceptable publication year.
func ValidYear(y int) bool { return y >= 1900 }
