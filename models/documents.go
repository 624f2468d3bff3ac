package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Документные сущности хранятся в MongoDB и ссылаются на реляционные
// по числовым идентификаторам.

type Announcement struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID   int                `json:"event_id" bson:"eventId"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	CreatedBy int                `json:"created_by" bson:"createdBy"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

type QuestionStatus string

const (
	QuestionOpen     QuestionStatus = "open"
	QuestionAnswered QuestionStatus = "answered"
)

type Question struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID        int                `json:"event_id" bson:"eventId"`
	Question       string             `json:"question" bson:"question"`
	AskedBy        int                `json:"asked_by" bson:"askedBy"`
	AskedByName    string             `json:"asked_by_name" bson:"askedByName"`
	Answer         *string            `json:"answer,omitempty" bson:"answer,omitempty"`
	AnsweredBy     *int               `json:"answered_by,omitempty" bson:"answeredBy,omitempty"`
	AnsweredByName *string            `json:"answered_by_name,omitempty" bson:"answeredByName,omitempty"`
	Status         QuestionStatus     `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"created_at" bson:"createdAt"`
}

type ChatMessage struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID     int                `json:"event_id" bson:"eventId"`
	TeamID      *int               `json:"team_id,omitempty" bson:"teamId,omitempty"`
	UserID      int                `json:"user_id" bson:"userId"`
	Content     string             `json:"content" bson:"content"`
	Attachments []string           `json:"attachments" bson:"attachments"`
	CreatedAt   time.Time          `json:"created_at" bson:"createdAt"`
}

type Submission struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID     int                `json:"event_id" bson:"eventId"`
	TeamID      int                `json:"team_id" bson:"teamId"`
	Title       string             `json:"title" bson:"title"`
	Description *string            `json:"description,omitempty" bson:"description,omitempty"`
	RepoURL     string             `json:"repo_url" bson:"repoUrl"`
	Files       []string           `json:"files" bson:"files"`
	Metadata    map[string]string  `json:"metadata" bson:"metadata"`
	CreatedAt   time.Time          `json:"created_at" bson:"createdAt"`
}

type ScoreCriterion struct {
	Name  string  `json:"name" bson:"name"`
	Score float64 `json:"score" bson:"score"`
	Max   float64 `json:"max" bson:"max"`
}

type Score struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID      int                `json:"event_id" bson:"eventId"`
	TeamID       int                `json:"team_id" bson:"teamId"`
	SubmissionID string             `json:"submission_id" bson:"submissionId"`
	JudgeID      int                `json:"judge_id" bson:"judgeId"`
	Criteria     []ScoreCriterion   `json:"criteria" bson:"criteria"`
	Total        float64            `json:"total" bson:"total"`
	Notes        *string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
}

// TeamTotal — строка лидерборда: сумма итогов всех оценок команды.
type TeamTotal struct {
	TeamID int     `json:"team_id" bson:"_id"`
	Total  float64 `json:"total" bson:"total"`
	Scores int     `json:"scores" bson:"scores"`
}

type Certificate struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID   int                `json:"event_id" bson:"eventId"`
	UserID    int                `json:"user_id" bson:"userId"`
	Role      string             `json:"role" bson:"role"`
	URL       string             `json:"url" bson:"url"`
	BlobKey   string             `json:"blob_key" bson:"blobKey"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}
