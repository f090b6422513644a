package domain

import "time"

// Question statuses as reported by the upstream API.
const (
	QuestionOpen     = "open"
	QuestionResolved = "resolved"
	QuestionClosed   = "closed"
)

// Vote targets accepted by POST /votes.
const (
	VotableQuestion = "question"
	VotableAnswer   = "answer"
)

// Vote actions the upstream reports after a vote is applied.
const (
	VoteCreated = "created"
	VoteUpdated = "updated"
	VoteRemoved = "removed"
)

// Report statuses.
const (
	ReportPending   = "pending"
	ReportReviewed  = "reviewed"
	ReportDismissed = "dismissed"
)

// Question is an upstream-owned record. The gateway treats it as immutable per
// fetch; after a mutating call it patches single fields (vote score, best-answer
// flag) locally instead of re-fetching.
type Question struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    string     `json:"status"`
	Votes     int        `json:"votes"`
	Views     int        `json:"views"`
	User      *User      `json:"user,omitempty"`
	Category  *Category  `json:"category,omitempty"`
	Tags      []Tag      `json:"tags,omitempty"`
	Answers   []Answer   `json:"answers,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Answer struct {
	ID           int64      `json:"id"`
	Content      string     `json:"content"`
	IsBestAnswer bool       `json:"is_best_answer"`
	Votes        int        `json:"votes"`
	User         *User      `json:"user,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Favorite struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	QuestionID int64     `json:"question_id"`
	Question   *Question `json:"question,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Report struct {
	ID             int64     `json:"id"`
	Reason         string    `json:"reason"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	ReportableType string    `json:"reportable_type"`
	ReportableID   int64     `json:"reportable_id"`
	User           *User     `json:"user,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DashboardStats is the aggregate snapshot shown on the admin dashboard.
type DashboardStats struct {
	Users          int `json:"users"`
	Questions      int `json:"questions"`
	Answers        int `json:"answers"`
	PendingReports int `json:"pending_reports"`
}

// PageMeta mirrors the upstream's pagination envelope.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// QuestionPage is one page of a question listing.
type QuestionPage struct {
	Data []Question `json:"data"`
	Meta PageMeta   `json:"meta"`
}

// QuestionFilters narrows a question listing. Zero values are omitted from the
// outgoing query string.
type QuestionFilters struct {
	CategoryID int64
	TagID      int64
	Search     string
	Sort       string
	Page       int
}
