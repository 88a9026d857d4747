package models

// AskTutorRequest is a student's question for the AI tutor. Context names
// the topic or chapter the student is currently viewing.
type AskTutorRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
	Context  string `json:"context" validate:"max=500"`
}

// TutorReply is the tutor's answer, always populated even when the upstream
// model is unreachable.
type TutorReply struct {
	Answer string `json:"answer"`
}
