package dto

type AskRequest struct {
	Question string `json:"question" validate:"required"`
	K        int    `json:"k" validate:"omitempty,min=1,max=10"`
}

type RetrievedHit struct {
	DocID   string  `json:"doc_id"`
	Score   float32 `json:"score"`
	Snippet string  `json:"snippet"`
}

type AskResponse struct {
	Answer    string         `json:"answer"`
	Citations []string       `json:"citations"`
	Hits      []RetrievedHit `json:"hits,omitempty"`
	Refused   bool           `json:"refused,omitempty"`
}
