package validatecardapplication

import "card-application-workers/internal/cardapplication"

type Input struct {
	Application map[string]interface{} `json:"application"`
}

type Output struct {
	IsValid       bool                    `json:"isValid"`
	ValidationID  string                  `json:"validationId"`
	EmbossOptions []string                `json:"embossOptions"`
	Application   cardapplication.Payload `json:"application"`
	ValidatedAt   string                  `json:"validatedAt"`
}
