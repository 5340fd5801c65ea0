package dto

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Team struct {
	TeamID  string   `json:"team_id"`
	Members []string `json:"members"`
}
