package models

// APIResponse is the envelope of every API response.
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ProfileResponse wraps one stored profile.
type ProfileResponse struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message" example:"success"`
	Data    ProfileRecord `json:"data"`
}

// ProfileListResponse wraps a page of stored profiles.
type ProfileListResponse struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message" example:"success"`
	Data    []ProfileRecord `json:"data"`
}

// AnalyzeResponse wraps the result of an on-demand analysis.
type AnalyzeResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    UserProfile `json:"data"`
}
