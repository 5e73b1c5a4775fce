package dto

type StartSyncRequest struct {
	TimeframeDays int    `json:"timeframe_days"`
	DataType      string `json:"data_type"`
}

type StartSyncResponse struct {
	Status string `json:"status"`
}

type StopSyncResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
