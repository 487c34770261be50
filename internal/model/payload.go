package model

// FileList wraps the file array inside a list payload.
type FileList struct {
	Files []Video `json:"files"`
}

// ListPayload is the raw shape of GET /file/list. A status of 0 is the
// sentinel for "fetch failed, no data"; callers treat it as empty, not fatal.
type ListPayload struct {
	Status     int      `json:"status"`
	Msg        string   `json:"msg"`
	ServerTime string   `json:"server_time,omitempty"`
	TotalCount int      `json:"total_count"`
	Result     FileList `json:"result"`
}

// SearchPayload is the raw shape of GET /search/videos. Result is a flat
// array here, unlike the list endpoint.
type SearchPayload struct {
	Status     int     `json:"status"`
	Msg        string  `json:"msg"`
	ServerTime string  `json:"server_time,omitempty"`
	TotalCount int     `json:"total_count"`
	Result     []Video `json:"result"`
}

// InfoPayload is the raw shape of GET /file/info.
type InfoPayload struct {
	Status     int    `json:"status"`
	Msg        string `json:"msg"`
	ServerTime string `json:"server_time,omitempty"`
	Result     *Video `json:"result"`
}

// CatalogPage is the normalized list shape handed to consumers:
// Result is the fixed marker 999 on success, Data is ordered and keyed by
// file_code. Demo marks pages fabricated by the placeholder fallback.
type CatalogPage struct {
	Result     int     `json:"result"`
	Msg        string  `json:"msg"`
	TotalCount int     `json:"total_count"`
	Data       []Video `json:"data"`
	Demo       bool    `json:"demo,omitempty"`
}

// CatalogOK is the Result marker for a well-formed catalog page.
const CatalogOK = 999
