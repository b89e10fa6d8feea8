package types

// ListResult is the page of trades returned by the list endpoint, together
// with the metadata callers need to build further page requests. Total is
// the pre-pagination count of the filtered set, not the page length.
type ListResult struct {
	Trades []Trade `json:"trades"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Total  int     `json:"total"`
}
