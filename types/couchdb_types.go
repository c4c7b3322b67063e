package types

type OK struct {
	IsOK bool `json:"ok"`
}

type CouchDBError struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// BaseDocument represents a single document envelope returned by CouchDB
type BaseDocument struct {
	UnderscoreRev string `json:"_rev,omitempty"`
	Rev           string `json:"rev,omitempty"`
	ID            string `json:"id,omitempty"`
	UnderscoreID  string `json:"_id,omitempty"`
	OK            bool   `json:"ok,omitempty"`
}

// CouchDBFindResponse wraps the documents returned by a _find query
type CouchDBFindResponse[T any] struct {
	Docs     []T    `json:"docs"`
	Bookmark string `json:"bookmark,omitempty"`
	Warning  string `json:"warning,omitempty"`
}
