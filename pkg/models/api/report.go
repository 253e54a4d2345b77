package api

// Format is a supported file format.
type Format struct {
	Ext         string `json:"ext"`
	Kind        string `json:"kind"`
	ContentType string `json:"content_type,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
