package dto

// IngestSourceMessage is the payload published for each corpus file
// that needs to be (re)chunked and embedded.
type IngestSourceMessage struct {
	SourceName string `json:"source_name"`
	SourceType string `json:"source_type"` // "web" | "document"
	Content    string `json:"content"`
}

type IngestTriggerResponse struct {
	SourcesQueued int `json:"sources_queued"`
}
