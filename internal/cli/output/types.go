package output

// ConvertOutput is the JSON payload of a convert run that wrote a file.
type ConvertOutput struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Nodes       int    `json:"nodes"`
}

// UploadOutput is the JSON payload of an upload run.
type UploadOutput struct {
	Source  string `json:"source"`
	URL     string `json:"url"`
	Batches int    `json:"batches"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
	Elapsed string `json:"elapsed"`
}

// LabelCount pairs a node label with how many records carried it.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DryRunOutput is the JSON payload of a --dry-run pass: what would be
// uploaded, without any network writes.
type DryRunOutput struct {
	Source    string       `json:"source"`
	Nodes     int          `json:"nodes"`
	Edges     int          `json:"edges"`
	Batches   int          `json:"batches"`
	BatchSize int          `json:"batch_size"`
	Labels    []LabelCount `json:"labels"`
}
