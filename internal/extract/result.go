package extract

// Job describes one saved upload handed to an extractor.
type Job struct {
	LocalPath string
	FileName  string
	MIMEType  string
	FileSize  int64
}

// Result is the text produced by an extractor. Statistics are computed
// downstream by the Analyzer; extractors only produce text and metadata.
type Result struct {
	Text     string
	Method   string
	FileType string
	MIMEType string
	Metadata map[string]string
}
