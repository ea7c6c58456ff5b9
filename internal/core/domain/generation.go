package domain

// ImageRequest is a validated image generation request
type ImageRequest struct {
	Prompt         string
	NegativePrompt string
	Model          string
	AspectRatio    string
	SampleCount    int
	ReferenceImage string
	OutputURI      string
	Form           FormValues
}

// VideoRequest is a validated video generation request. It is echoed on every
// status check so completed operations can be rebuilt into full results.
type VideoRequest struct {
	Prompt          string
	NegativePrompt  string
	Model           string
	AspectRatio     string
	DurationSeconds int
	Resolution      string
	SampleCount     int
	StartImage      string
	OutputURI       string
	Form            FormValues
}

// GeneratedMedia is one result of a generation call
type GeneratedMedia struct {
	URI             string
	MimeType        string
	Prompt          string
	EnhancedPrompt  string
	Model           string
	AspectRatio     string
	DurationSeconds int
	Resolution      string
	FilteredReason  string
	Form            FormValues

	// Data holds inline bytes when the API did not write to object storage
	Data []byte
}

// VideoStart is the answer to a video generation request: immediate results or an operation to poll
type VideoStart struct {
	OperationName string
	Videos        []GeneratedMedia
}

// VideoStatus is the answer of a status check
type VideoStatus struct {
	Done   bool
	Error  string
	Videos []GeneratedMedia
}

// PollingOperation is an in-flight asynchronous video generation job
type PollingOperation struct {
	Name    string
	Request VideoRequest
	Prompt  string
}

// ImageRequestFromForm builds an ImageRequest from validated form values
func ImageRequestFromForm(values FormValues) ImageRequest {
	req := ImageRequest{
		Prompt:         values.String("prompt"),
		NegativePrompt: values.String("negativePrompt"),
		Model:          values.String("modelVersion"),
		AspectRatio:    values.String("aspectRatio"),
		SampleCount:    1,
		ReferenceImage: values.String("referenceImage"),
		Form:           values,
	}
	if n, ok := values.Number("sampleCount"); ok {
		req.SampleCount = int(n)
	}
	return req
}

// VideoRequestFromForm builds a VideoRequest from validated form values
func VideoRequestFromForm(values FormValues) VideoRequest {
	req := VideoRequest{
		Prompt:          values.String("prompt"),
		NegativePrompt:  values.String("negativePrompt"),
		Model:           values.String("modelVersion"),
		AspectRatio:     values.String("aspectRatio"),
		DurationSeconds: 8,
		Resolution:      values.String("resolution"),
		SampleCount:     1,
		StartImage:      values.String("startImage"),
		Form:            values,
	}
	if n, ok := values.Number("durationSeconds"); ok {
		req.DurationSeconds = int(n)
	}
	if n, ok := values.Number("sampleCount"); ok {
		req.SampleCount = int(n)
	}
	return req
}

// PollingState is the state of a video polling session
type PollingState string

const (
	PollingStateIdle      PollingState = "Idle"
	PollingStatePolling   PollingState = "Polling"
	PollingStateSucceeded PollingState = "Succeeded"
	PollingStateFailed    PollingState = "Failed"
	PollingStateCancelled PollingState = "Cancelled"
)

// VideoJob is the externally visible view of a form session's video generation
type VideoJob struct {
	SessionID     string
	State         PollingState
	OperationName string
	Attempts      int
	Videos        []GeneratedMedia
	Error         string
}
