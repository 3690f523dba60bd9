package textsource

import (
	"context"
	"fmt"
	"os"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const (
	// MaxFileSizeBytes is the maximum PDF size for synchronous Vision processing.
	MaxFileSizeBytes = 20 * 1024 * 1024

	// MaxPagesSync is the maximum page count for synchronous Vision processing.
	MaxPagesSync = 5
)

// VisionSource extracts page texts from PDF documents using the Google Cloud
// Vision document text detection API.
type VisionSource struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionSource creates a Vision-backed Source with credentials from the
// environment: GOOGLE_CREDENTIALS (inline JSON) is checked first, then
// GOOGLE_APPLICATION_CREDENTIALS (file path), then default credentials.
func NewVisionSource(ctx context.Context) (*VisionSource, error) {
	const op = "NewVisionSource"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, wrapSourceError(op, "", err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, wrapSourceError(op, "", err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, wrapSourceError(op, "", ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &VisionSource{client: client}, nil
}

// NewVisionSourceWithClient creates a Vision-backed Source with an explicit
// client (for testing).
func NewVisionSourceWithClient(client *vision.ImageAnnotatorClient) *VisionSource {
	return &VisionSource{client: client}
}

// ReadPages implements Source for PDF documents.
func (s *VisionSource) ReadPages(ctx context.Context, path string) ([]string, error) {
	const op = "ReadPages"

	pdfBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapSourceError(op, path, err, "read PDF file")
	}

	if len(pdfBytes) > MaxFileSizeBytes {
		return nil, wrapSourceError(op, path, ErrPDFTooLarge, fmt.Sprintf("file size: %d bytes", len(pdfBytes)))
	}
	if len(pdfBytes) < 4 || string(pdfBytes[:4]) != "%PDF" {
		return nil, wrapSourceError(op, path, ErrInvalidPDF, "missing PDF header")
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  pdfBytes,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := s.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return nil, wrapSourceError(op, path, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, wrapSourceError(op, path, ErrOCRFailed, "no response from Vision API")
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return nil, wrapSourceError(op, path, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", fileResp.Error.Message))
	}

	pages, err := pagesFromVisionResponse(fileResp)
	if err != nil {
		return nil, wrapSourceError(op, path, err, "")
	}
	return pages, nil
}

// pagesFromVisionResponse collects the full-text annotation of each page, in
// reading order.
func pagesFromVisionResponse(fileResp *visionpb.AnnotateFileResponse) ([]string, error) {
	if len(fileResp.Responses) == 0 {
		return nil, ErrEmptyDocument
	}
	if len(fileResp.Responses) > MaxPagesSync {
		return nil, ErrTooManyPages
	}

	pages := make([]string, 0, len(fileResp.Responses))
	empty := true
	for pageIdx, page := range fileResp.Responses {
		if page.Error != nil {
			return nil, fmt.Errorf("error processing page %d: %s", pageIdx+1, page.Error.Message)
		}
		text := ""
		if page.FullTextAnnotation != nil {
			text = page.FullTextAnnotation.Text
		}
		if text != "" {
			empty = false
		}
		pages = append(pages, text)
	}

	if empty {
		return nil, ErrEmptyDocument
	}
	return pages, nil
}

// Close closes the underlying Vision client.
func (s *VisionSource) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
