package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const VisionEngineName = "google_vision"

type annotateFunc func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)

// VisionEngine recognises documents with Google Cloud Vision.
type VisionEngine struct {
	annotate annotateFunc
	close    func() error
}

// NewVisionEngine connects to Cloud Vision. Without a credentials path the
// application default credentials are used.
func NewVisionEngine(ctx context.Context, credentialsPath string) (*VisionEngine, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init vision client: %w", err)
	}

	return &VisionEngine{
		annotate: func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
			return client.BatchAnnotateImages(ctx, req)
		},
		close: client.Close,
	}, nil
}

func (e *VisionEngine) Name() string {
	return VisionEngineName
}

func (e *VisionEngine) Close() error {
	if e.close == nil {
		return nil
	}
	return e.close()
}

// Recognize runs document text detection. Every non-empty line of the full
// text annotation becomes one token, scored with the mean confidence of its
// words.
func (e *VisionEngine) Recognize(ctx context.Context, png []byte) (Result, error) {
	resp, err := e.annotate(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: png},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
		}},
	})
	if err != nil {
		return Result{}, fmt.Errorf("could not extract text from image: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return Result{}, errors.New("vision returned no response")
	}

	annotation := resp.GetResponses()[0]
	if status := annotation.GetError(); status != nil && status.GetCode() != 0 {
		return Result{}, fmt.Errorf("vision failed with code %d: %s", status.GetCode(), status.GetMessage())
	}

	result := visionLines(annotation.GetFullTextAnnotation())
	result.Confidence = Mean(result.Scores)

	slog.Debug("Vision OCR completed", "tokens", len(result.Tokens), "confidence", result.Confidence)
	return result, nil
}

// visionLines rebuilds the text lines from the symbol breaks so each token
// has its own score. Annotations without page structure fall back to the
// plain text lines, unscored.
func visionLines(text *visionpb.TextAnnotation) Result {
	var result Result
	if len(text.GetPages()) == 0 {
		for _, line := range strings.Split(text.GetText(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				result.Tokens = append(result.Tokens, line)
			}
		}
		return result
	}

	var line strings.Builder
	var sum float64
	var words int
	flush := func() {
		if token := strings.TrimSpace(line.String()); token != "" && words > 0 {
			result.Tokens = append(result.Tokens, token)
			result.Scores = append(result.Scores, sum/float64(words))
		}
		line.Reset()
		sum, words = 0, 0
	}

	for _, page := range text.GetPages() {
		for _, block := range page.GetBlocks() {
			for _, paragraph := range block.GetParagraphs() {
				for _, word := range paragraph.GetWords() {
					sum += float64(word.GetConfidence())
					words++
					for _, symbol := range word.GetSymbols() {
						line.WriteString(symbol.GetText())
						switch symbol.GetProperty().GetDetectedBreak().GetType() {
						case visionpb.TextAnnotation_DetectedBreak_SPACE, visionpb.TextAnnotation_DetectedBreak_SURE_SPACE:
							line.WriteByte(' ')
						case visionpb.TextAnnotation_DetectedBreak_EOL_SURE_SPACE, visionpb.TextAnnotation_DetectedBreak_LINE_BREAK:
							flush()
						}
					}
				}
			}
			flush()
		}
	}
	return result
}
