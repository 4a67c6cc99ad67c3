package main

import (
	"log/slog"
	"time"

	"go-ekyc-ocr/document"
	"go-ekyc-ocr/models"
	"go-ekyc-ocr/ocr"
)

// newEKYCResponse merges both faces and reports expiry and the consistency
// of the two faces alongside the merged record. The merged data carries the
// tokens the front was extracted from.
func newEKYCResponse(front, back document.Record, frontTokens []string, now time.Time) models.EKYCResponse {
	merged := document.Merge(front, back)
	response := models.EKYCResponse{
		Status:  models.StatusSuccess,
		OCRData: models.NewOCRData(merged),
	}
	response.OCRData.ExtractedTexts = frontTokens
	if response.OCRData.ExtractedTexts == nil {
		response.OCRData.ExtractedTexts = []string{}
	}

	if merged.DateOfExpiry != "" {
		expired, err := document.IsExpired(merged.DateOfExpiry, now)
		if err != nil {
			slog.Debug("Expiry date not parseable", "date_of_expiry", merged.DateOfExpiry, "error", err)
		} else {
			response.IsExpired = &expired
		}
	}

	check := document.CompareSides(front, back)
	if check != (document.SideCheck{}) {
		response.SideCheck = models.NewSideCheckData(check)
	}
	return response
}

// mergeTokens builds the eKYC envelope from token streams recognised
// elsewhere.
func mergeTokens(req models.MergeTokensRequest, now time.Time) models.EKYCResponse {
	return newEKYCResponse(recordFromTokens(req.Front), recordFromTokens(req.Back), ocr.NormalizeTokens(req.Front.Tokens), now)
}

// recordFromTokens runs the extraction engine on a token stream that was
// recognised elsewhere.
func recordFromTokens(req models.ExtractRequest) document.Record {
	record := document.Detect(ocr.NormalizeTokens(req.Tokens))
	if req.Confidence != nil {
		record = record.WithConfidence(ocr.Round2(*req.Confidence))
	}
	return record
}
