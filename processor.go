package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go-ekyc-ocr/document"
	"go-ekyc-ocr/images"
	"go-ekyc-ocr/ocr"

	"golang.org/x/sync/errgroup"
)

// DocumentProcessor turns uploaded document images into field records.
type DocumentProcessor struct {
	engine         ocr.Engine
	cache          OCRCache // nil disables caching
	imageOptions   images.Options
	maxUploadBytes int64
}

func NewDocumentProcessor(engine ocr.Engine, cache OCRCache, imageOptions images.Options, maxUploadBytes int64) *DocumentProcessor {
	return &DocumentProcessor{
		engine:         engine,
		cache:          cache,
		imageOptions:   imageOptions,
		maxUploadBytes: maxUploadBytes,
	}
}

// ProcessedDocument is the record of one image plus the tokens it came from.
type ProcessedDocument struct {
	Record document.Record
	Tokens []string
}

// IDCardResult holds both faces of a card and their reconciliation.
type IDCardResult struct {
	Front       document.Record
	Back        document.Record
	Merged      document.MergedRecord
	FrontTokens []string
}

// ProcessDocument recognises one image and extracts its fields. The record
// carries the OCR confidence rounded to two decimals.
func (p *DocumentProcessor) ProcessDocument(ctx context.Context, data []byte) (ProcessedDocument, error) {
	format, err := images.Validate(data, p.maxUploadBytes)
	if err != nil {
		return ProcessedDocument{}, err
	}

	result, err := p.recognize(ctx, data)
	if err != nil {
		return ProcessedDocument{}, err
	}

	tokens := ocr.NormalizeTokens(result.Tokens)
	slog.Debug("Recognised document tokens", "format", format, "tokens", tokens)

	record := document.Detect(tokens).WithConfidence(ocr.Round2(result.Confidence))
	slog.Info("Document processed", "document_type", record.DocumentType, "token_count", len(tokens))
	return ProcessedDocument{Record: record, Tokens: tokens}, nil
}

// ProcessIDCard processes both faces concurrently and merges them. A failure
// on either face cancels the other and no partial result is returned.
func (p *DocumentProcessor) ProcessIDCard(ctx context.Context, front, back []byte) (IDCardResult, error) {
	var frontDoc, backDoc ProcessedDocument

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if frontDoc, err = p.ProcessDocument(gctx, front); err != nil {
			return fmt.Errorf("front: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if backDoc, err = p.ProcessDocument(gctx, back); err != nil {
			return fmt.Errorf("back: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return IDCardResult{}, err
	}

	return IDCardResult{
		Front:       frontDoc.Record,
		Back:        backDoc.Record,
		Merged:      document.Merge(frontDoc.Record, backDoc.Record),
		FrontTokens: frontDoc.Tokens,
	}, nil
}

func (p *DocumentProcessor) recognize(ctx context.Context, data []byte) (ocr.Result, error) {
	key := ResultKey(p.engine.Name(), data)
	if p.cache != nil {
		result, err := p.cache.Get(ctx, key)
		if err == nil {
			slog.Debug("OCR cache hit", "key", key)
			return result, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("OCR cache lookup failed", "error", err)
		}
	}

	img, err := images.Decode(data)
	if err != nil {
		return ocr.Result{}, err
	}
	png, err := images.EncodePNG(images.Prepare(img, p.imageOptions))
	if err != nil {
		return ocr.Result{}, err
	}

	result, err := p.engine.Recognize(ctx, png)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("%s ocr failed: %w", p.engine.Name(), err)
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, result); err != nil {
			slog.Warn("Failed to cache OCR result", "error", err)
		}
	}
	return result, nil
}
