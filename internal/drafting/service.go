// Package drafting orchestrates the document pipeline: FER parsing,
// Complete Specification extraction, amended-claims and prior-art intake,
// and reply assembly. Transport layers (HTTP, MCP) call into this service
// and map its errors onto their own status semantics.
package drafting

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/patentdesk/fer-reply/internal/claims"
	"github.com/patentdesk/fer-reply/internal/config"
	"github.com/patentdesk/fer-reply/internal/cs"
	"github.com/patentdesk/fer-reply/internal/docext"
	"github.com/patentdesk/fer-reply/internal/fer"
	"github.com/patentdesk/fer-reply/internal/priorart"
	"github.com/patentdesk/fer-reply/internal/reply"
)

// UnprocessableError marks input documents the service understood but
// cannot work with, as opposed to internal failures.
type UnprocessableError struct {
	Reason string
}

func (e *UnprocessableError) Error() string { return e.Reason }

// PriorArtSource is one cited document as supplied by the caller: either
// an uploaded PDF/DOCX to extract from, or a manually entered abstract.
type PriorArtSource struct {
	Label       string
	Path        string
	Name        string
	Abstract    string
	Diagram     string
	DiagramPath string
}

// GenerateRequest carries the inputs of one reply-draft generation.
type GenerateRequest struct {
	FERPath    string
	CSPath     string
	ClaimsPath string

	PriorArts                 []PriorArtSource
	TechnicalEffectImagePaths []string

	Title               string
	Agent               string
	OfficeAddress       string
	DXRange             string
	DXDisclosedFeatures string
}

// GenerateResult is the rendered draft plus its download filename.
type GenerateResult struct {
	DocxBytes []byte
	Filename  string
}

// Service wires the extraction packages together under one configuration.
type Service struct {
	cfg *config.Config
	log *slog.Logger
}

func NewService(cfg *config.Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cfg: cfg, log: log}
}

// ParseFER extracts the normalized record from a FER PDF.
func (s *Service) ParseFER(path string) (*fer.Record, error) {
	rec, err := fer.Parse(path)
	if err != nil {
		return nil, &UnprocessableError{Reason: fmt.Sprintf("could not extract text from FER PDF: %v", err)}
	}
	s.log.Debug("parsed FER",
		"application_no", rec.ApplicationNo,
		"objections", len(rec.Objections),
		"prior_arts", len(rec.PriorArts))
	return rec, nil
}

func ensureSupportedDocExt(path, fieldName string) error {
	if docext.SupportedExtension(path) {
		return nil
	}
	return &UnprocessableError{Reason: fmt.Sprintf("%s supports only PDF or DOCX files", fieldName)}
}

// GenerateReply runs the full pipeline and renders the reply draft.
func (s *Service) GenerateReply(req GenerateRequest) (*GenerateResult, error) {
	if req.FERPath == "" {
		return nil, fmt.Errorf("FER document is required")
	}
	if req.CSPath == "" {
		return nil, fmt.Errorf("CS document is required")
	}
	if err := ensureSupportedDocExt(req.CSPath, "CS document"); err != nil {
		return nil, err
	}

	ferText, err := docext.ExtractPDFText(req.FERPath)
	if err != nil {
		return nil, &UnprocessableError{Reason: fmt.Sprintf("could not extract text from FER PDF: %v", err)}
	}
	rec := fer.ParseText(ferText)

	formalBlock := fer.FormalRequirementsBlock(docext.CleanText(ferText))
	formalRows := reply.ParseFormalRows(formalBlock)

	// Title and applicant come from the CS cover sheet when present.
	csText, err := docext.ExtractText(req.CSPath)
	if err != nil {
		return nil, &UnprocessableError{Reason: fmt.Sprintf("could not extract text from CS document: %v", err)}
	}
	csTitle := firstNonEmpty(cs.TitleFromText(csText), rec.Title, req.Title)
	if csApplicant := cs.ApplicantFromText(csText); csApplicant != "" {
		rec.Applicant = csApplicant
	}
	csSections := cs.ExtractFromText(csText)

	claimsText := ""
	if req.ClaimsPath != "" {
		if err := ensureSupportedDocExt(req.ClaimsPath, "Amended Claims document"); err != nil {
			return nil, err
		}
		raw, err := docext.ExtractText(req.ClaimsPath)
		if err != nil {
			return nil, &UnprocessableError{Reason: fmt.Sprintf("could not extract text from claims document: %v", err)}
		}
		claimsText = claims.Block(raw)
	}

	entries, err := s.resolvePriorArts(req.PriorArts)
	if err != nil {
		return nil, err
	}

	out, err := reply.Generate(reply.Input{
		FER:                       rec,
		CSTitle:                   csTitle,
		AmendedClaims:             claimsText,
		FormalReqsText:            formalBlock,
		FormalReqsRows:            formalRows,
		Agent:                     firstNonEmpty(req.Agent, s.cfg.AgentName),
		OfficeAddress:             firstNonEmpty(req.OfficeAddress, s.cfg.OfficeAddress),
		DXRange:                   req.DXRange,
		DXDisclosedFeatures:       req.DXDisclosedFeatures,
		PriorArts:                 entries,
		CSBackground:              csSections.Background,
		CSSummary:                 csSections.Summary,
		CSTechnicalEffect:         csSections.TechnicalEffect,
		TechnicalEffectImagePaths: req.TechnicalEffectImagePaths,
	})
	if err != nil {
		return nil, fmt.Errorf("generating reply draft: %w", err)
	}

	appNo := rec.ApplicationNo
	if appNo == "" {
		appNo = "UNKNOWN"
	}
	s.log.Info("generated reply draft",
		"application_no", appNo,
		"objections", len(rec.Objections),
		"prior_arts", len(entries),
		"bytes", len(out))

	return &GenerateResult{
		DocxBytes: out,
		Filename:  fmt.Sprintf("FER_Reply_Draft_%s.docx", appNo),
	}, nil
}

// resolvePriorArts turns caller-supplied sources into reply entries,
// extracting abstracts from uploaded documents where given.
func (s *Service) resolvePriorArts(sources []PriorArtSource) ([]reply.PriorArtEntry, error) {
	var entries []reply.PriorArtEntry
	for i, src := range sources {
		label := priorart.NormalizeLabel(src.Label, i+1)

		abstract := priorart.CleanText(src.Abstract)
		if src.Path != "" {
			displayName := src.Name
			if displayName == "" {
				displayName = label
			}
			if err := ensureSupportedDocExt(src.Path, fmt.Sprintf("Prior art file %s", displayName)); err != nil {
				return nil, err
			}

			if strings.EqualFold(filepath.Ext(src.Path), ".pdf") {
				scanned, err := priorart.IsScanned(src.Path)
				if err != nil {
					return nil, &UnprocessableError{Reason: fmt.Sprintf("could not read prior art file %s: %v", displayName, err)}
				}
				if scanned {
					return nil, &UnprocessableError{
						Reason: fmt.Sprintf("%s is a scanned copy (image-only PDF). Please provide text copy PDF.", displayName),
					}
				}
				abstract, err = priorart.ExtractAbstract(src.Path)
				if err != nil {
					return nil, &UnprocessableError{Reason: fmt.Sprintf("could not extract abstract from %s: %v", displayName, err)}
				}
			} else {
				text, err := docext.ExtractDOCXText(src.Path)
				if err != nil {
					return nil, &UnprocessableError{Reason: fmt.Sprintf("could not extract text from %s: %v", displayName, err)}
				}
				abstract = priorart.AbstractFromText(text)
			}
		}

		diagram := priorart.CleanText(src.Diagram)
		if diagram == "" && src.DiagramPath != "" {
			if name := priorart.CleanText(src.Name); name != "" {
				diagram = fmt.Sprintf("Diagram provided (%s)", name)
			} else {
				diagram = "Diagram provided"
			}
		}

		if abstract == "" && diagram == "" && src.DiagramPath == "" {
			continue
		}
		entries = append(entries, reply.PriorArtEntry{
			Label:       label,
			Abstract:    abstract,
			Diagram:     diagram,
			DiagramPath: src.DiagramPath,
			SourceName:  priorart.CleanText(src.Name),
		})
	}
	return entries, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
