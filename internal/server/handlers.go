package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/patentdesk/fer-reply/internal/drafting"
)

// manualPriorArt is one row of the prior_arts_json form field.
type manualPriorArt struct {
	Label      string `json:"label"`
	Abstract   string `json:"abstract"`
	Diagram    string `json:"diagram"`
	HasDiagram bool   `json:"has_diagram"`
	SourceName string `json:"source_name"`
	UploadName string `json:"upload_name"`
}

func safeJSONList(raw string) []manualPriorArt {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var rows []manualPriorArt
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}
	return rows
}

func safeFileSuffix(name, fallback string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	if ext == "" || len(ext) > 8 {
		return fallback
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fallback
		}
	}
	if ext == "." {
		return fallback
	}
	return ext
}

// saveUpload writes one multipart file to a temp file and returns its path.
func (s *Server) saveUpload(file multipart.File, suffix string) (string, error) {
	tmp, err := os.CreateTemp("", "fer-reply-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("saving upload: %w", err)
	}
	return tmp.Name(), nil
}

func (s *Server) saveFormFile(r *http.Request, field, suffix string) (path, name string, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	if suffix == "" {
		suffix = safeFileSuffix(header.Filename, ".bin")
	}
	p, err := s.saveUpload(file, suffix)
	if err != nil {
		return "", "", err
	}
	return p, filepath.Base(header.Filename), nil
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /api/parse_fer
func (s *Server) handleParseFER(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	tmpPath, _, err := s.saveFormFile(r, "fer_pdf", ".pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "fer_pdf file is required")
		return
	}
	defer os.Remove(tmpPath)

	rec, err := s.svc.ParseFER(tmpPath)
	if err != nil {
		s.writeServiceError(w, "parse_fer", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// POST /api/generate_reply
func (s *Server) handleGenerateReply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	var tempPaths []string
	defer func() {
		for _, p := range tempPaths {
			os.Remove(p)
		}
	}()

	ferPath, _, err := s.saveFormFile(r, "fer_pdf", ".pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "fer_pdf file is required")
		return
	}
	tempPaths = append(tempPaths, ferPath)

	csPath, _, err := s.saveFormFile(r, "cs_pdf", "")
	if err != nil {
		writeError(w, http.StatusBadRequest, "cs_pdf file is required")
		return
	}
	tempPaths = append(tempPaths, csPath)

	claimsPath := ""
	if p, _, err := s.saveFormFile(r, "amended_claims_pdf", ""); err == nil {
		claimsPath = p
		tempPaths = append(tempPaths, p)
	}

	priorArts, diagramPaths, err := s.collectPriorArts(r)
	if err != nil {
		s.writeServiceError(w, "generate_reply", err)
		return
	}
	tempPaths = append(tempPaths, diagramPaths...)
	for _, src := range priorArts {
		if src.Path != "" {
			tempPaths = append(tempPaths, src.Path)
		}
	}

	var teImagePaths []string
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["technical_effect_images"] {
			if strings.TrimSpace(header.Filename) == "" {
				continue
			}
			p, err := s.saveMultipartHeader(header, safeFileSuffix(header.Filename, ".png"))
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to save uploaded image")
				return
			}
			teImagePaths = append(teImagePaths, p)
			tempPaths = append(tempPaths, p)
		}
	}

	result, err := s.svc.GenerateReply(drafting.GenerateRequest{
		FERPath:                   ferPath,
		CSPath:                    csPath,
		ClaimsPath:                claimsPath,
		PriorArts:                 priorArts,
		TechnicalEffectImagePaths: teImagePaths,
		Title:                     r.FormValue("title"),
		Agent:                     r.FormValue("agent"),
		OfficeAddress:             r.FormValue("office_address"),
		DXRange:                   r.FormValue("dx_range"),
		DXDisclosedFeatures:       r.FormValue("dx_disclosed_features"),
	})
	if err != nil {
		s.writeServiceError(w, "generate_reply", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.DocxBytes)
}

func (s *Server) saveMultipartHeader(header *multipart.FileHeader, suffix string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return s.saveUpload(file, suffix)
}

// collectPriorArts assembles prior-art sources from either manual JSON
// entries (prior_arts_json) or uploaded documents (prior_art_pdfs), pairing
// diagram uploads with the rows that declared one.
func (s *Server) collectPriorArts(r *http.Request) ([]drafting.PriorArtSource, []string, error) {
	var diagramPaths []string

	var diagramHeaders []*multipart.FileHeader
	if r.MultipartForm != nil {
		diagramHeaders = r.MultipartForm.File["prior_art_diagrams"]
	}
	nextDiagram := func() (string, string, error) {
		if len(diagramHeaders) == 0 {
			return "", "", nil
		}
		header := diagramHeaders[0]
		diagramHeaders = diagramHeaders[1:]
		if strings.TrimSpace(header.Filename) == "" {
			return "", "", nil
		}
		p, err := s.saveMultipartHeader(header, safeFileSuffix(header.Filename, ".png"))
		if err != nil {
			return "", "", err
		}
		diagramPaths = append(diagramPaths, p)
		return p, filepath.Base(header.Filename), nil
	}

	mode := strings.ToLower(strings.TrimSpace(r.FormValue("prior_art_input_mode")))
	if mode == "" {
		mode = strings.ToLower(strings.TrimSpace(r.FormValue("prior_art_mode")))
	}

	if mode == "text" {
		var sources []drafting.PriorArtSource
		for _, row := range safeJSONList(r.FormValue("prior_arts_json")) {
			src := drafting.PriorArtSource{
				Label:    row.Label,
				Abstract: row.Abstract,
				Diagram:  row.Diagram,
				Name:     row.SourceName,
			}
			if row.HasDiagram || row.Diagram != "" {
				p, name, err := nextDiagram()
				if err != nil {
					return nil, diagramPaths, err
				}
				src.DiagramPath = p
				if src.Name == "" {
					src.Name = name
				}
			}
			sources = append(sources, src)
		}
		return sources, diagramPaths, nil
	}

	metaRows := safeJSONList(r.FormValue("prior_arts_meta_json"))
	metaByName := map[string]manualPriorArt{}
	for _, row := range metaRows {
		if row.UploadName != "" {
			if _, ok := metaByName[row.UploadName]; !ok {
				metaByName[row.UploadName] = row
			}
		}
	}

	var uploads []*multipart.FileHeader
	if r.MultipartForm != nil {
		uploads = r.MultipartForm.File["prior_art_pdfs"]
	}

	var sources []drafting.PriorArtSource
	for i, header := range uploads {
		name := filepath.Base(header.Filename)

		meta, ok := metaByName[header.Filename]
		if !ok && i < len(metaRows) {
			meta = metaRows[i]
		}

		p, err := s.saveMultipartHeader(header, safeFileSuffix(header.Filename, ".bin"))
		if err != nil {
			return nil, diagramPaths, err
		}

		src := drafting.PriorArtSource{
			Label:   meta.Label,
			Path:    p,
			Name:    name,
			Diagram: meta.Diagram,
		}
		if meta.HasDiagram || meta.Diagram != "" {
			dp, _, err := nextDiagram()
			if err != nil {
				return nil, diagramPaths, err
			}
			src.DiagramPath = dp
		}
		sources = append(sources, src)
	}
	return sources, diagramPaths, nil
}

func (s *Server) writeServiceError(w http.ResponseWriter, op string, err error) {
	var ue *drafting.UnprocessableError
	if errors.As(err, &ue) {
		writeError(w, http.StatusUnprocessableEntity, ue.Reason)
		return
	}
	s.log.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, op+" failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
