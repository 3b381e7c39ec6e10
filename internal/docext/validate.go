package docext

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidationResult reports the outcome of structural PDF validation.
type ValidationResult struct {
	Valid     bool
	Pages     int
	Size      int64
	Encrypted bool
	Message   string
}

// ValidatePDF checks that the file at path is a readable PDF within the
// size bound. Validation runs in relaxed mode so the slightly malformed
// output of office scanners still passes.
func ValidatePDF(path string, maxSize int64) (*ValidationResult, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() > maxSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), maxSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return &ValidationResult{
			Valid:   false,
			Size:    fileInfo.Size(),
			Message: fmt.Sprintf("failed to read PDF structure: %v", err),
		}, nil
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return &ValidationResult{
			Valid:   false,
			Size:    fileInfo.Size(),
			Message: fmt.Sprintf("failed to determine page count: %v", err),
		}, nil
	}

	return &ValidationResult{
		Valid:     true,
		Pages:     ctx.PageCount,
		Size:      fileInfo.Size(),
		Encrypted: ctx.Encrypt != nil,
		Message:   "PDF is valid",
	}, nil
}
